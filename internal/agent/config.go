package agent

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds parameters for the conversational agent client.
type Config struct {
	Model            string `toml:"model"`
	SystemPromptPath string `toml:"system_prompt_path"`
	MaxTokens        int64  `toml:"max_tokens"`
	RetryAttempts    uint   `toml:"retry_attempts"`
	RetryDelay       string `toml:"retry_delay"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Model            string
	SystemPromptPath string
	MaxTokens        string
	RetryAttempts    string
	RetryDelay       string
}

// RetryDelayDuration returns RetryDelay as a time.Duration.
func (c *Config) RetryDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryDelay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.SystemPromptPath != "" {
		c.SystemPromptPath = overlay.SystemPromptPath
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.RetryAttempts != 0 {
		c.RetryAttempts = overlay.RetryAttempts
	}
	if overlay.RetryDelay != "" {
		c.RetryDelay = overlay.RetryDelay
	}
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "sonnet"
	}
	if c.SystemPromptPath == "" {
		c.SystemPromptPath = "prompts/system_prompt.md"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4096
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = 3
	}
	if c.RetryDelay == "" {
		c.RetryDelay = "2s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.SystemPromptPath != "" {
		if v := os.Getenv(env.SystemPromptPath); v != "" {
			c.SystemPromptPath = v
		}
	}
	if env.MaxTokens != "" {
		if v := os.Getenv(env.MaxTokens); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				c.MaxTokens = n
			}
		}
	}
	if env.RetryAttempts != "" {
		if v := os.Getenv(env.RetryAttempts); v != "" {
			if n, err := strconv.ParseUint(v, 10, 32); err == nil && n > 0 {
				c.RetryAttempts = uint(n)
			}
		}
	}
	if env.RetryDelay != "" {
		if v := os.Getenv(env.RetryDelay); v != "" {
			c.RetryDelay = v
		}
	}
}

func (c *Config) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return fmt.Errorf("invalid retry_delay: %w", err)
	}
	return nil
}
