// Package config loads the application configuration from an optional TOML
// file, an environment overlay file, and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/alephdao/agent-builder/internal/agent"
	"github.com/alephdao/agent-builder/internal/chat"
	"github.com/alephdao/agent-builder/pkg/content"
	"github.com/alephdao/agent-builder/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBuilderEnv             = "BUILDER_ENV"
	EnvBuilderAgentsDir       = "BUILDER_AGENTS_DIR"
	EnvBuilderShutdownTimeout = "BUILDER_SHUTDOWN_TIMEOUT"
	EnvBuilderVersion         = "BUILDER_VERSION"
)

var databaseEnv = &database.Env{
	Path:        "BUILDER_DB_PATH",
	ConnTimeout: "BUILDER_DB_CONN_TIMEOUT",
}

var contentEnv = &content.Env{
	Root: "BUILDER_CONTENT_ROOT",
}

var agentEnv = &agent.Env{
	Model:            "BUILDER_AGENT_MODEL",
	SystemPromptPath: "BUILDER_AGENT_SYSTEM_PROMPT_PATH",
	MaxTokens:        "BUILDER_AGENT_MAX_TOKENS",
	RetryAttempts:    "BUILDER_AGENT_RETRY_ATTEMPTS",
	RetryDelay:       "BUILDER_AGENT_RETRY_DELAY",
}

var chatEnv = &chat.Env{
	HistoryLimit: "BUILDER_CHAT_HISTORY_LIMIT",
	ExportDir:    "BUILDER_CHAT_EXPORT_DIR",
}

// Config is the root configuration for the agent prompt builder.
type Config struct {
	Database        database.Config `toml:"database"`
	Content         content.Config  `toml:"content"`
	Agent           agent.Config    `toml:"agent"`
	Chat            chat.Config     `toml:"chat"`
	AgentsDir       string          `toml:"agents_dir"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the BUILDER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBuilderEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.AgentsDir != "" {
		c.AgentsDir = overlay.AgentsDir
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Content.Merge(&overlay.Content)
	c.Agent.Merge(&overlay.Agent)
	c.Chat.Merge(&overlay.Chat)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Content.Finalize(contentEnv); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := c.Agent.Finalize(agentEnv); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Chat.Finalize(chatEnv); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.AgentsDir == "" {
		c.AgentsDir = "agents"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBuilderAgentsDir); v != "" {
		c.AgentsDir = v
	}
	if v := os.Getenv(EnvBuilderShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBuilderVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if c.AgentsDir == "" {
		return fmt.Errorf("agents_dir required")
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBuilderEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
