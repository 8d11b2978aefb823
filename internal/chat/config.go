package chat

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds chat loop parameters.
type Config struct {
	HistoryLimit int    `toml:"history_limit"`
	ExportDir    string `toml:"export_dir"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	HistoryLimit string
	ExportDir    string
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
	if overlay.HistoryLimit != 0 {
		c.HistoryLimit = overlay.HistoryLimit
	}
	if overlay.ExportDir != "" {
		c.ExportDir = overlay.ExportDir
	}
}

func (c *Config) loadDefaults() {
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 10
	}
	if c.ExportDir == "" {
		c.ExportDir = "generated"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.HistoryLimit != "" {
		if v := os.Getenv(env.HistoryLimit); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.HistoryLimit = n
			}
		}
	}
	if env.ExportDir != "" {
		if v := os.Getenv(env.ExportDir); v != "" {
			c.ExportDir = v
		}
	}
}

func (c *Config) validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("export_dir required")
	}
	return nil
}
