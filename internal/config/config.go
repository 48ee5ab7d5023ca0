// Package config loads spyglass configuration: detection model conventions,
// overlay behavior, and action logging.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/halvard/spyglass/internal/paths"
)

// ModelConvention maps detection models (by case-insensitive name substring)
// to the coordinate convention their boxes use.
type ModelConvention struct {
	// Match is the substring of the model name this entry applies to.
	Match string `yaml:"match"`
	// GridBase is the normalized grid resolution; 0 means pixel space.
	GridBase int `yaml:"grid_base"`
}

// OverlayConfig controls annotation overlay behavior.
type OverlayConfig struct {
	// DurationMS is how long a timed overlay stays on screen.
	DurationMS int `yaml:"duration_ms"`
}

// LoggingConfig controls the rotating action log.
type LoggingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Level     string `yaml:"level"` // debug, info, warn, error
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Config is the loaded spyglass configuration.
type Config struct {
	Models  []ModelConvention `yaml:"models"`
	Overlay OverlayConfig     `yaml:"overlay"`
	Logging LoggingConfig     `yaml:"logging"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Overlay: OverlayConfig{DurationMS: 2000},
		Logging: LoggingConfig{Level: "info"},
	}
}

// GetOverlayConfig returns overlay settings with defaults applied.
func (c *Config) GetOverlayConfig() OverlayConfig {
	if c == nil {
		return OverlayConfig{DurationMS: 2000}
	}
	cfg := c.Overlay
	if cfg.DurationMS <= 0 {
		cfg.DurationMS = 2000
	}
	return cfg
}

// GetLoggingConfig returns logging settings with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{}
	}
	cfg := c.Logging
	if cfg.File == "" {
		if path, err := paths.ActionLogFile(); err == nil {
			cfg.File = path
		} else {
			cfg.File = filepath.Join(".", "spyglass-actions.log")
		}
	}
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// Validate rejects configurations that would misbehave at runtime.
func (c *Config) Validate() error {
	for i, m := range c.Models {
		if strings.TrimSpace(m.Match) == "" {
			return fmt.Errorf("models[%d]: match must not be empty", i)
		}
		if m.GridBase < 0 {
			return fmt.Errorf("models[%d] (%q): grid_base must not be negative", i, m.Match)
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	if c.Overlay.DurationMS < 0 {
		return fmt.Errorf("overlay.duration_ms must not be negative")
	}
	return nil
}
