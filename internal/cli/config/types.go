// Package config provides configuration management for the salesdash CLI.
//
// Configuration is layered with koanf: defaults, then salesdash.yaml, then
// SALESDASH_* environment variables, then explicitly set flags.
package config

import (
	sharedcfg "github.com/leapstack-labs/salesdash/internal/config"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port     int  `koanf:"port"`
	AutoOpen bool `koanf:"auto_open"`
	// SessionSecret signs the session cookie. A random key is generated
	// per process when empty.
	SessionSecret string `koanf:"session_secret"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port: sharedcfg.DefaultUIPort,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = sharedcfg.DefaultUIPort
	}
	return ui
}

// HistoryConfig controls the local run log.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// GetHistoryConfig returns the history config with defaults applied.
func (c *Config) GetHistoryConfig() *HistoryConfig {
	if c.History == nil {
		return &HistoryConfig{Enabled: true, Path: sharedcfg.DefaultHistoryPath}
	}
	h := c.History
	if h.Path == "" {
		h.Path = sharedcfg.DefaultHistoryPath
	}
	return h
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	LogLevel     string         `koanf:"log_level"`
	Target       *TargetConfig  `koanf:"target"`
	UI           *UIConfig      `koanf:"ui"`
	History      *HistoryConfig `koanf:"history"`
}

// AdapterConfig returns the connection settings for the query runner.
func (c *Config) AdapterConfig() core.AdapterConfig {
	return c.Target.ToAdapterConfig()
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutput   = sharedcfg.DefaultOutput
	DefaultLogLevel = sharedcfg.DefaultLogLevel
	envPrefix       = "SALESDASH_"
)
