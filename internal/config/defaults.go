// Package config holds the configuration defaults and target validation
// shared by the CLI and the UI server.
package config

import (
	"strings"

	"github.com/leapstack-labs/salesdash/pkg/core"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "salesdash.yaml"
	ConfigFileNameAlt = "salesdash.yml"
)

// Default configuration values.
const (
	DefaultTargetType   = "postgres"
	DefaultPostgresPort = 5432
	DefaultUIPort       = 8765
	DefaultOutput       = "auto" // TTY=text, non-TTY=markdown
	DefaultLogLevel     = "info"
	DefaultHistoryPath  = ".salesdash/history.db"
)

// ConfigFileNames returns the accepted config file names.
func ConfigFileNames() []string {
	return []string{ConfigFileName, ConfigFileNameAlt}
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}
	t.Type = strings.ToLower(strings.TrimSpace(t.Type))
	if t.Type == "" {
		t.Type = DefaultTargetType
	}

	if t.Type == "postgres" {
		if t.Port == 0 {
			t.Port = DefaultPostgresPort
		}
		if t.Host == "" {
			t.Host = "localhost"
		}
	}
}
