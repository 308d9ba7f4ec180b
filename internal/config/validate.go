package config

import (
	"fmt"

	"github.com/leapstack-labs/salesdash/pkg/adapter"
	"github.com/leapstack-labs/salesdash/pkg/core"
)

// ValidateTarget checks if the target configuration is valid.
// The adapter registry is the source of truth for supported types.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	switch t.Type {
	case "postgres":
		if t.Database == "" {
			return fmt.Errorf("target.database is required for postgres\nHint: set it in %s or SALESDASH_TARGET_DATABASE", ConfigFileName)
		}
		if t.Port < 0 || t.Port > 65535 {
			return fmt.Errorf("target.port %d is out of range", t.Port)
		}
	}
	return nil
}
