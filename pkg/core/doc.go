// Package core defines the shared types of salesdash.
//
// This package contains:
//   - Connection configuration (AdapterConfig, TargetConfig)
//   - The materialized query result (Table)
//   - The thin wrapper around driver rows (Rows)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
