// Package adapter provides the database adapter contract used by the query
// runner.
//
// Concrete adapter implementations live in pkg/adapters/ subdirectories and
// register themselves with the registry from their init() functions.
package adapter

import (
	"context"

	"github.com/leapstack-labs/salesdash/pkg/core"
)

// Type aliases so adapter implementations only need to import this package.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all database adapters must implement.
// An Adapter instance wraps a single connection lifetime: Connect once,
// run statements, Close once.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// DialectName returns the SQL dialect spoken by the adapter.
	DialectName() string
}
