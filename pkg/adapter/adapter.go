// Package adapter provides the database adapter contract used to validate
// generated SQL against a live database.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows. The caller closes them.
	Query(ctx context.Context, sql string) (*sql.Rows, error)

	// Explain asks the database to plan sql without running it and returns
	// the plan text. A planning failure means the SQL is invalid for the target.
	Explain(ctx context.Context, sql string) (string, error)

	// DialectName returns the name of the SQL dialect the database speaks.
	DialectName() string
}
