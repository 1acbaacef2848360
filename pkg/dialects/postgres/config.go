// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package postgres

import "github.com/leapstack-labs/leapcube/pkg/core"

// Config is the PostgreSQL dialect configuration.
// This is pure data - accessible by both Adapter and Planner.
var Config = &core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},
	// NAMEDATALEN - 1; longer identifiers are silently truncated by the server
	MaxIdentifierLength: 63,
	TimeTruncation:      core.TimeTruncDateTrunc,
	// PostgreSQL has no built-in approximate distinct count (needs the hll extension)
	ApproxCountDistinct: "",
	ReservedWords:       postgresReservedWords,
}
