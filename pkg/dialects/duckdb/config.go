// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialects/ansi"
)

// Config is the DuckDB dialect configuration.
// This is pure data - accessible by both Adapter and Planner.
var Config = &core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	// DuckDB identifiers have no practical length limit
	MaxIdentifierLength: 0,
	TimeTruncation:      core.TimeTruncDateTrunc,
	ApproxCountDistinct: "approx_count_distinct",
	ReservedWords:       append(append([]string{}, ansi.ReservedWords...), duckDBReservedWords...),
}

// duckDBReservedWords are DuckDB keywords beyond the ANSI set.
var duckDBReservedWords = []string{
	"analyse", "analyze", "array", "asymmetric", "both", "collate", "deferrable",
	"do", "initially", "lateral", "leading", "only", "pivot", "placing", "qualify",
	"returning", "symmetric", "trailing", "unpivot", "variadic",
}
