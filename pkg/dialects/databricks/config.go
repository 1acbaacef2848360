// Package databricks provides the Databricks SQL dialect definition.
// This package is pure Go with no database driver dependencies.
package databricks

import "github.com/leapstack-labs/leapcube/pkg/core"

// Config is the Databricks SQL dialect configuration.
var Config = &core.DialectConfig{
	Name:          "databricks",
	DefaultSchema: "default",
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseInsensitive,
	},
	MaxIdentifierLength: 255,
	TimeTruncation:      core.TimeTruncDateTruncUpper,
	ApproxCountDistinct: "approx_count_distinct",
	ReservedWords:       databricksReservedWords,
}

var databricksReservedWords = []string{
	"all", "alter", "and", "anti", "any", "as", "authorization", "between", "both",
	"by", "case", "cast", "check", "collate", "column", "constraint", "create",
	"cross", "cube", "current", "current_date", "current_time", "current_timestamp",
	"current_user", "delete", "describe", "distinct", "drop", "else", "end",
	"escape", "except", "exists", "false", "fetch", "filter", "for", "foreign",
	"from", "full", "function", "global", "grant", "group", "grouping", "having",
	"in", "inner", "insert", "intersect", "interval", "into", "is", "join",
	"lateral", "leading", "left", "like", "local", "natural", "no", "not", "null",
	"of", "on", "only", "or", "order", "out", "outer", "overlaps", "partition",
	"primary", "qualify", "range", "references", "revoke", "right", "rollup",
	"row", "rows", "select", "semi", "session_user", "set", "some", "start",
	"table", "tablesample", "then", "time", "to", "trailing", "true", "union",
	"unique", "unknown", "update", "user", "using", "values", "when", "where",
	"window", "with",
}
