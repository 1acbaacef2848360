// Package ansi provides the base ANSI SQL dialect.
//
// ANSI is the reference template set: double-quoted, lowercase-normalized
// identifiers with no length limit and no time truncation function. Dialects
// like DuckDB or PostgreSQL share its reserved words and add what ANSI lacks.
package ansi

import (
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ReservedWords are the SQL:2016 reserved words members most often collide with.
var ReservedWords = []string{
	"all", "and", "any", "as", "asc", "between", "by", "case", "cast", "check",
	"column", "constraint", "create", "cross", "current_date", "current_time",
	"current_timestamp", "current_user", "default", "delete", "desc", "distinct",
	"drop", "else", "end", "except", "exists", "false", "fetch", "for", "foreign",
	"from", "full", "grant", "group", "having", "in", "inner", "insert", "intersect",
	"into", "is", "join", "left", "like", "limit", "natural", "not", "null", "offset",
	"on", "or", "order", "outer", "primary", "references", "right", "select",
	"session_user", "table", "then", "to", "true", "union", "unique", "update",
	"user", "using", "values", "when", "where", "window", "with",
}

// Config is the ANSI dialect configuration.
var Config = &core.DialectConfig{
	Name: "ansi",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase,
	},
	TimeTruncation: core.TimeTruncNone,
	ReservedWords:  ReservedWords,
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.New(Config).Build()
