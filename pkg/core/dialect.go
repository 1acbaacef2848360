package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data with no rendering functions.
//
// The runtime behavior (alias construction, aggregate and time fragments)
// lives in pkg/dialect.Dialect, which is built from this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "duckdb", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("main" for DuckDB, "public" for Postgres)
	DefaultSchema string

	// MaxIdentifierLength is the longest legal identifier in bytes (0 = unlimited).
	MaxIdentifierLength int

	// TimeTruncation selects how time dimensions are truncated to a granularity.
	TimeTruncation TimeTruncStyle

	// ApproxCountDistinct is the function used for count_distinct_approx measures.
	// Empty means the dialect has no approximate distinct count.
	ApproxCountDistinct string

	// ReservedWords are words that need quoting when used as identifiers.
	ReservedWords []string
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, Hive, DuckDB).
	NormCaseInsensitive
)

// TimeTruncStyle defines how a dialect truncates timestamps.
type TimeTruncStyle int

const (
	// TimeTruncNone means the dialect has no truncation function.
	TimeTruncNone TimeTruncStyle = iota
	// TimeTruncDateTrunc renders date_trunc('month', expr).
	TimeTruncDateTrunc
	// TimeTruncDateTruncUpper renders DATE_TRUNC('MONTH', expr).
	TimeTruncDateTruncUpper
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
