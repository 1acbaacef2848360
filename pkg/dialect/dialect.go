// Package dialect provides the SQL template engine used by the member renderer.
//
// A Dialect knows how to quote and normalize identifiers, how to fold a cube
// alias, member name and suffix into one legal column alias, and how to spell
// the aggregate and time-truncation fragments concrete members need.
// Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

var (
	// ErrUnsupported is returned when the dialect cannot express a construct.
	ErrUnsupported = errors.New("not supported by dialect")
	// ErrUnknownAggregate is returned for an aggregation type no dialect knows.
	ErrUnknownAggregate = errors.New("unknown aggregation type")
	// ErrUnknownGranularity is returned for a time granularity no dialect knows.
	ErrUnknownGranularity = errors.New("unknown time granularity")
)

// Aggregation types understood by Aggregate.
const (
	AggCount               = "count"
	AggCountDistinct       = "count_distinct"
	AggCountDistinctApprox = "count_distinct_approx"
	AggSum                 = "sum"
	AggAvg                 = "avg"
	AggMin                 = "min"
	AggMax                 = "max"
	AggNumber              = "number"
)

// Granularities lists the time granularities understood by TimeTruncate, finest first.
var Granularities = []string{"second", "minute", "hour", "day", "week", "month", "quarter", "year"}

// aliasHashLen is the number of hex digits appended to truncated aliases.
const aliasHashLen = 8

// Dialect represents a SQL dialect's template set.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	DefaultSchema       string
	MaxIdentifierLength int
	TimeTruncation      core.TimeTruncStyle
	ApproxCountDistinct string

	reservedWords map[string]struct{}
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	words := make([]string, 0, len(d.reservedWords))
	for w := range d.reservedWords {
		words = append(words, w)
	}
	return &core.DialectConfig{
		Name:                d.Name,
		Identifiers:         d.Identifiers,
		DefaultSchema:       d.DefaultSchema,
		MaxIdentifierLength: d.MaxIdentifierLength,
		TimeTruncation:      d.TimeTruncation,
		ApproxCountDistinct: d.ApproxCountDistinct,
		ReservedWords:       words,
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word,
// contains characters outside [A-Za-z0-9_], starts with a digit, or would
// change under the dialect's normalization.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if name == "" || d.IsReservedWord(name) || !isPlainIdentifier(name) || d.NormalizeName(name) != name {
		return d.QuoteIdentifier(name)
	}
	return name
}

// MemberAliasName builds the column alias for a member of the cube aliased
// cubeAlias. Parts are joined with "_", illegal runes become "_", and the
// result is normalized to the dialect's case. Aliases longer than
// MaxIdentifierLength are truncated and suffixed with a hash of the full alias.
func (d *Dialect) MemberAliasName(cubeAlias, memberName, suffix string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{cubeAlias, memberName, suffix} {
		if p != "" {
			parts = append(parts, sanitizeIdentifier(p))
		}
	}
	alias := d.NormalizeName(strings.Join(parts, "_"))
	return d.fitIdentifier(alias)
}

// fitIdentifier truncates alias to MaxIdentifierLength, keeping distinct
// inputs distinct by appending a hash of the untruncated value.
func (d *Dialect) fitIdentifier(alias string) string {
	limit := d.MaxIdentifierLength
	if limit <= 0 || len(alias) <= limit {
		return alias
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(alias))
	hash := fmt.Sprintf("%0*x", aliasHashLen, h.Sum32())
	if d.Identifiers.Normalization == core.NormUppercase {
		hash = strings.ToUpper(hash)
	}

	keep := limit - len(hash) - 1
	if keep < 1 {
		return hash[:limit]
	}
	return alias[:keep] + "_" + hash
}

// Aggregate wraps expr in the aggregation named by aggType.
// An empty expr is only legal for count, which renders COUNT(*).
func (d *Dialect) Aggregate(aggType, expr string) (string, error) {
	if expr == "" && aggType != AggCount {
		return "", fmt.Errorf("%s measure requires an expression", aggType)
	}

	switch aggType {
	case AggCount:
		if expr == "" {
			return "COUNT(*)", nil
		}
		return "COUNT(" + expr + ")", nil
	case AggCountDistinct:
		return "COUNT(DISTINCT " + expr + ")", nil
	case AggCountDistinctApprox:
		if d.ApproxCountDistinct == "" {
			return "", fmt.Errorf("%s: %w", aggType, ErrUnsupported)
		}
		return d.ApproxCountDistinct + "(" + expr + ")", nil
	case AggSum:
		return "SUM(" + expr + ")", nil
	case AggAvg:
		return "AVG(" + expr + ")", nil
	case AggMin:
		return "MIN(" + expr + ")", nil
	case AggMax:
		return "MAX(" + expr + ")", nil
	case AggNumber:
		return expr, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAggregate, aggType)
	}
}

// IsKnownAggregate reports whether aggType is understood by Aggregate.
func IsKnownAggregate(aggType string) bool {
	switch aggType {
	case AggCount, AggCountDistinct, AggCountDistinctApprox, AggSum, AggAvg, AggMin, AggMax, AggNumber:
		return true
	default:
		return false
	}
}

// IsKnownGranularity reports whether granularity is understood by TimeTruncate.
func IsKnownGranularity(granularity string) bool {
	for _, g := range Granularities {
		if g == granularity {
			return true
		}
	}
	return false
}

// TimeTruncate truncates expr to the given granularity.
func (d *Dialect) TimeTruncate(granularity, expr string) (string, error) {
	if !IsKnownGranularity(granularity) {
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, granularity)
	}

	switch d.TimeTruncation {
	case core.TimeTruncDateTrunc:
		return "date_trunc('" + granularity + "', " + expr + ")", nil
	case core.TimeTruncDateTruncUpper:
		return "DATE_TRUNC('" + strings.ToUpper(granularity) + "', " + expr + ")", nil
	default:
		return "", fmt.Errorf("time truncation: %w", ErrUnsupported)
	}
}

// AliasedExpr renders "expr AS alias", quoting the alias when required.
func (d *Dialect) AliasedExpr(expr, alias string) string {
	return expr + " AS " + d.QuoteIdentifierIfNeeded(alias)
}

func sanitizeIdentifier(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isIdentRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isPlainIdentifier(s string) bool {
	for i, r := range s {
		if !isIdentRune(r) || (i == 0 && r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI
// double-quote identifiers.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
// This is the preferred constructor for registered dialects.
func New(cfg *core.DialectConfig) *Builder {
	b := &Builder{
		dialect: &Dialect{
			Name:                cfg.Name,
			Identifiers:         cfg.Identifiers,
			DefaultSchema:       cfg.DefaultSchema,
			MaxIdentifierLength: cfg.MaxIdentifierLength,
			TimeTruncation:      cfg.TimeTruncation,
			ApproxCountDistinct: cfg.ApproxCountDistinct,
			reservedWords:       make(map[string]struct{}),
		},
	}
	return b.WithReservedWords(cfg.ReservedWords...)
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// MaxIdentifierLength sets the identifier length limit (0 = unlimited).
func (b *Builder) MaxIdentifierLength(n int) *Builder {
	b.dialect.MaxIdentifierLength = n
	return b
}

// TimeTruncation sets how time dimensions are truncated.
func (b *Builder) TimeTruncation(style core.TimeTruncStyle) *Builder {
	b.dialect.TimeTruncation = style
	return b
}

// ApproxCountDistinct sets the approximate distinct count function.
func (b *Builder) ApproxCountDistinct(fn string) *Builder {
	b.dialect.ApproxCountDistinct = fn
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
