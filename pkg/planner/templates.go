package planner

// Templates is the dialect-specific SQL syntax the member renderer needs.
// *dialect.Dialect satisfies it.
type Templates interface {
	// MemberAliasName folds a cube alias, member name and optional suffix
	// into one dialect-legal column alias.
	MemberAliasName(cubeAlias, memberName, suffix string) string

	// QuoteIdentifierIfNeeded quotes name when it is not a plain identifier
	// for the dialect.
	QuoteIdentifierIfNeeded(name string) string

	// Aggregate wraps expr in the aggregation named by aggType.
	Aggregate(aggType, expr string) (string, error)

	// TimeTruncate truncates expr to granularity.
	TimeTruncate(granularity, expr string) (string, error)
}
