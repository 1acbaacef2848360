package planner

import (
	"errors"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Member is the contract every concrete member kind satisfies.
type Member interface {
	// ToSQL renders the member's SQL expression for the active dialect.
	// It is deterministic and never mutates ctx or templates.
	ToSQL(ctx *VisitorContext, templates Templates) (string, error)

	// AliasName returns the column alias, unique among the members of one query.
	AliasName() string

	// MemberEvaluator returns the shared symbol the member wraps.
	MemberEvaluator() *core.MemberSymbol

	// FullName returns cube.member.
	FullName() string

	CubeName() string
	Name() string

	// AliasSuffix disambiguates members that render the same symbol more
	// than once in a query. Empty means no suffix.
	AliasSuffix() string
}

// MemberBase carries the identity every member kind shares. Embed it to get
// the default accessors.
type MemberBase struct {
	symbol *core.MemberSymbol
	tools  *QueryTools
	suffix string
	alias  string
}

// NewMemberBase computes the default alias for symbol with the given suffix.
// It fails with *UnresolvedCubeAliasError when the symbol's cube has no alias.
func NewMemberBase(symbol *core.MemberSymbol, tools *QueryTools, suffix string) (MemberBase, error) {
	if symbol == nil {
		return MemberBase{}, errors.New("member symbol is required")
	}
	if tools == nil {
		return MemberBase{}, errors.New("query tools are required")
	}
	alias, err := DefaultAlias(symbol.Cube, symbol.Name, suffix, tools)
	if err != nil {
		return MemberBase{}, wrapRenderError(symbol.FullName(), err)
	}
	return MemberBase{symbol: symbol, tools: tools, suffix: suffix, alias: alias}, nil
}

// AliasName returns the alias computed at construction.
func (b MemberBase) AliasName() string { return b.alias }

// MemberEvaluator returns the wrapped symbol.
func (b MemberBase) MemberEvaluator() *core.MemberSymbol { return b.symbol }

// FullName returns cube.member.
func (b MemberBase) FullName() string { return b.symbol.FullName() }

// CubeName returns the owning cube's name.
func (b MemberBase) CubeName() string { return b.symbol.Cube }

// Name returns the bare member name.
func (b MemberBase) Name() string { return b.symbol.Name }

// AliasSuffix returns the suffix the alias was built with.
func (b MemberBase) AliasSuffix() string { return b.suffix }

// QueryTools returns the query context the member was bound to.
func (b MemberBase) QueryTools() *QueryTools { return b.tools }
