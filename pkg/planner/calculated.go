package planner

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// CalculatedMember is an ad-hoc expression member with a name of its own.
// Its expression may reference other symbols and may or may not aggregate.
type CalculatedMember struct {
	MemberBase
	aggregated bool
}

// NewCalculatedMember wraps a calculated symbol.
func NewCalculatedMember(sym *core.MemberSymbol, tools *QueryTools) (*CalculatedMember, error) {
	if sym != nil && sym.Kind != core.KindCalculated {
		return nil, fmt.Errorf("%s is a %s, not a calculated member", sym.FullName(), sym.Kind)
	}
	if sym != nil && sym.Expr.IsEmpty() {
		return nil, errors.New(sym.FullName() + ": calculated member needs an sql expression")
	}
	base, err := NewMemberBase(sym, tools, "")
	if err != nil {
		return nil, err
	}
	return &CalculatedMember{MemberBase: base, aggregated: referencesMeasure(sym, make(map[*core.MemberSymbol]bool))}, nil
}

// Aggregated reports whether the expression depends on a measure, directly or
// through other calculated members. Aggregated members are not grouped by.
func (c *CalculatedMember) Aggregated() bool { return c.aggregated }

// ToSQL renders the expression.
func (c *CalculatedMember) ToSQL(ctx *VisitorContext, templates Templates) (string, error) {
	r := renderer{tools: c.tools, templates: templates}
	sql, err := r.expression(c.symbol, ctx.orDefault())
	return sql, wrapRenderError(c.FullName(), err)
}

func referencesMeasure(sym *core.MemberSymbol, seen map[*core.MemberSymbol]bool) bool {
	if seen[sym] {
		return false
	}
	seen[sym] = true
	for _, dep := range sym.Deps() {
		if dep.Kind == core.KindMeasure {
			return true
		}
		if dep.Kind == core.KindCalculated && referencesMeasure(dep, seen) {
			return true
		}
	}
	return false
}
