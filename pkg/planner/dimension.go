package planner

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Dimension is a grouping member rendered from its symbol's expression.
type Dimension struct {
	MemberBase
}

// NewDimension wraps a dimension symbol.
func NewDimension(sym *core.MemberSymbol, tools *QueryTools) (*Dimension, error) {
	if sym != nil && !sym.Kind.IsDimension() {
		return nil, fmt.Errorf("%s is a %s, not a dimension", sym.FullName(), sym.Kind)
	}
	base, err := NewMemberBase(sym, tools, "")
	if err != nil {
		return nil, err
	}
	return &Dimension{MemberBase: base}, nil
}

// ToSQL renders the dimension's expression with {CUBE} bound to its cube alias.
func (d *Dimension) ToSQL(ctx *VisitorContext, templates Templates) (string, error) {
	r := renderer{tools: d.tools, templates: templates}
	sql, err := r.expression(d.symbol, ctx.orDefault())
	return sql, wrapRenderError(d.FullName(), err)
}
