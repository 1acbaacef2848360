package planner

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialect"
)

// TimeDimension is a time dimension truncated to a granularity. The
// granularity is its alias suffix, so one symbol can appear once per grain.
type TimeDimension struct {
	MemberBase
}

// NewTimeDimension wraps a time dimension symbol at granularity.
func NewTimeDimension(sym *core.MemberSymbol, granularity string, tools *QueryTools) (*TimeDimension, error) {
	if sym != nil && sym.Kind != core.KindTimeDimension {
		return nil, fmt.Errorf("%s is a %s, not a time dimension", sym.FullName(), sym.Kind)
	}
	if !dialect.IsKnownGranularity(granularity) {
		return nil, fmt.Errorf("%w: %q", dialect.ErrUnknownGranularity, granularity)
	}
	base, err := NewMemberBase(sym, tools, granularity)
	if err != nil {
		return nil, err
	}
	return &TimeDimension{MemberBase: base}, nil
}

// Granularity returns the truncation grain.
func (t *TimeDimension) Granularity() string { return t.suffix }

// ToSQL renders the truncated expression. Inside a filter the raw expression
// is rendered so ranges compare against the untruncated column.
func (t *TimeDimension) ToSQL(ctx *VisitorContext, templates Templates) (string, error) {
	ctx = ctx.orDefault()
	r := renderer{tools: t.tools, templates: templates}
	expr, err := r.expression(t.symbol, ctx)
	if err != nil {
		return "", wrapRenderError(t.FullName(), err)
	}
	if ctx.InFilter() {
		return expr, nil
	}
	sql, err := templates.TimeTruncate(t.suffix, expr)
	return sql, wrapRenderError(t.FullName(), err)
}
