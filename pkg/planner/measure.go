package planner

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Measure is an aggregated member.
type Measure struct {
	MemberBase
}

type measureOptions struct {
	suffix string
}

// MeasureOption configures a Measure.
type MeasureOption func(*measureOptions)

// WithAliasSuffix distinguishes a measure from other members built on the same symbol.
func WithAliasSuffix(suffix string) MeasureOption {
	return func(o *measureOptions) {
		o.suffix = suffix
	}
}

// NewMeasure wraps a measure symbol.
func NewMeasure(sym *core.MemberSymbol, tools *QueryTools, opts ...MeasureOption) (*Measure, error) {
	if sym != nil && sym.Kind != core.KindMeasure {
		return nil, fmt.Errorf("%s is a %s, not a measure", sym.FullName(), sym.Kind)
	}
	var o measureOptions
	for _, opt := range opts {
		opt(&o)
	}
	base, err := NewMemberBase(sym, tools, o.suffix)
	if err != nil {
		return nil, err
	}
	return &Measure{MemberBase: base}, nil
}

// AggType returns the measure's aggregation.
func (m *Measure) AggType() string { return m.symbol.AggType }

// ToSQL renders the aggregation over the measure's expression.
func (m *Measure) ToSQL(ctx *VisitorContext, templates Templates) (string, error) {
	r := renderer{tools: m.tools, templates: templates}
	sql, err := r.value(m.symbol, ctx.orDefault())
	return sql, wrapRenderError(m.FullName(), err)
}
