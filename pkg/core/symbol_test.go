package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemberSymbol_FullName(t *testing.T) {
	s := &MemberSymbol{Cube: "orders", Name: "total_amount", Kind: KindMeasure}
	assert.Equal(t, "orders.total_amount", s.FullName())
}

func TestExpression_DepsFirstOccurrence(t *testing.T) {
	count := &MemberSymbol{Cube: "orders", Name: "count", Kind: KindMeasure}
	amount := &MemberSymbol{Cube: "orders", Name: "amount", Kind: KindMeasure}

	expr := &Expression{
		Source: "{amount} / NULLIF({count}, 0) + {amount}",
		Segments: []Segment{
			{Kind: SegmentRef, Ref: amount},
			{Kind: SegmentSQL, Text: " / NULLIF("},
			{Kind: SegmentRef, Ref: count},
			{Kind: SegmentSQL, Text: ", 0) + "},
			{Kind: SegmentRef, Ref: amount},
		},
	}
	s := &MemberSymbol{Cube: "orders", Name: "avg_amount", Kind: KindMeasure, AggType: "number", Expr: expr}

	deps := s.Deps()
	assert.Len(t, deps, 2)
	assert.Same(t, amount, deps[0])
	assert.Same(t, count, deps[1])
}

func TestSymbolKind_IsDimension(t *testing.T) {
	assert.True(t, KindDimension.IsDimension())
	assert.True(t, KindTimeDimension.IsDimension())
	assert.False(t, KindMeasure.IsDimension())
	assert.False(t, KindCalculated.IsDimension())
}

func TestExpression_IsEmpty(t *testing.T) {
	var nilExpr *Expression
	assert.True(t, nilExpr.IsEmpty())
	assert.True(t, (&Expression{Source: "  "}).IsEmpty())
	assert.False(t, (&Expression{Source: "{CUBE}.id"}).IsEmpty())
}
