package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialect"
	"github.com/leapstack-labs/leapcube/pkg/dialects/postgres"
)

// expr builds an expression from alternating literal text and markers:
// "{CUBE}" becomes a cube segment, a *core.MemberSymbol a reference and a
// securityKey a security context lookup.
type securityKey string

func expr(parts ...any) *core.Expression {
	e := &core.Expression{}
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			if v == "{CUBE}" {
				e.Segments = append(e.Segments, core.Segment{Kind: core.SegmentCube})
				e.Source += v
				continue
			}
			e.Segments = append(e.Segments, core.Segment{Kind: core.SegmentSQL, Text: v})
			e.Source += v
		case *core.MemberSymbol:
			e.Segments = append(e.Segments, core.Segment{Kind: core.SegmentRef, Ref: v})
			e.Source += "{" + v.FullName() + "}"
		case securityKey:
			e.Segments = append(e.Segments, core.Segment{Kind: core.SegmentSecurity, Text: string(v)})
			e.Source += "{SECURITY_CONTEXT." + string(v) + "}"
		}
	}
	return e
}

type ordersModel struct {
	status      *core.MemberSymbol
	createdAt   *core.MemberSymbol
	totalAmount *core.MemberSymbol
	count       *core.MemberSymbol
	userID      *core.MemberSymbol
	avgOrder    *core.MemberSymbol
	custName    *core.MemberSymbol
}

func newOrdersModel() ordersModel {
	m := ordersModel{
		status:      &core.MemberSymbol{Cube: "orders", Name: "status", Kind: core.KindDimension, Type: "string", Expr: expr("{CUBE}", ".status")},
		createdAt:   &core.MemberSymbol{Cube: "orders", Name: "created_at", Kind: core.KindTimeDimension, Type: "time", Expr: expr("{CUBE}", ".created_at")},
		totalAmount: &core.MemberSymbol{Cube: "orders", Name: "total_amount", Kind: core.KindMeasure, AggType: dialect.AggSum, Expr: expr("{CUBE}", ".amount")},
		count:       &core.MemberSymbol{Cube: "orders", Name: "count", Kind: core.KindMeasure, AggType: dialect.AggCount},
		userID:      &core.MemberSymbol{Cube: "orders", Name: "unique_users", Kind: core.KindMeasure, AggType: dialect.AggCountDistinctApprox, Expr: expr("{CUBE}", ".user_id")},
		custName:    &core.MemberSymbol{Cube: "customers", Name: "name", Kind: core.KindDimension},
	}
	m.avgOrder = &core.MemberSymbol{
		Cube: "orders", Name: "avg_order", Kind: core.KindCalculated,
		Expr: expr(m.totalAmount, " / NULLIF(", m.count, ", 0)"),
	}
	return m
}

func newTools(t *testing.T, templates Templates, cubes ...CubeAlias) *QueryTools {
	t.Helper()
	if len(cubes) == 0 {
		cubes = []CubeAlias{{Cube: "orders", Alias: "orders_1"}}
	}
	qt, err := NewQueryTools(templates, cubes...)
	require.NoError(t, err)
	return qt
}

func pg(t *testing.T) *QueryTools {
	t.Helper()
	return newTools(t, postgres.Postgres)
}
