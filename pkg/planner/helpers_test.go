package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialects/postgres"
)

func buildMeasures(t *testing.T) ([]*Measure, ordersModel) {
	t.Helper()
	m := newOrdersModel()
	qt := pg(t)

	sum, err := NewMeasure(m.totalAmount, qt)
	require.NoError(t, err)
	count, err := NewMeasure(m.count, qt)
	require.NoError(t, err)
	rolling, err := NewMeasure(m.totalAmount, qt, WithAliasSuffix("rolling"))
	require.NoError(t, err)
	return []*Measure{sum, count, rolling}, m
}

func TestUpcastMembers(t *testing.T) {
	measures, _ := buildMeasures(t)

	members := UpcastMembers(measures)
	require.Len(t, members, len(measures))
	for i, mem := range members {
		assert.Same(t, measures[i], mem)
	}

	assert.Empty(t, UpcastMembers([]*Measure{}))
	assert.Empty(t, UpcastMembers[*Measure](nil))
}

func TestIterMembers(t *testing.T) {
	measures, _ := buildMeasures(t)
	seq := IterMembers(measures)

	collect := func() []string {
		var names []string
		for mem := range seq {
			names = append(names, mem.AliasName())
		}
		return names
	}

	want := []string{"orders_1_total_amount", "orders_1_count", "orders_1_total_amount_rolling"}
	assert.Equal(t, want, collect())
	assert.Equal(t, want, collect(), "sequence must be restartable")

	var first []string
	for mem := range seq {
		first = append(first, mem.FullName())
		break
	}
	assert.Equal(t, []string{"orders.total_amount"}, first)

	var none []Member
	for mem := range IterMembers([]*Measure{}) {
		none = append(none, mem)
	}
	assert.Empty(t, none)
}

func TestAliasNames(t *testing.T) {
	measures, _ := buildMeasures(t)

	assert.Equal(t,
		[]string{"orders_1_total_amount", "orders_1_count", "orders_1_total_amount_rolling"},
		AliasNames(UpcastMembers(measures)))
	assert.Empty(t, AliasNames(nil))
}

func TestExtractSymbols(t *testing.T) {
	measures, m := buildMeasures(t)

	syms := ExtractSymbols(UpcastMembers(measures))
	require.Len(t, syms, 3)
	assert.Same(t, m.totalAmount, syms[0])
	assert.Same(t, m.count, syms[1])
	assert.Same(t, m.totalAmount, syms[2], "members sharing a symbol share the pointer")
	assert.Empty(t, ExtractSymbols(nil))
}

func TestFullNames(t *testing.T) {
	measures, _ := buildMeasures(t)
	assert.Equal(t,
		[]string{"orders.total_amount", "orders.count", "orders.total_amount"},
		FullNames(UpcastMembers(measures)))
}

func TestDefaultAlias(t *testing.T) {
	qt := newTools(t, postgres.Postgres,
		CubeAlias{Cube: "orders", Alias: "orders_1"},
		CubeAlias{Cube: "line-items", Alias: "line-items"},
	)

	tests := []struct {
		name   string
		cube   string
		member string
		suffix string
		want   string
	}{
		{"plain", "orders", "total_amount", "", "orders_1_total_amount"},
		{"suffix", "orders", "total_amount", "rolling", "orders_1_total_amount_rolling"},
		{"mixed case folded", "orders", "TotalAmount", "", "orders_1_totalamount"},
		{"illegal runes replaced", "line-items", "unit price", "", "line_items_unit_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultAlias(tt.cube, tt.member, tt.suffix, qt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := DefaultAlias(tt.cube, tt.member, tt.suffix, qt)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestCheckUniqueAliases(t *testing.T) {
	measures, m := buildMeasures(t)
	qt := measures[0].QueryTools()

	assert.NoError(t, CheckUniqueAliases(UpcastMembers(measures)))
	assert.NoError(t, CheckUniqueAliases(nil))

	t.Run("same symbol twice", func(t *testing.T) {
		again, err := NewMeasure(m.totalAmount, qt)
		require.NoError(t, err)

		err = CheckUniqueAliases([]Member{measures[0], measures[2], again})
		var dup *DuplicateAliasError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "orders_1_total_amount", dup.Alias)
		assert.Equal(t, "orders.total_amount", dup.First)
		assert.Equal(t, "orders.total_amount", dup.Second)
	})

	t.Run("names colliding after sanitizing", func(t *testing.T) {
		dash := &core.MemberSymbol{Cube: "orders", Name: "ship-date", Kind: core.KindDimension}
		under := &core.MemberSymbol{Cube: "orders", Name: "ship_date", Kind: core.KindDimension}
		a, err := NewDimension(dash, qt)
		require.NoError(t, err)
		b, err := NewDimension(under, qt)
		require.NoError(t, err)

		err = CheckUniqueAliases([]Member{a, b})
		var dup *DuplicateAliasError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "orders_1_ship_date", dup.Alias)
		assert.Equal(t, "orders.ship-date", dup.First)
		assert.Equal(t, "orders.ship_date", dup.Second)
	})

	t.Run("suffix shown in error", func(t *testing.T) {
		other, err := NewMeasure(m.count, qt, WithAliasSuffix("x"))
		require.NoError(t, err)
		clash, err := NewMeasure(m.count, qt, WithAliasSuffix("x"))
		require.NoError(t, err)

		err = CheckUniqueAliases([]Member{other, clash})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orders.count (x)")
	})
}

func TestRenderMembers_StopsAtFirstError(t *testing.T) {
	measures, m := buildMeasures(t)
	qt := measures[0].QueryTools()
	approx, err := NewMeasure(m.userID, qt)
	require.NoError(t, err)

	members := append(UpcastMembers(measures), approx)
	out, err := RenderMembers(members, NewVisitorContext(), postgres.Postgres)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "orders.unique_users")
}
