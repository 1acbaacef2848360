package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcube/pkg/dialects/postgres"
)

func TestNewQueryTools(t *testing.T) {
	qt, err := NewQueryTools(postgres.Postgres,
		CubeAlias{Cube: "orders", Alias: "o"},
		CubeAlias{Cube: "customers", Alias: "c"},
	)
	require.NoError(t, err)

	alias, err := qt.AliasForCube("customers")
	require.NoError(t, err)
	assert.Equal(t, "c", alias)
	assert.Same(t, postgres.Postgres, qt.Templates())
	assert.Equal(t, []CubeAlias{{"orders", "o"}, {"customers", "c"}}, qt.Cubes())

	cubes := qt.Cubes()
	cubes[0].Alias = "changed"
	alias, err = qt.AliasForCube("orders")
	require.NoError(t, err)
	assert.Equal(t, "o", alias)
}

func TestNewQueryTools_Errors(t *testing.T) {
	tests := []struct {
		name      string
		templates Templates
		cubes     []CubeAlias
		wantErr   string
	}{
		{"nil templates", nil, nil, "templates are required"},
		{"empty alias", postgres.Postgres, []CubeAlias{{Cube: "orders"}}, "cube and alias are required"},
		{"cube twice", postgres.Postgres, []CubeAlias{{"orders", "a"}, {"orders", "b"}}, `cube "orders" registered twice`},
		{"alias twice", postgres.Postgres, []CubeAlias{{"orders", "a"}, {"customers", "a"}}, `alias "a" used by both`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt, err := NewQueryTools(tt.templates, tt.cubes...)
			require.Error(t, err)
			assert.Nil(t, qt)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAliasForCube_Unresolved(t *testing.T) {
	qt := pg(t)

	alias, err := qt.AliasForCube("customers")
	assert.Empty(t, alias)

	var unresolved *UnresolvedCubeAliasError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "customers", unresolved.Cube)
	assert.EqualError(t, err, `cube "customers" has no alias in the current query`)
}

func TestVisitorContext(t *testing.T) {
	security := map[string]string{"tenant": "acme"}
	ctx := NewVisitorContext(WithSecurityContext(security), WithMaxDepth(4))
	security["tenant"] = "changed"

	assert.Equal(t, 0, ctx.Depth())
	assert.Equal(t, 4, ctx.MaxDepth())
	assert.False(t, ctx.InFilter())

	v, ok := ctx.SecurityValue("tenant")
	assert.True(t, ok)
	assert.Equal(t, "acme", v)
	_, ok = ctx.SecurityValue("missing")
	assert.False(t, ok)

	nested := ctx.Nested()
	assert.Equal(t, 1, nested.Depth())
	assert.Equal(t, 0, ctx.Depth(), "Nested must not mutate the receiver")

	filter := ctx.ForFilter()
	assert.True(t, filter.InFilter())
	assert.False(t, ctx.InFilter())

	deep := ctx
	for range 5 {
		deep = deep.Nested()
	}
	assert.True(t, deep.Exceeded())

	assert.Equal(t, DefaultMaxDepth, NewVisitorContext(WithMaxDepth(0)).MaxDepth())
}

func TestErrors(t *testing.T) {
	gen := NewSQLGenerationError("orders.count", "bad %s", "shape")
	assert.EqualError(t, gen, "generating SQL for orders.count: bad shape")

	wrapped := wrapRenderError("orders.count", &UnresolvedCubeAliasError{Cube: "orders"})
	assert.EqualError(t, wrapped, `member orders.count: cube "orders" has no alias in the current query`)

	assert.Same(t, gen, wrapRenderError("other.member", gen))
	assert.NoError(t, wrapRenderError("x", nil))

	dup := &DuplicateAliasError{Alias: "a", First: "x.a", Second: "y.a"}
	assert.EqualError(t, dup, `alias "a" is produced by both x.a and y.a`)
}
