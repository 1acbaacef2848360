package config

import (
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapcube/internal/testutil"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/leapstack-labs/leapcube/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leapcube/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leapcube/pkg/dialects/all"
)

func TestApplyTargetDefaults(t *testing.T) {
	tests := []struct {
		name   string
		target core.TargetConfig
		want   core.TargetConfig
	}{
		{
			name:   "postgres",
			target: core.TargetConfig{Type: "postgres"},
			want:   core.TargetConfig{Type: "postgres", Schema: "public", Port: 5432},
		},
		{
			name:   "postgres keeps explicit values",
			target: core.TargetConfig{Type: "postgres", Schema: "analytics", Port: 6543},
			want:   core.TargetConfig{Type: "postgres", Schema: "analytics", Port: 6543},
		},
		{
			name:   "duckdb",
			target: core.TargetConfig{Type: "duckdb"},
			want:   core.TargetConfig{Type: "duckdb", Schema: "main", Database: ":memory:"},
		},
		{
			name:   "unknown type falls back to main",
			target: core.TargetConfig{Type: "oracle"},
			want:   core.TargetConfig{Type: "oracle", Schema: "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.target
			ApplyTargetDefaults(&got)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.NotPanics(t, func() { ApplyTargetDefaults(nil) })
}

func TestValidateTarget(t *testing.T) {
	require.NoError(t, ValidateTarget(nil))
	require.NoError(t, ValidateTarget(&core.TargetConfig{Type: "duckdb"}))
	require.NoError(t, ValidateTarget(&core.TargetConfig{Type: "Postgres"}))

	err := ValidateTarget(&core.TargetConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target type is required")

	err = ValidateTarget(&core.TargetConfig{Type: "mysql"})
	var unknown *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mysql", unknown.Type)
	assert.Contains(t, unknown.Available, "duckdb")
}

func TestToAdapterConfig(t *testing.T) {
	cfg := ToAdapterConfig(&core.TargetConfig{
		Type:     "DuckDB",
		Database: "warehouse.duckdb",
		Schema:   "main",
		Params:   map[string]any{"extensions": []any{"json"}},
	})
	assert.Equal(t, "duckdb", cfg.Type)
	assert.Equal(t, "warehouse.duckdb", cfg.Path)
	assert.Equal(t, "warehouse.duckdb", cfg.Database)
	assert.Equal(t, []any{"json"}, cfg.Params["extensions"])

	pg := ToAdapterConfig(&core.TargetConfig{Type: "postgres", Host: "db", Port: 5432, User: "app", Password: "secret"})
	assert.Empty(t, pg.Path)
	assert.Equal(t, "app", pg.Username)
	assert.Equal(t, "secret", pg.Password)
	assert.Equal(t, 5432, pg.Port)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ConfigFileNameAlt, "dialect: duckdb\n")
	nested := filepath.Join(root, "a", "b")
	testutil.WriteFile(t, nested, "keep.txt", "")

	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
	assert.Equal(t, root, FindProjectRoot(nested, 10))
	assert.Empty(t, FindProjectRoot(nested, 1))
	assert.Empty(t, FindConfigFile(nested))
}
