package all

import (
	"testing"

	"github.com/leapstack-labs/leapcube/pkg/dialect"
	"github.com/stretchr/testify/assert"
)

func TestAllDialectsRegistered(t *testing.T) {
	for _, name := range []string{"ansi", "databricks", "duckdb", "postgres", "snowflake"} {
		_, ok := dialect.Get(name)
		assert.True(t, ok, "%s dialect should be registered", name)
	}
}

// TestMemberAliasAcrossDialects pins the alias each dialect produces for the same member.
func TestMemberAliasAcrossDialects(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{"ansi", "orders_1_total_amount_rolling"},
		{"duckdb", "orders_1_total_amount_rolling"},
		{"postgres", "orders_1_total_amount_rolling"},
		{"databricks", "orders_1_total_amount_rolling"},
		{"snowflake", "ORDERS_1_TOTAL_AMOUNT_ROLLING"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, ok := dialect.Get(tt.dialect)
			if !assert.True(t, ok) {
				return
			}
			assert.Equal(t, tt.want, d.MemberAliasName("orders_1", "total_amount", "rolling"))
		})
	}
}
