package snowflake

import "github.com/leapstack-labs/leapcube/pkg/dialect"

func init() {
	dialect.Register(Snowflake)
}

// Snowflake is the Snowflake SQL dialect.
// Unquoted identifiers fold to uppercase, so member aliases are emitted uppercase.
var Snowflake = dialect.New(Config).Build()
