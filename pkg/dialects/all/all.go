// Package all registers every built-in dialect.
//
//	import _ "github.com/leapstack-labs/leapcube/pkg/dialects/all"
package all

import (
	_ "github.com/leapstack-labs/leapcube/pkg/dialects/ansi"       // ansi dialect
	_ "github.com/leapstack-labs/leapcube/pkg/dialects/databricks" // databricks dialect
	_ "github.com/leapstack-labs/leapcube/pkg/dialects/duckdb"     // duckdb dialect
	_ "github.com/leapstack-labs/leapcube/pkg/dialects/postgres"   // postgres dialect
	_ "github.com/leapstack-labs/leapcube/pkg/dialects/snowflake"  // snowflake dialect
)
