package databricks

import "github.com/leapstack-labs/leapcube/pkg/dialect"

func init() {
	dialect.Register(Databricks)
}

// Databricks is the Databricks SQL dialect.
var Databricks = dialect.New(Config).Build()
