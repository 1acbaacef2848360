package config

import "github.com/leapstack-labs/leapcube/pkg/core"

// Default configuration values.
const (
	DefaultModelFile = "semantic/model.yaml"
	DefaultDialect   = "postgres"
	DefaultMaxDepth  = 32
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=json
)

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	switch t.Type {
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
	case "duckdb":
		if t.Database == "" {
			t.Database = ":memory:"
		}
	}
}
