// Package config provides configuration management for the leapcube CLI.
//
// This package extends the shared defaults from internal/config with the
// CLI-specific fields and the layered koanf loader.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapcube/internal/config"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing pkg/core.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	ModelPath       string            `koanf:"model"`
	Dialect         string            `koanf:"dialect"`
	Verbose         bool              `koanf:"verbose"`
	OutputFormat    string            `koanf:"output"`
	MaxDepth        int               `koanf:"max_depth"`
	SecurityContext map[string]string `koanf:"security_context"`
	Target          *TargetConfig     `koanf:"target"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultModelFile = sharedcfg.DefaultModelFile
	DefaultDialect   = sharedcfg.DefaultDialect
	DefaultMaxDepth  = sharedcfg.DefaultMaxDepth
	DefaultOutput    = sharedcfg.DefaultOutput
	EnvPrefix        = "LEAPCUBE_"
)

// Output formats accepted by --output.
var OutputFormats = []string{"auto", "text", "json"}
