package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/leapstack-labs/leapcube/pkg/dialect"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("model is required")
	}
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.OutputFormat, OutputFormats)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// ValidateModel checks that the semantic model file exists.
// Commands that only list registries skip this.
func (c *Config) ValidateModel() error {
	if _, err := os.Stat(c.ModelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file does not exist: %s\nHint: Create it or use --model to specify a different path", c.ModelPath)
	}
	return nil
}
