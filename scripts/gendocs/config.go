package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	clicfg "github.com/leapstack-labs/leapcube/internal/cli/config"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "project", "target", "duckdb", "postgres"
}

// getConfigSchema returns the configuration schema definition.
// This is based on internal/cli/config Config and core.TargetConfig.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "model", Type: "string", Default: clicfg.DefaultModelFile, Description: "Semantic model file, relative to the project root", Category: "project"},
		{Name: "dialect", Type: "string", Default: clicfg.DefaultDialect, Description: "Dialect for queries that name none", Category: "project"},
		{Name: "output", Type: "string", Default: clicfg.DefaultOutput, Description: "Output format: auto, text or json", Category: "project"},
		{Name: "max_depth", Type: "int", Default: fmt.Sprint(clicfg.DefaultMaxDepth), Description: "Maximum expression nesting depth", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr", Category: "project"},
		{Name: "security_context", Type: "map[string]string", Description: "Values for {SECURITY_CONTEXT.key} placeholders", Category: "project"},

		{Name: "type", Type: "string", Description: "Adapter type: duckdb or postgres", Category: "target"},
		{Name: "schema", Type: "string", Description: "Default schema (the dialect's default when unset)", Category: "target"},
		{Name: "options", Type: "map[string]string", Description: "Driver options such as statement_timeout", Category: "target"},
		{Name: "params", Type: "map[string]any", Description: "Adapter-specific parameters", Category: "target"},

		{Name: "database", Type: "string", Default: ":memory:", Description: "Database file", Category: "duckdb"},
		{Name: "params.extensions", Type: "[]string", Description: "Extensions to INSTALL and LOAD on connect", Category: "duckdb"},
		{Name: "params.settings", Type: "map[string]any", Description: "Settings applied with SET on connect", Category: "duckdb"},

		{Name: "host", Type: "string", Description: "Database host", Category: "postgres"},
		{Name: "port", Type: "int", Default: "5432", Description: "Database port", Category: "postgres"},
		{Name: "user", Type: "string", Description: "Database username", Category: "postgres"},
		{Name: "password", Type: "string", Description: "Database password", Category: "postgres"},
		{Name: "database", Type: "string", Description: "Database name", Category: "postgres"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "leapcube configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leapcube is configured via `leapcube.yaml` (or `leapcube.yml`), searched upward from the working directory. Flags override " + InlineCode(clicfg.EnvPrefix) + " environment variables, which override the file.")

	fields := getConfigSchema()
	sections := []struct {
		category string
		title    string
		intro    string
	}{
		{"project", "Project Settings", "Top-level keys:"},
		{"target", "Target", "The optional `target` section names the database `leapcube explain` and `leapcube query` connect to."},
		{"duckdb", "DuckDB", "DuckDB runs in-process, in memory unless a database file is given."},
		{"postgres", "PostgreSQL", "PostgreSQL connects through pgx. The target schema becomes the search_path."},
	}
	for _, sec := range sections {
		level := 2
		if sec.category == "duckdb" || sec.category == "postgres" {
			level = 3
		}
		w.Header(level, sec.title)
		w.Paragraph(sec.intro)

		var rows [][]string
		for _, f := range fields {
			if f.Category != sec.category {
				continue
			}
			defVal := f.Default
			if defVal == "" {
				defVal = "-"
			} else {
				defVal = InlineCode(defVal)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
		}
		w.Table([]string{"Field", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# leapcube.yaml
model: semantic/model.yaml
dialect: postgres
output: auto
max_depth: 32

security_context:
  tenant: ${TENANT_ID}

target:
  type: postgres
  host: localhost
  port: 5432
  user: analytics
  password: ${POSTGRES_PASSWORD}
  database: warehouse
  schema: analytics
  options:
    statement_timeout: 30s`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Use `${VAR_NAME}` syntax to reference environment variables in target credentials and security context values.")

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
