package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var security map[string]string

	cmd := &cobra.Command{
		Use:   "render <queries.yaml>",
		Short: "Render SQL for the queries in a file",
		Long: `Compile every query document in a YAML file against the semantic model
and print the generated SQL.

Queries that name no dialect use --dialect (or the configured dialect).
Security context values come from the config file and --security flags.

Output adapts to environment:
  - Terminal: SQL with a comment header per query
  - Piped/Scripted: JSON with the SQL and column aliases`,
		Example: `  # Render SQL for all queries in a file
  leapcube render queries/revenue.yaml

  # Render for Snowflake with a tenant bound
  leapcube render queries/revenue.yaml --dialect snowflake --security tenant=acme

  # Render as JSON
  leapcube render queries/revenue.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], security)
		},
	}

	addSecurityFlag(cmd, &security)
	return cmd
}

func runRender(cmd *cobra.Command, queryFile string, security map[string]string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	plans, err := cmdCtx.Compile(cmd, queryFile, cmdCtx.Cfg.Dialect, security)
	if err != nil {
		return fmt.Errorf("failed to render queries: %w", err)
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]planJSON, len(plans))
		for i, p := range plans {
			out[i] = toPlanJSON(p)
		}
		return r.JSON(out)
	}

	for i, p := range plans {
		if i > 0 {
			r.Println("")
		}
		r.Println(fmt.Sprintf("-- %s (%s)", p.Name, p.Dialect))
		r.Println(p.SQL + ";")
	}
	return nil
}
