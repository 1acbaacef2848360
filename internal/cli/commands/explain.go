package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	var security map[string]string

	cmd := &cobra.Command{
		Use:   "explain <queries.yaml>",
		Short: "Validate rendered SQL against the target database",
		Long: `Render every query in a file and ask the configured target database to
plan it with EXPLAIN. Nothing is executed. A planning failure means the
rendered SQL is not valid for the target.

Queries that name no dialect are rendered for the target's dialect.`,
		Example: `  # Check queries against the target in leapcube.yaml
  leapcube explain queries/revenue.yaml

  # Print the plans as JSON
  leapcube explain queries/revenue.yaml --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(cmd, args[0], security)
		},
	}

	addSecurityFlag(cmd, &security)
	return cmd
}

func runExplain(cmd *cobra.Command, queryFile string, security map[string]string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	db, cleanup, err := cmdCtx.OpenTarget(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	plans, err := cmdCtx.Compile(cmd, queryFile, db.DialectName(), security)
	if err != nil {
		return fmt.Errorf("failed to render queries: %w", err)
	}
	cmdCtx.warnDialectMismatch(plans, db.DialectName())

	out := make([]planJSON, len(plans))
	for i, p := range plans {
		plan, err := db.Explain(cmd.Context(), p.SQL)
		if err != nil {
			return fmt.Errorf("query %s: %w", p.Name, err)
		}
		cmdCtx.Logger.Debug("query explained", "query_id", p.QueryID, "query", p.Name)
		out[i] = toPlanJSON(p)
		out[i].Plan = plan
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}
	for i, p := range out {
		if i > 0 {
			r.Println("")
		}
		r.Println(fmt.Sprintf("-- %s: ok", p.Name))
		r.Println(p.Plan)
	}
	return nil
}
