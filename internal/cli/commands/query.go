package commands

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/compile"
	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		security map[string]string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "query <queries.yaml>",
		Short: "Run rendered queries against the target database",
		Long: `Render the queries in a file for the target's dialect, execute them and
print the result rows.

Output adapts to environment:
  - Terminal: one table per query
  - Piped/Scripted: JSON rows per query`,
		Example: `  # Run every query in a file
  leapcube query queries/revenue.yaml

  # Run one named query for a tenant
  leapcube query queries/revenue.yaml --name revenue_by_customer --security tenant=acme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], name, security)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Run only the query with this name")
	addSecurityFlag(cmd, &security)
	return cmd
}

type queryResultJSON struct {
	Name    string           `json:"name"`
	QueryID string           `json:"query_id"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

func runQuery(cmd *cobra.Command, queryFile, name string, security map[string]string) error {
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
	if name != "" {
		idx := slices.IndexFunc(plans, func(p *compile.Plan) bool { return p.Name == name })
		if idx < 0 {
			return fmt.Errorf("no query named %q in %s", name, queryFile)
		}
		plans = plans[idx : idx+1]
	}
	cmdCtx.warnDialectMismatch(plans, db.DialectName())

	var results []queryResultJSON
	for i, p := range plans {
		rows, err := db.Query(cmd.Context(), p.SQL)
		if err != nil {
			return fmt.Errorf("query %s: %w", p.Name, err)
		}
		cols, data, err := collectRows(rows)
		_ = rows.Close()
		if err != nil {
			return fmt.Errorf("query %s: %w", p.Name, err)
		}
		cmdCtx.Logger.Debug("query executed", "query_id", p.QueryID, "query", p.Name, "rows", len(data))

		if r.EffectiveMode() == output.ModeJSON {
			results = append(results, queryResultJSON{Name: p.Name, QueryID: p.QueryID, Columns: cols, Rows: data})
			continue
		}
		if i > 0 {
			r.Println("")
		}
		r.Println(fmt.Sprintf("-- %s", p.Name))
		renderTable(r, cols, data)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(results)
	}
	return nil
}
