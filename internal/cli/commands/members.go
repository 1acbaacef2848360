package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/spf13/cobra"
)

// NewMembersCommand creates the members command.
func NewMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members [cube]",
		Short: "List the members of the semantic model",
		Long: `List every bound member of the semantic model with its kind, type and
source expression. Pass a cube name to list only that cube.`,
		Example: `  # List all members
  leapcube members

  # List the members of one cube as JSON
  leapcube members orders --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cube string
			if len(args) == 1 {
				cube = args[0]
			}
			return runMembers(cmd, cube)
		},
	}
}

type memberJSON struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Type    string `json:"type,omitempty"`
	AggType string `json:"agg_type,omitempty"`
	SQL     string `json:"sql,omitempty"`
}

func runMembers(cmd *cobra.Command, cube string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	symbols, err := cmdCtx.LoadSymbols()
	if err != nil {
		return err
	}

	cubes := symbols.Cubes()
	if cube != "" {
		if _, ok := symbols.Cube(cube); !ok {
			return fmt.Errorf("unknown cube %q (available: %v)", cube, cubes)
		}
		cubes = []string{cube}
	}

	var members []memberJSON
	for _, name := range cubes {
		for _, sym := range symbols.Members(name) {
			members = append(members, memberJSON{
				Name:    sym.FullName(),
				Kind:    string(sym.Kind),
				Type:    sym.Type,
				AggType: sym.AggType,
				SQL:     exprSource(sym),
			})
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(members)
	}

	rows := make([][]any, len(members))
	for i, m := range members {
		rows[i] = []any{m.Name, m.Kind, m.Type, m.AggType, m.SQL}
	}
	r.Table([]string{"Member", "Kind", "Type", "Aggregation", "SQL"}, rows)
	return nil
}

func exprSource(sym *core.MemberSymbol) string {
	if sym.Expr == nil {
		return ""
	}
	return sym.Expr.Source
}
