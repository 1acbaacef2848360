package commands

import (
	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the registered SQL dialects",
		Long:  `List every SQL dialect queries can be rendered for, with its identifier rules.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

type dialectJSON struct {
	Name                string `json:"name"`
	Quote               string `json:"quote"`
	Normalization       string `json:"normalization"`
	MaxIdentifierLength int    `json:"max_identifier_length"`
	DefaultSchema       string `json:"default_schema"`
	ApproxCountDistinct string `json:"approx_count_distinct,omitempty"`
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	var dialects []dialectJSON
	for _, name := range dialect.List() {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		dialects = append(dialects, dialectJSON{
			Name:                d.Name,
			Quote:               d.Identifiers.Quote,
			Normalization:       normalizationName(d.Identifiers.Normalization),
			MaxIdentifierLength: d.MaxIdentifierLength,
			DefaultSchema:       d.DefaultSchema,
			ApproxCountDistinct: d.ApproxCountDistinct,
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(dialects)
	}

	rows := make([][]any, len(dialects))
	for i, d := range dialects {
		maxLen := any(d.MaxIdentifierLength)
		if d.MaxIdentifierLength == 0 {
			maxLen = "-"
		}
		rows[i] = []any{d.Name, d.Quote, d.Normalization, maxLen, d.DefaultSchema}
	}
	r.Table([]string{"Dialect", "Quote", "Normalization", "Max Identifier", "Default Schema"}, rows)
	return nil
}

func normalizationName(n core.NormalizationStrategy) string {
	switch n {
	case core.NormUppercase:
		return "uppercase"
	case core.NormCaseSensitive:
		return "case_sensitive"
	case core.NormCaseInsensitive:
		return "case_insensitive"
	default:
		return "lowercase"
	}
}
