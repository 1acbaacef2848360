package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapcube/internal/cli/config"
	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/compile"
	intconfig "github.com/leapstack-labs/leapcube/internal/config"
	"github.com/leapstack-labs/leapcube/pkg/adapter"
	"github.com/leapstack-labs/leapcube/pkg/semantic"
	"github.com/spf13/cobra"
)

// CommandContext holds the shared state a command runs with.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the config and logger the
// root command stored in the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// LoadSymbols loads and binds the configured semantic model.
func (c *CommandContext) LoadSymbols() (*semantic.SymbolTable, error) {
	if err := c.Cfg.ValidateModel(); err != nil {
		return nil, err
	}
	model, err := semantic.LoadFile(c.Cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	symbols, err := semantic.Bind(model)
	if err != nil {
		return nil, fmt.Errorf("failed to bind model %s: %w", c.Cfg.ModelPath, err)
	}
	c.Logger.Debug("model loaded",
		"path", c.Cfg.ModelPath,
		"cubes", len(symbols.Cubes()))
	return symbols, nil
}

// Compile loads queryFile and compiles every query it holds against the model.
// Security values from --security override the configured ones.
func (c *CommandContext) Compile(cmd *cobra.Command, queryFile, defaultDialect string, security map[string]string) ([]*compile.Plan, error) {
	symbols, err := c.LoadSymbols()
	if err != nil {
		return nil, err
	}
	queries, err := compile.LoadQueryFile(queryFile)
	if err != nil {
		return nil, err
	}

	compiler := compile.NewCompiler(symbols,
		compile.WithLogger(c.Logger),
		compile.WithDefaultDialect(defaultDialect),
		compile.WithMaxDepth(c.Cfg.MaxDepth),
		compile.WithSecurityContext(config.MergeSecurityContext(c.Cfg.SecurityContext, security)),
	)
	return compiler.CompileAll(cmd.Context(), queries)
}

// ErrNoTarget is returned by commands that need a database when none is configured.
var ErrNoTarget = errors.New("no target configured\nHint: Add a target section to leapcube.yaml")

// OpenTarget opens the adapter for the configured target.
// Returns the adapter and a cleanup function that must be called (typically via defer).
func (c *CommandContext) OpenTarget(cmd *cobra.Command) (adapter.Adapter, func(), error) {
	if c.Cfg.Target == nil {
		return nil, nil, ErrNoTarget
	}
	a, err := adapter.Open(cmd.Context(), intconfig.ToAdapterConfig(c.Cfg.Target), c.Logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := a.Close(); err != nil {
			c.Logger.Warn("failed to close adapter", "error", err)
		}
	}
	return a, cleanup, nil
}

// warnDialectMismatch reports plans rendered for a dialect other than the target's.
func (c *CommandContext) warnDialectMismatch(plans []*compile.Plan, target string) {
	for _, p := range plans {
		if p.Dialect != target {
			c.Renderer.Warn("warning: query %s is rendered for %s but the target speaks %s", p.Name, p.Dialect, target)
		}
	}
}

// addSecurityFlag registers --security on cmd.
func addSecurityFlag(cmd *cobra.Command, dst *map[string]string) {
	cmd.Flags().StringToStringVar(dst, "security", nil, "Security context value (key=value, repeatable)")
}

// planJSON is the JSON shape of a compiled query.
type planJSON struct {
	QueryID string       `json:"query_id"`
	Name    string       `json:"name"`
	Dialect string       `json:"dialect"`
	SQL     string       `json:"sql"`
	Columns []columnJSON `json:"columns"`
	Plan    string       `json:"plan,omitempty"`
}

type columnJSON struct {
	Alias  string `json:"alias"`
	Member string `json:"member"`
	Kind   string `json:"kind"`
}

func toPlanJSON(p *compile.Plan) planJSON {
	cols := make([]columnJSON, len(p.Columns))
	for i, col := range p.Columns {
		cols[i] = columnJSON{Alias: col.Alias, Member: col.Member, Kind: string(col.Kind)}
	}
	return planJSON{
		QueryID: p.QueryID,
		Name:    p.Name,
		Dialect: p.Dialect,
		SQL:     p.SQL,
		Columns: cols,
	}
}
