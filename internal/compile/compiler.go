package compile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/dialect"
	"github.com/leapstack-labs/leapcube/pkg/planner"
	"github.com/leapstack-labs/leapcube/pkg/semantic"
)

// Column describes one column of a compiled SELECT.
type Column struct {
	Alias  string
	Member string
	Kind   core.SymbolKind
	SQL    string
}

// Plan is a compiled query.
type Plan struct {
	QueryID string
	Name    string
	Dialect string
	SQL     string
	Columns []Column
}

// Compiler compiles queries against one bound model.
type Compiler struct {
	symbols        *semantic.SymbolTable
	logger         *slog.Logger
	defaultDialect string
	maxDepth       int
	security       map[string]string
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the compiler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultDialect sets the dialect used by queries that name none.
func WithDefaultDialect(name string) Option {
	return func(c *Compiler) {
		c.defaultDialect = name
	}
}

// WithMaxDepth bounds expression nesting.
func WithMaxDepth(n int) Option {
	return func(c *Compiler) {
		c.maxDepth = n
	}
}

// WithSecurityContext sets values merged under each query's own security context.
func WithSecurityContext(values map[string]string) Option {
	return func(c *Compiler) {
		c.security = values
	}
}

// NewCompiler creates a compiler for the bound model.
func NewCompiler(symbols *semantic.SymbolTable, opts ...Option) *Compiler {
	c := &Compiler{
		symbols:  symbols,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: planner.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile renders q as a SELECT statement.
func (c *Compiler) Compile(ctx context.Context, q *Query) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dialectName := q.Dialect
	if dialectName == "" {
		dialectName = c.defaultDialect
	}
	d, err := dialect.Lookup(dialectName)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}

	b, err := c.newBuilder(q, d)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}
	sql, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Name, err)
	}

	plan := &Plan{
		QueryID: uuid.NewString(),
		Name:    q.Name,
		Dialect: d.GetName(),
		SQL:     sql,
		Columns: b.columns,
	}
	c.logger.Debug("compiled query",
		"query_id", plan.QueryID,
		"query", plan.Name,
		"dialect", plan.Dialect,
		"columns", len(plan.Columns))
	return plan, nil
}

// CompileAll compiles queries concurrently. Plans are returned in input
// order; the first failure cancels the rest.
func (c *Compiler) CompileAll(ctx context.Context, queries []*Query) ([]*Plan, error) {
	plans := make([]*Plan, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		g.Go(func() error {
			plan, err := c.Compile(gctx, q)
			if err != nil {
				return err
			}
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// builder holds the state of one query compilation.
type builder struct {
	q        *Query
	symbols  *semantic.SymbolTable
	dialect  *dialect.Dialect
	tools    *planner.QueryTools
	vctx     *planner.VisitorContext
	members  []planner.Member
	byName   map[string]planner.Member
	columns  []Column
	grouping []int
	agg      bool
}

func (c *Compiler) newBuilder(q *Query, d *dialect.Dialect) (*builder, error) {
	if q.From.Cube == "" {
		return nil, fmt.Errorf("from.cube is required")
	}

	refs := append([]CubeRef{q.From}, joinRefs(q.Joins)...)
	cubes := make([]planner.CubeAlias, len(refs))
	for i, ref := range refs {
		if _, ok := c.symbols.Cube(ref.Cube); !ok {
			return nil, fmt.Errorf("unknown cube %q", ref.Cube)
		}
		alias := ref.Alias
		if alias == "" {
			alias = ref.Cube
		}
		cubes[i] = planner.CubeAlias{Cube: ref.Cube, Alias: alias}
	}
	tools, err := planner.NewQueryTools(d, cubes...)
	if err != nil {
		return nil, err
	}

	security := make(map[string]string, len(c.security)+len(q.SecurityContext))
	for k, v := range c.security {
		security[k] = v
	}
	for k, v := range q.SecurityContext {
		security[k] = v
	}

	return &builder{
		q:       q,
		symbols: c.symbols,
		dialect: d,
		tools:   tools,
		vctx:    planner.NewVisitorContext(planner.WithMaxDepth(c.maxDepth), planner.WithSecurityContext(security)),
		byName:  make(map[string]planner.Member),
	}, nil
}

func joinRefs(joins []Join) []CubeRef {
	refs := make([]CubeRef, len(joins))
	for i, j := range joins {
		refs[i] = j.CubeRef
	}
	return refs
}

func (b *builder) lookup(name string, kinds ...core.SymbolKind) (*core.MemberSymbol, error) {
	sym, ok := b.symbols.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown member %q", name)
	}
	for _, k := range kinds {
		if sym.Kind == k {
			return sym, nil
		}
	}
	return nil, fmt.Errorf("member %s is a %s", name, sym.Kind)
}

func (b *builder) build() (string, error) {
	if err := b.selectMembers(); err != nil {
		return "", err
	}
	if len(b.members) == 0 {
		return "", fmt.Errorf("query selects no members")
	}
	if err := planner.CheckUniqueAliases(b.members); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n")
	for i, m := range b.members {
		sql, err := m.ToSQL(b.vctx, b.dialect)
		if err != nil {
			return "", err
		}
		b.columns[i].SQL = sql
		sb.WriteString("  ")
		sb.WriteString(b.dialect.AliasedExpr(sql, m.AliasName()))
		if i < len(b.members)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	from, err := b.source(b.q.From)
	if err != nil {
		return "", err
	}
	sb.WriteString("FROM " + from)
	for _, j := range b.q.Joins {
		clause, err := b.join(j)
		if err != nil {
			return "", err
		}
		sb.WriteString("\n" + clause)
	}

	where, having, err := b.filters()
	if err != nil {
		return "", err
	}
	if len(where) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(where, " AND "))
	}
	// HAVING makes the query aggregate even when no measure is selected.
	if (b.agg || len(having) > 0) && len(b.grouping) > 0 {
		ords := make([]string, len(b.grouping))
		for i, n := range b.grouping {
			ords[i] = strconv.Itoa(n)
		}
		sb.WriteString("\nGROUP BY " + strings.Join(ords, ", "))
	}
	if len(having) > 0 {
		sb.WriteString("\nHAVING " + strings.Join(having, " AND "))
	}

	order, err := b.orderBy()
	if err != nil {
		return "", err
	}
	if order != "" {
		sb.WriteString("\nORDER BY " + order)
	}
	if b.q.Limit != nil {
		if *b.q.Limit < 0 {
			return "", fmt.Errorf("limit must not be negative")
		}
		sb.WriteString("\nLIMIT " + strconv.Itoa(*b.q.Limit))
	}
	return sb.String(), nil
}

func (b *builder) selectMembers() error {
	for _, name := range b.q.Dimensions {
		sym, err := b.lookup(name, core.KindDimension, core.KindTimeDimension)
		if err != nil {
			return err
		}
		// Time dimensions selected here are grouped on the raw value.
		m, err := planner.NewDimension(sym, b.tools)
		if err != nil {
			return err
		}
		b.addMember(name, m, false)
	}

	for _, td := range b.q.TimeDimensions {
		sym, err := b.lookup(td.Dimension, core.KindTimeDimension)
		if err != nil {
			return err
		}
		m, err := planner.NewTimeDimension(sym, td.Granularity, b.tools)
		if err != nil {
			return fmt.Errorf("%s: %w", td.Dimension, err)
		}
		b.addMember(td.Dimension+"."+td.Granularity, m, false)
	}

	for _, ref := range b.q.Measures {
		sym, err := b.lookup(ref.Member, core.KindMeasure)
		if err != nil {
			return err
		}
		m, err := planner.NewMeasure(sym, b.tools, planner.WithAliasSuffix(ref.Suffix))
		if err != nil {
			return err
		}
		key := ref.Member
		if ref.Suffix != "" {
			key += "." + ref.Suffix
		}
		b.addMember(key, m, true)
	}

	for _, calc := range b.q.Calculated {
		sym, err := b.symbols.NewCalculated(calc.Cube, calc.Name, calc.SQL)
		if err != nil {
			return err
		}
		m, err := planner.NewCalculatedMember(sym, b.tools)
		if err != nil {
			return err
		}
		b.addMember(sym.FullName(), m, m.Aggregated())
	}
	return nil
}

func (b *builder) addMember(key string, m planner.Member, aggregated bool) {
	b.members = append(b.members, m)
	b.columns = append(b.columns, Column{Alias: m.AliasName(), Member: m.FullName(), Kind: m.MemberEvaluator().Kind})
	if _, ok := b.byName[key]; !ok {
		b.byName[key] = m
	}
	if aggregated {
		b.agg = true
	} else {
		b.grouping = append(b.grouping, len(b.members))
	}
}

// source renders a cube's FROM item with its alias.
func (b *builder) source(ref CubeRef) (string, error) {
	expr, err := b.symbols.Source(ref.Cube)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, seg := range expr.Segments {
		switch seg.Kind {
		case core.SegmentSQL:
			sb.WriteString(seg.Text)
		case core.SegmentSecurity:
			v, ok := b.vctx.SecurityValue(seg.Text)
			if !ok {
				return "", fmt.Errorf("cube %s: security context has no value for %q", ref.Cube, seg.Text)
			}
			sb.WriteString(quoteLiteral(v))
		}
	}
	alias, err := b.tools.AliasForCube(ref.Cube)
	if err != nil {
		return "", err
	}
	return sb.String() + " AS " + b.dialect.QuoteIdentifierIfNeeded(alias), nil
}

var joinTypes = map[string]string{
	"":      "LEFT JOIN",
	"left":  "LEFT JOIN",
	"inner": "INNER JOIN",
	"right": "RIGHT JOIN",
	"full":  "FULL JOIN",
}

func (b *builder) join(j Join) (string, error) {
	kw, ok := joinTypes[strings.ToLower(j.Type)]
	if !ok {
		return "", fmt.Errorf("join %s: unknown join type %q", j.Cube, j.Type)
	}
	if strings.TrimSpace(j.On) == "" {
		return "", fmt.Errorf("join %s: on is required", j.Cube)
	}
	src, err := b.source(j.CubeRef)
	if err != nil {
		return "", err
	}
	on, err := b.renderOn(j.On)
	if err != nil {
		return "", fmt.Errorf("join %s: %w", j.Cube, err)
	}
	return kw + " " + src + " ON " + on, nil
}

// renderOn replaces {cube} placeholders with the cube's quoted alias.
func (b *builder) renderOn(on string) (string, error) {
	var sb strings.Builder
	rest := on
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated '{' in %q", on)
		}
		sb.WriteString(rest[:open])
		cube := strings.TrimSpace(rest[open+1 : open+end])
		alias, err := b.tools.AliasForCube(cube)
		if err != nil {
			return "", err
		}
		sb.WriteString(b.dialect.QuoteIdentifierIfNeeded(alias))
		rest = rest[open+end+1:]
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
