package semantic

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// UnknownReferenceError is returned when an expression references a member
// that does not exist.
type UnknownReferenceError struct {
	Member string
	Ref    string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown member %s", e.Member, e.Ref)
}

// AggregateReferenceError is returned when a dimension expression references
// a measure. Dimensions are grouped by, so they cannot contain aggregates.
type AggregateReferenceError struct {
	Member string
	Ref    string
}

func (e *AggregateReferenceError) Error() string {
	return fmt.Sprintf("dimension %s cannot reference measure %s", e.Member, e.Ref)
}

// CycleError is returned when member expressions reference each other in a loop.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "reference cycle: " + strings.Join(e.Path, " -> ")
}

// SymbolTable holds the bound symbols of a model.
type SymbolTable struct {
	model   *Model
	symbols map[string]*core.MemberSymbol
	members map[string][]*core.MemberSymbol
	sources map[string]*core.Expression
}

// Bind resolves every member expression of m into symbols. The model must
// be valid.
func Bind(m *Model) (*SymbolTable, error) {
	st := &SymbolTable{
		model:   m,
		symbols: make(map[string]*core.MemberSymbol),
		members: make(map[string][]*core.MemberSymbol, len(m.Cubes)),
		sources: make(map[string]*core.Expression, len(m.Cubes)),
	}

	sources := make(map[*core.MemberSymbol]string)
	for _, c := range m.Cubes {
		src, err := compileSource(&c)
		if err != nil {
			return nil, err
		}
		st.sources[c.Name] = src
		for _, d := range c.Dimensions {
			kind := core.KindDimension
			if d.Type == TypeTime {
				kind = core.KindTimeDimension
			}
			sym := &core.MemberSymbol{Cube: c.Name, Name: d.Name, Kind: kind, Type: d.Type}
			st.add(sym)
			sources[sym] = d.SQL
		}
		for _, meas := range c.Measures {
			sym := &core.MemberSymbol{Cube: c.Name, Name: meas.Name, Kind: core.KindMeasure, AggType: meas.Type, Type: TypeNumber}
			st.add(sym)
			sources[sym] = meas.SQL
		}
	}

	for _, c := range m.Cubes {
		for _, sym := range st.members[c.Name] {
			src := sources[sym]
			if strings.TrimSpace(src) == "" {
				continue
			}
			expr, err := st.compile(sym, src)
			if err != nil {
				return nil, err
			}
			sym.Expr = expr
		}
	}

	if err := st.checkCycles(); err != nil {
		return nil, err
	}
	return st, nil
}

// Lookup returns the symbol for cube.member.
func (st *SymbolTable) Lookup(fullName string) (*core.MemberSymbol, bool) {
	sym, ok := st.symbols[fullName]
	return sym, ok
}

// Cubes returns the cube names in model order.
func (st *SymbolTable) Cubes() []string {
	names := make([]string, len(st.model.Cubes))
	for i, c := range st.model.Cubes {
		names[i] = c.Name
	}
	return names
}

// Cube returns the definition of a cube.
func (st *SymbolTable) Cube(name string) (*Cube, bool) {
	return st.model.Cube(name)
}

// Source returns the FROM source of a cube. Its only placeholders are
// security context values.
func (st *SymbolTable) Source(cube string) (*core.Expression, error) {
	src, ok := st.sources[cube]
	if !ok {
		return nil, fmt.Errorf("unknown cube %q", cube)
	}
	return src, nil
}

// Members returns the symbols of a cube, dimensions first, in model order.
func (st *SymbolTable) Members(cube string) []*core.MemberSymbol {
	out := make([]*core.MemberSymbol, len(st.members[cube]))
	copy(out, st.members[cube])
	return out
}

// NewCalculated binds an ad-hoc expression owned by cube. The new symbol is
// not added to the table, so nothing in the model can reference it.
func (st *SymbolTable) NewCalculated(cube, name, sql string) (*core.MemberSymbol, error) {
	if _, ok := st.model.Cube(cube); !ok {
		return nil, fmt.Errorf("calculated member %s: unknown cube %q", name, cube)
	}
	if !isName(name) {
		return nil, fmt.Errorf("calculated member %q: name must contain only letters, digits and underscores", name)
	}
	if _, exists := st.symbols[cube+"."+name]; exists {
		return nil, fmt.Errorf("calculated member %s.%s: name already used by the model", cube, name)
	}
	if strings.TrimSpace(sql) == "" {
		return nil, fmt.Errorf("calculated member %s.%s: sql is required", cube, name)
	}
	sym := &core.MemberSymbol{Cube: cube, Name: name, Kind: core.KindCalculated}
	expr, err := st.compile(sym, sql)
	if err != nil {
		return nil, err
	}
	sym.Expr = expr
	return sym, nil
}

func (st *SymbolTable) add(sym *core.MemberSymbol) {
	st.symbols[sym.FullName()] = sym
	st.members[sym.Cube] = append(st.members[sym.Cube], sym)
}

func compileSource(c *Cube) (*core.Expression, error) {
	from := c.From()
	if c.SQLTable != "" {
		return &core.Expression{Source: from, Segments: []core.Segment{{Kind: core.SegmentSQL, Text: from}}}, nil
	}
	tokens, err := tokenize(from)
	if err != nil {
		return nil, fmt.Errorf("cube %s: %w", c.Name, err)
	}
	expr := &core.Expression{Source: from, Segments: make([]core.Segment, 0, len(tokens))}
	for _, tok := range tokens {
		switch tok.kind {
		case tokenSQL:
			expr.Segments = append(expr.Segments, core.Segment{Kind: core.SegmentSQL, Text: tok.text})
		case tokenSecurity:
			expr.Segments = append(expr.Segments, core.Segment{Kind: core.SegmentSecurity, Text: tok.text})
		default:
			return nil, fmt.Errorf("cube %s: cube sql may only reference {SECURITY_CONTEXT.key}", c.Name)
		}
	}
	return expr, nil
}

// compile turns src into an expression with references resolved against
// the table. Unqualified references resolve within owner's cube.
func (st *SymbolTable) compile(owner *core.MemberSymbol, src string) (*core.Expression, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", owner.FullName(), err)
	}

	expr := &core.Expression{Source: src, Segments: make([]core.Segment, 0, len(tokens))}
	for _, tok := range tokens {
		switch tok.kind {
		case tokenSQL:
			expr.Segments = append(expr.Segments, core.Segment{Kind: core.SegmentSQL, Text: tok.text})
		case tokenCube:
			expr.Segments = append(expr.Segments, core.Segment{Kind: core.SegmentCube})
		case tokenSecurity:
			expr.Segments = append(expr.Segments, core.Segment{Kind: core.SegmentSecurity, Text: tok.text})
		case tokenRef:
			cube := tok.cube
			if cube == "" {
				cube = owner.Cube
			}
			ref, ok := st.symbols[cube+"."+tok.name]
			if !ok {
				return nil, &UnknownReferenceError{Member: owner.FullName(), Ref: cube + "." + tok.name}
			}
			if ref.Kind == core.KindMeasure && (owner.Kind == core.KindDimension || owner.Kind == core.KindTimeDimension) {
				return nil, &AggregateReferenceError{Member: owner.FullName(), Ref: ref.FullName()}
			}
			expr.Segments = append(expr.Segments, core.Segment{Kind: core.SegmentRef, Ref: ref})
		}
	}
	return expr, nil
}

// checkCycles walks the reference graph depth first in model order.
func (st *SymbolTable) checkCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*core.MemberSymbol]int, len(st.symbols))
	var path []string

	var visit func(sym *core.MemberSymbol) error
	visit = func(sym *core.MemberSymbol) error {
		switch state[sym] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, name := range path {
				if name == sym.FullName() {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), sym.FullName())
			return &CycleError{Path: cycle}
		}
		state[sym] = visiting
		path = append(path, sym.FullName())
		for _, dep := range sym.Deps() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[sym] = done
		return nil
	}

	for _, c := range st.model.Cubes {
		for _, sym := range st.members[c.Name] {
			if err := visit(sym); err != nil {
				return err
			}
		}
	}
	return nil
}
