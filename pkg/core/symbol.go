package core

import "strings"

// SymbolKind classifies a member symbol.
type SymbolKind string

// Symbol kinds.
const (
	KindDimension     SymbolKind = "dimension"
	KindTimeDimension SymbolKind = "time_dimension"
	KindMeasure       SymbolKind = "measure"
	KindCalculated    SymbolKind = "calculated"
)

// IsDimension reports whether the kind groups rows (dimension or time dimension).
func (k SymbolKind) IsDimension() bool {
	return k == KindDimension || k == KindTimeDimension
}

// MemberSymbol is the resolved semantic meaning behind a member: which cube
// it belongs to, its name and how its value is computed.
//
// Symbols are produced by a binding pass and never mutated afterwards.
// They are shared by pointer; identity is pointer identity.
type MemberSymbol struct {
	Cube string
	Name string
	Kind SymbolKind
	// AggType is the aggregation of a measure (sum, count, ...). Empty otherwise.
	AggType string
	// Type is the declared value type (string, number, time, ...).
	Type string
	// Expr describes how the value is computed. Nil means the bare column
	// named after the member ({CUBE}.name), or COUNT(*) for count measures.
	Expr *Expression
}

// FullName returns the qualified name cube.member.
func (s *MemberSymbol) FullName() string {
	return s.Cube + "." + s.Name
}

// Deps returns the symbols referenced by the expression in first-occurrence order.
func (s *MemberSymbol) Deps() []*MemberSymbol {
	if s.Expr == nil {
		return nil
	}
	return s.Expr.Deps()
}

// SegmentKind distinguishes the parts of an expression.
type SegmentKind int

const (
	// SegmentSQL is literal SQL text.
	SegmentSQL SegmentKind = iota
	// SegmentCube is the owning cube placeholder ({CUBE}).
	SegmentCube
	// SegmentRef is a reference to another member symbol.
	SegmentRef
	// SegmentSecurity is a security context value ({SECURITY_CONTEXT.key}).
	SegmentSecurity
)

// Segment is one part of an Expression.
type Segment struct {
	Kind SegmentKind
	Text string        // literal SQL for SegmentSQL, context key for SegmentSecurity
	Ref  *MemberSymbol // referenced symbol for SegmentRef
}

// Expression is a compiled SQL template: literal text interleaved with cube
// placeholders and references to other symbols.
type Expression struct {
	Source   string
	Segments []Segment
}

// Deps returns the referenced symbols, deduplicated, in first-occurrence order.
func (e *Expression) Deps() []*MemberSymbol {
	var deps []*MemberSymbol
	seen := make(map[*MemberSymbol]struct{})
	for _, seg := range e.Segments {
		if seg.Kind != SegmentRef || seg.Ref == nil {
			continue
		}
		if _, ok := seen[seg.Ref]; ok {
			continue
		}
		seen[seg.Ref] = struct{}{}
		deps = append(deps, seg.Ref)
	}
	return deps
}

// IsEmpty reports whether the expression has no SQL at all.
func (e *Expression) IsEmpty() bool {
	return e == nil || strings.TrimSpace(e.Source) == ""
}
