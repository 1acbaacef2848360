package planner

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// renderer evaluates symbol expressions against one query's cube aliases.
type renderer struct {
	tools     *QueryTools
	templates Templates
}

// value renders what sym evaluates to: measures are aggregated, everything
// else renders its expression.
func (r renderer) value(sym *core.MemberSymbol, ctx *VisitorContext) (string, error) {
	expr, err := r.expression(sym, ctx)
	if err != nil {
		return "", err
	}
	if sym.Kind != core.KindMeasure {
		return expr, nil
	}
	sql, err := r.templates.Aggregate(sym.AggType, expr)
	if err != nil {
		return "", wrapRenderError(sym.FullName(), err)
	}
	return sql, nil
}

// expression renders sym's expression without aggregation. A symbol without
// an expression is the column named after it, except count measures which
// aggregate all rows.
func (r renderer) expression(sym *core.MemberSymbol, ctx *VisitorContext) (string, error) {
	if sym.Expr.IsEmpty() {
		if sym.Kind == core.KindMeasure {
			if sym.AggType == "count" {
				return "", nil
			}
			return "", NewSQLGenerationError(sym.FullName(), "%s measure has no sql expression", sym.AggType)
		}
		if sym.Kind == core.KindCalculated {
			return "", NewSQLGenerationError(sym.FullName(), "calculated member has no sql expression")
		}
		cube, err := r.cubeRef(sym)
		if err != nil {
			return "", err
		}
		return cube + "." + r.templates.QuoteIdentifierIfNeeded(sym.Name), nil
	}

	var b strings.Builder
	for _, seg := range sym.Expr.Segments {
		switch seg.Kind {
		case core.SegmentSQL:
			b.WriteString(seg.Text)
		case core.SegmentCube:
			cube, err := r.cubeRef(sym)
			if err != nil {
				return "", err
			}
			b.WriteString(cube)
		case core.SegmentRef:
			if seg.Ref == nil {
				return "", NewSQLGenerationError(sym.FullName(), "unresolved reference in %q", sym.Expr.Source)
			}
			next := ctx.Nested()
			if next.Exceeded() {
				return "", NewSQLGenerationError(sym.FullName(), "expression nesting exceeds %d levels at %s", ctx.MaxDepth(), seg.Ref.FullName())
			}
			sql, err := r.value(seg.Ref, next)
			if err != nil {
				return "", err
			}
			if seg.Ref.Kind == core.KindMeasure || seg.Ref.Kind == core.KindCalculated {
				sql = "(" + sql + ")"
			}
			b.WriteString(sql)
		case core.SegmentSecurity:
			v, ok := ctx.SecurityValue(seg.Text)
			if !ok {
				return "", NewSQLGenerationError(sym.FullName(), "security context has no value for %q", seg.Text)
			}
			b.WriteString(quoteLiteral(v))
		default:
			return "", NewSQLGenerationError(sym.FullName(), "unknown expression segment %d", seg.Kind)
		}
	}
	return b.String(), nil
}

// cubeRef renders the quoted alias of sym's cube. An unresolved cube is
// reported against sym as Ref; the member being rendered is filled in by
// its ToSQL.
func (r renderer) cubeRef(sym *core.MemberSymbol) (string, error) {
	alias, err := r.tools.AliasForCube(sym.Cube)
	if err != nil {
		var unresolved *UnresolvedCubeAliasError
		if errors.As(err, &unresolved) {
			return "", &UnresolvedCubeAliasError{Cube: unresolved.Cube, Ref: sym.FullName()}
		}
		return "", err
	}
	return r.templates.QuoteIdentifierIfNeeded(alias), nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
