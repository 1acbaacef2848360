package compile

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/planner"
)

// Filter operators.
const (
	OpEquals    = "equals"
	OpNotEquals = "not_equals"
	OpIn        = "in"
	OpNotIn     = "not_in"
	OpGt        = "gt"
	OpGte       = "gte"
	OpLt        = "lt"
	OpLte       = "lte"
	OpSet       = "set"
	OpNotSet    = "not_set"
	OpBetween   = "between"
)

var comparisons = map[string]string{
	OpEquals:    "=",
	OpNotEquals: "<>",
	OpGt:        ">",
	OpGte:       ">=",
	OpLt:        "<",
	OpLte:       "<=",
}

// filters renders dimension filters for WHERE and measure filters for HAVING.
// Filtered members need not be selected.
func (b *builder) filters() (where, having []string, err error) {
	fctx := b.vctx.ForFilter()
	for _, f := range b.q.Filters {
		m, err := b.filterMember(f.Member)
		if err != nil {
			return nil, nil, err
		}
		expr, err := m.ToSQL(fctx, b.dialect)
		if err != nil {
			return nil, nil, err
		}
		cond, err := condition(expr, f)
		if err != nil {
			return nil, nil, fmt.Errorf("filter on %s: %w", f.Member, err)
		}
		if m.MemberEvaluator().Kind == core.KindMeasure {
			having = append(having, cond)
		} else {
			where = append(where, cond)
		}
	}
	return where, having, nil
}

func (b *builder) filterMember(name string) (planner.Member, error) {
	sym, err := b.lookup(name, core.KindDimension, core.KindTimeDimension, core.KindMeasure)
	if err != nil {
		return nil, err
	}
	if sym.Kind == core.KindMeasure {
		return planner.NewMeasure(sym, b.tools)
	}
	return planner.NewDimension(sym, b.tools)
}

func condition(expr string, f Filter) (string, error) {
	if op, ok := comparisons[f.Operator]; ok {
		if len(f.Values) != 1 {
			return "", fmt.Errorf("%s takes exactly one value", f.Operator)
		}
		return expr + " " + op + " " + quoteLiteral(f.Values[0]), nil
	}

	switch f.Operator {
	case OpIn, OpNotIn:
		if len(f.Values) == 0 {
			return "", fmt.Errorf("%s needs at least one value", f.Operator)
		}
		vals := make([]string, len(f.Values))
		for i, v := range f.Values {
			vals[i] = quoteLiteral(v)
		}
		kw := " IN ("
		if f.Operator == OpNotIn {
			kw = " NOT IN ("
		}
		return expr + kw + strings.Join(vals, ", ") + ")", nil
	case OpSet:
		return expr + " IS NOT NULL", nil
	case OpNotSet:
		return expr + " IS NULL", nil
	case OpBetween:
		if len(f.Values) != 2 {
			return "", fmt.Errorf("between takes exactly two values")
		}
		return expr + " BETWEEN " + quoteLiteral(f.Values[0]) + " AND " + quoteLiteral(f.Values[1]), nil
	default:
		return "", fmt.Errorf("unknown operator %q", f.Operator)
	}
}

// orderBy renders ORDER BY against selected column aliases.
func (b *builder) orderBy() (string, error) {
	if len(b.q.Order) == 0 {
		return "", nil
	}
	items := make([]string, len(b.q.Order))
	for i, o := range b.q.Order {
		m, ok := b.byName[o.Member]
		if !ok {
			return "", fmt.Errorf("order by %s: member is not selected", o.Member)
		}
		item := b.dialect.QuoteIdentifierIfNeeded(m.AliasName())
		if o.Desc {
			item += " DESC"
		}
		items[i] = item
	}
	return strings.Join(items, ", "), nil
}
