package planner

import (
	"iter"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// AsMember upcasts a concrete member to the common interface.
func AsMember[T Member](m T) Member {
	return m
}

// UpcastMembers projects a slice of concrete members to []Member, preserving order.
func UpcastMembers[T Member](items []T) []Member {
	out := make([]Member, len(items))
	for i, m := range items {
		out[i] = AsMember(m)
	}
	return out
}

// IterMembers is the lazy form of UpcastMembers. The sequence can be ranged
// over more than once.
func IterMembers[T Member](items []T) iter.Seq[Member] {
	return func(yield func(Member) bool) {
		for _, m := range items {
			if !yield(AsMember(m)) {
				return
			}
		}
	}
}

// AliasNames returns each member's alias in order.
func AliasNames(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.AliasName()
	}
	return out
}

// ExtractSymbols returns each member's symbol in order. The symbols are the
// members' own pointers, not copies.
func ExtractSymbols(members []Member) []*core.MemberSymbol {
	out := make([]*core.MemberSymbol, len(members))
	for i, m := range members {
		out[i] = m.MemberEvaluator()
	}
	return out
}

// FullNames returns each member's full name in order.
func FullNames(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.FullName()
	}
	return out
}

// DefaultAlias resolves the cube's query alias and folds it with the member
// name and suffix through the query's templates. On failure no alias is returned.
func DefaultAlias(cubeName, memberName, suffix string, tools *QueryTools) (string, error) {
	cubeAlias, err := tools.AliasForCube(cubeName)
	if err != nil {
		return "", err
	}
	return tools.Templates().MemberAliasName(cubeAlias, memberName, suffix), nil
}

// CheckUniqueAliases fails with *DuplicateAliasError on the first alias
// shared by two members.
func CheckUniqueAliases(members []Member) error {
	seen := make(map[string]Member, len(members))
	for _, m := range members {
		alias := m.AliasName()
		if first, ok := seen[alias]; ok {
			return &DuplicateAliasError{Alias: alias, First: describe(first), Second: describe(m)}
		}
		seen[alias] = m
	}
	return nil
}

// RenderMembers renders every member with the same context and templates.
// It stops at the first failure; there is no partial result.
func RenderMembers(members []Member, ctx *VisitorContext, templates Templates) ([]string, error) {
	out := make([]string, len(members))
	for i, m := range members {
		sql, err := m.ToSQL(ctx, templates)
		if err != nil {
			return nil, err
		}
		out[i] = sql
	}
	return out, nil
}

func describe(m Member) string {
	if s := m.AliasSuffix(); s != "" {
		return m.FullName() + " (" + s + ")"
	}
	return m.FullName()
}
