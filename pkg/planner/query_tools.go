package planner

import (
	"errors"
	"fmt"
)

// CubeAlias registers the alias a cube's table or subquery carries in one query.
type CubeAlias struct {
	Cube  string
	Alias string
}

// QueryTools is the per-query shared state members render against: the
// cube → alias table of the finalized join structure and the dialect
// templates. It is immutable once built and safe to share.
type QueryTools struct {
	templates Templates
	aliases   map[string]string
	cubes     []CubeAlias
}

// NewQueryTools builds the query context for one query. Each cube may be
// registered once and each alias used once.
func NewQueryTools(templates Templates, cubes ...CubeAlias) (*QueryTools, error) {
	if templates == nil {
		return nil, errors.New("query tools: templates are required")
	}

	qt := &QueryTools{
		templates: templates,
		aliases:   make(map[string]string, len(cubes)),
		cubes:     make([]CubeAlias, 0, len(cubes)),
	}
	usedAliases := make(map[string]string, len(cubes))
	for _, c := range cubes {
		if c.Cube == "" || c.Alias == "" {
			return nil, fmt.Errorf("query tools: cube and alias are required (got cube %q, alias %q)", c.Cube, c.Alias)
		}
		if prev, ok := qt.aliases[c.Cube]; ok {
			return nil, fmt.Errorf("query tools: cube %q registered twice (aliases %q and %q)", c.Cube, prev, c.Alias)
		}
		if other, ok := usedAliases[c.Alias]; ok {
			return nil, fmt.Errorf("query tools: alias %q used by both %q and %q", c.Alias, other, c.Cube)
		}
		qt.aliases[c.Cube] = c.Alias
		usedAliases[c.Alias] = c.Cube
		qt.cubes = append(qt.cubes, c)
	}
	return qt, nil
}

// AliasForCube returns the query-scoped alias of cube.
func (q *QueryTools) AliasForCube(cube string) (string, error) {
	alias, ok := q.aliases[cube]
	if !ok {
		return "", &UnresolvedCubeAliasError{Cube: cube}
	}
	return alias, nil
}

// Templates returns the dialect templates the query renders with.
func (q *QueryTools) Templates() Templates {
	return q.templates
}

// Cubes returns the registered cubes in registration order.
func (q *QueryTools) Cubes() []CubeAlias {
	out := make([]CubeAlias, len(q.cubes))
	copy(out, q.cubes)
	return out
}
