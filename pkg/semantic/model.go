// Package semantic loads cube definitions from YAML and binds them into the
// member symbols the planner renders.
package semantic

// Model is a semantic model file: a set of cubes.
type Model struct {
	Cubes []Cube `yaml:"cubes"`
}

// Cube is one logical table of the model. Exactly one of SQLTable or SQL is set.
type Cube struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	SQLTable    string         `yaml:"sql_table,omitempty"`
	SQL         string         `yaml:"sql,omitempty"`
	Measures    []MeasureDef   `yaml:"measures,omitempty"`
	Dimensions  []DimensionDef `yaml:"dimensions,omitempty"`
}

// MeasureDef declares an aggregated member. SQL may be empty for count.
type MeasureDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	SQL         string `yaml:"sql,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// DimensionDef declares a grouping member. Empty SQL means the column named
// after the dimension.
type DimensionDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	SQL         string `yaml:"sql,omitempty"`
	PrimaryKey  bool   `yaml:"primary_key,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Cube returns the named cube.
func (m *Model) Cube(name string) (*Cube, bool) {
	for i := range m.Cubes {
		if m.Cubes[i].Name == name {
			return &m.Cubes[i], true
		}
	}
	return nil, false
}

// From returns the FROM source of the cube: the table name, or the SQL
// wrapped as a subquery.
func (c *Cube) From() string {
	if c.SQLTable != "" {
		return c.SQLTable
	}
	return "(" + c.SQL + ")"
}
