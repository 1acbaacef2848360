// Package compile turns query documents into SELECT statements using the
// planner's members.
package compile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Query is one query document.
type Query struct {
	Name            string            `yaml:"name,omitempty"`
	Dialect         string            `yaml:"dialect,omitempty"`
	From            CubeRef           `yaml:"from"`
	Joins           []Join            `yaml:"joins,omitempty"`
	Dimensions      []string          `yaml:"dimensions,omitempty"`
	TimeDimensions  []TimeDimension   `yaml:"time_dimensions,omitempty"`
	Measures        []MeasureRef      `yaml:"measures,omitempty"`
	Calculated      []Calculated      `yaml:"calculated,omitempty"`
	Filters         []Filter          `yaml:"filters,omitempty"`
	Order           []Order           `yaml:"order,omitempty"`
	Limit           *int              `yaml:"limit,omitempty"`
	SecurityContext map[string]string `yaml:"security_context,omitempty"`
}

// CubeRef names a cube and the alias it carries in the query. An empty
// alias defaults to the cube name.
type CubeRef struct {
	Cube  string `yaml:"cube"`
	Alias string `yaml:"alias,omitempty"`
}

// Join adds a cube to the query. On may reference cubes as {cube}.
type Join struct {
	CubeRef `yaml:",inline"`
	Type    string `yaml:"type,omitempty"`
	On      string `yaml:"on"`
}

// TimeDimension selects a time dimension at a granularity.
type TimeDimension struct {
	Dimension   string `yaml:"dimension"`
	Granularity string `yaml:"granularity"`
}

// MeasureRef selects a measure. A bare string in YAML is the member name.
type MeasureRef struct {
	Member string `yaml:"member"`
	Suffix string `yaml:"suffix,omitempty"`
}

// UnmarshalYAML accepts either "cube.member" or {member, suffix}.
func (m *MeasureRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		m.Member = node.Value
		return nil
	}
	type plain MeasureRef
	return node.Decode((*plain)(m))
}

// Calculated declares an ad-hoc member owned by Cube.
type Calculated struct {
	Cube string `yaml:"cube"`
	Name string `yaml:"name"`
	SQL  string `yaml:"sql"`
}

// Filter restricts rows (dimensions) or groups (measures).
type Filter struct {
	Member   string   `yaml:"member"`
	Operator string   `yaml:"operator"`
	Values   []string `yaml:"values,omitempty"`
}

// Order sorts by a selected member.
type Order struct {
	Member string `yaml:"member"`
	Desc   bool   `yaml:"desc,omitempty"`
}

// LoadQueryFile reads every query document of a YAML stream file.
func LoadQueryFile(path string) ([]*Query, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading the user's query file
	if err != nil {
		return nil, fmt.Errorf("read queries %s: %w", path, err)
	}
	queries, err := ParseQueries(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return queries, nil
}

// ParseQueries decodes a stream of query documents separated by "---".
func ParseQueries(data []byte) ([]*Query, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var queries []*Query
	for i := 0; ; i++ {
		var q Query
		err := dec.Decode(&q)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse query %d: %w", i+1, err)
		}
		if q.Name == "" {
			q.Name = fmt.Sprintf("query_%d", i+1)
		}
		queries = append(queries, &q)
	}
	if len(queries) == 0 {
		return nil, errors.New("no queries found")
	}
	return queries, nil
}
