package semantic

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/dialect"
)

// ValidationError is a single problem found in a model.
type ValidationError struct {
	Path    string // e.g. "cube[orders].measure[count]"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// InvalidModelError carries every validation problem of a model.
type InvalidModelError struct {
	Problems []ValidationError
}

func (e *InvalidModelError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "invalid model: " + strings.Join(msgs, "; ")
}

// Dimension types.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeTime    = "time"
	TypeBoolean = "boolean"
)

var validDimensionTypes = map[string]bool{
	TypeString:  true,
	TypeNumber:  true,
	TypeTime:    true,
	TypeBoolean: true,
}

// Validate checks the model's structure. Expression references are checked
// by Bind.
func Validate(m *Model) []ValidationError {
	var errs []ValidationError

	if len(m.Cubes) == 0 {
		addError(&errs, "", "model defines no cubes")
	}

	cubes := make(map[string]bool, len(m.Cubes))
	for i, c := range m.Cubes {
		path := fmt.Sprintf("cube[%s]", c.Name)
		if c.Name == "" {
			path = fmt.Sprintf("cube[%d]", i)
			addError(&errs, path, "name is required")
		} else if !isName(c.Name) {
			addError(&errs, path, "name must contain only letters, digits and underscores")
		}
		if cubes[c.Name] && c.Name != "" {
			addError(&errs, path, "duplicate cube name")
		}
		cubes[c.Name] = true

		switch {
		case c.SQLTable == "" && c.SQL == "":
			addError(&errs, path, "one of sql_table or sql is required")
		case c.SQLTable != "" && c.SQL != "":
			addError(&errs, path, "sql_table and sql are mutually exclusive")
		}

		members := make(map[string]bool, len(c.Measures)+len(c.Dimensions))
		checkName := func(memberPath, name string) {
			switch {
			case name == "":
				addError(&errs, memberPath, "name is required")
			case !isName(name):
				addError(&errs, memberPath, "name must contain only letters, digits and underscores")
			case members[name]:
				addError(&errs, memberPath, "duplicate member name")
			}
			members[name] = true
		}

		for _, meas := range c.Measures {
			mp := fmt.Sprintf("%s.measure[%s]", path, meas.Name)
			checkName(mp, meas.Name)
			if !dialect.IsKnownAggregate(meas.Type) {
				addError(&errs, mp, fmt.Sprintf("unknown measure type %q", meas.Type))
			} else if meas.SQL == "" && meas.Type != dialect.AggCount {
				addError(&errs, mp, fmt.Sprintf("%s measure requires sql", meas.Type))
			}
		}
		for _, dim := range c.Dimensions {
			dp := fmt.Sprintf("%s.dimension[%s]", path, dim.Name)
			checkName(dp, dim.Name)
			if !validDimensionTypes[dim.Type] {
				addError(&errs, dp, fmt.Sprintf("unknown dimension type %q", dim.Type))
			}
		}
	}

	return errs
}

func addError(errs *[]ValidationError, path, msg string) {
	*errs = append(*errs, ValidationError{Path: path, Message: msg})
}

func isName(s string) bool {
	for i, r := range s {
		isLetter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !(isDigit && i > 0) {
			return false
		}
	}
	return s != ""
}
