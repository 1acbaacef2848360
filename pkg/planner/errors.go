package planner

import (
	"errors"
	"fmt"
)

// UnresolvedCubeAliasError is returned when a member references a cube that
// was never registered in the query's QueryTools. It signals a planning bug
// upstream; retrying the same query reproduces it.
type UnresolvedCubeAliasError struct {
	Cube   string
	Member string // full name of the member being aliased or rendered, if known
	Ref    string // referenced symbol whose cube is missing, when it is not Member
}

func (e *UnresolvedCubeAliasError) Error() string {
	msg := fmt.Sprintf("cube %q has no alias in the current query", e.Cube)
	if e.Ref != "" && e.Ref != e.Member {
		msg = fmt.Sprintf("reference %s: %s", e.Ref, msg)
	}
	if e.Member != "" {
		msg = fmt.Sprintf("member %s: %s", e.Member, msg)
	}
	return msg
}

// SQLGenerationError is returned when SQL cannot be produced for a member,
// either because a semantic fact is missing or because the dialect cannot
// express the member's expression shape.
type SQLGenerationError struct {
	Member string
	Cause  error
}

func (e *SQLGenerationError) Error() string {
	return fmt.Sprintf("generating SQL for %s: %v", e.Member, e.Cause)
}

func (e *SQLGenerationError) Unwrap() error {
	return e.Cause
}

// NewSQLGenerationError creates a SQLGenerationError with a formatted cause.
func NewSQLGenerationError(member, format string, args ...any) *SQLGenerationError {
	return &SQLGenerationError{Member: member, Cause: fmt.Errorf(format, args...)}
}

// DuplicateAliasError is returned when two members of one query render to the
// same column alias.
type DuplicateAliasError struct {
	Alias  string
	First  string
	Second string
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias %q is produced by both %s and %s", e.Alias, e.First, e.Second)
}

// wrapRenderError attaches member identity to err. Errors that already carry
// a member identity pass through unchanged.
func wrapRenderError(member string, err error) error {
	if err == nil {
		return nil
	}
	var unresolved *UnresolvedCubeAliasError
	if errors.As(err, &unresolved) {
		if unresolved.Member == "" {
			return &UnresolvedCubeAliasError{Cube: unresolved.Cube, Member: member, Ref: unresolved.Ref}
		}
		return err
	}
	var gen *SQLGenerationError
	if errors.As(err, &gen) {
		return err
	}
	return &SQLGenerationError{Member: member, Cause: err}
}
