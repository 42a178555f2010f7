package schema

import (
	"errors"
	"fmt"
)

// ErrLoad indicates the schema resource could not be read or compiled.
var ErrLoad = errors.New("schema load failed")

// Violation describes one failed constraint.
type Violation struct {
	// Path is the JSON pointer of the offending instance value ("" for the root).
	Path string `json:"path"`
	// Keyword is the schema keyword that failed (type, required, enum, ...).
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "(root)"
	}
	if v.Keyword == "" {
		return fmt.Sprintf("%s: %s", path, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", path, v.Keyword, v.Message)
}

// Result is the outcome of a validation.
type Result struct {
	Valid      bool        `json:"valid"`
	Errors     []string    `json:"errors"`
	Violations []Violation `json:"-"`
}

func invalid(violations ...Violation) Result {
	errs := make([]string, len(violations))
	for i, v := range violations {
		errs[i] = v.String()
	}
	return Result{
		Valid:      false,
		Errors:     errs,
		Violations: violations,
	}
}
