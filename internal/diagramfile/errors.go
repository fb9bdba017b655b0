package diagramfile

import (
	"errors"
	"fmt"
)

// ParseError reports a diagram file that could not be read or decoded.
// Line and Column are 1-based and zero when the source gave no position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", path, e.Message)
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
