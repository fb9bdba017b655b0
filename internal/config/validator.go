package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "decompose.workers")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidSimplifiers returns the accepted decompose.simplify values.
func ValidSimplifiers() []string {
	return []string{"full", "none"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the accepted logging.format values.
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns all validation
// errors found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	oneOf := func(field, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be one of " + strings.Join(allowed, ", "),
			})
		}
	}
	nonNegative := func(field string, value int) {
		if value < 0 {
			errs = append(errs, ValidationError{Field: field, Value: value, Message: "must not be negative"})
		}
	}

	oneOf("decompose.simplify", c.Decompose.Simplify, ValidSimplifiers())
	nonNegative("decompose.parallel_depth", c.Decompose.ParallelDepth)
	nonNegative("decompose.workers", c.Decompose.Workers)
	nonNegative("decompose.max_steps", c.Decompose.MaxSteps)
	if c.Decompose.MaxComponent < 1 {
		errs = append(errs, ValidationError{
			Field:   "decompose.max_component",
			Value:   c.Decompose.MaxComponent,
			Message: "must be at least 1",
		})
	}
	oneOf("logging.level", c.Logging.Level, ValidLogLevels())
	oneOf("logging.format", c.Logging.Format, ValidLogFormats())

	return errs
}
