package engine

import (
	"errors"
	"fmt"
)

// stepQuota counts rewrite steps and enforces an optional limit.
//
// Each Decomposer has its own counter. Split gives every new unit a fresh
// counter with the same limit, while the unit that is the original
// Decomposer keeps counting. Merge sums the counts.
type stepQuota struct {
	limit   int // 0 means unlimited
	current int
}

// check counts one step and fails once the limit is passed.
func (q *stepQuota) check() error {
	q.current++
	if q.limit > 0 && q.current > q.limit {
		return &StepsExceededError{Steps: q.current, Limit: q.limit}
	}
	return nil
}

// WithMaxSteps bounds the number of rewrite steps a Decomposer takes.
// Reaching a terminal diagram is not a step. Zero means unlimited.
func WithMaxSteps(n int) Option {
	return func(c *settings) {
		c.maxSteps = n
	}
}

// StepsExceededError is returned when a Decomposer takes more rewrite steps
// than WithMaxSteps allows.
//
// The rewrite that would exceed the limit is not applied: the diagram it
// was called on is lost, so the Decomposer should be discarded.
type StepsExceededError struct {
	Steps int // Steps taken, including the rejected one
	Limit int // Maximum allowed steps
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("exceeded max steps quota: %d steps > %d limit", e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
