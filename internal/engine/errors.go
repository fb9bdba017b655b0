package engine

import (
	"errors"
	"fmt"
)

// DecomposeError reports a caller contract violation detected by the
// decomposer.
//
// Decompose errors include:
//   - Empty frontier: a pop or reduction step was requested with nothing pending
//   - Malformed selection: an identity received fewer vertices than it rewrites
//   - Scalar overflow: the exact accumulator no longer fits int64 coefficients
//
// None is recoverable by retrying; the caller must check Len(), pass a
// well-formed selection or split the input into smaller diagrams.
type DecomposeError struct {
	// Code identifies the error category.
	Code DecomposeErrorCode

	// Message is a human-readable description.
	Message string

	// Identity names the rewrite identity involved, if any.
	Identity string

	// Details contains additional context.
	Details map[string]string

	cause error
}

// DecomposeErrorCode categorizes decompose errors.
type DecomposeErrorCode string

const (
	// ErrCodeEmptyFrontier indicates a pop from an empty frontier.
	ErrCodeEmptyFrontier DecomposeErrorCode = "EMPTY_FRONTIER"

	// ErrCodeMalformedSelection indicates too few vertices for an identity.
	ErrCodeMalformedSelection DecomposeErrorCode = "MALFORMED_SELECTION"

	// ErrCodeScalarOverflow indicates the accumulated scalar left the
	// exact int64 range.
	ErrCodeScalarOverflow DecomposeErrorCode = "SCALAR_OVERFLOW"
)

// Error implements the error interface.
func (e *DecomposeError) Error() string {
	if e.Identity != "" {
		return fmt.Sprintf("%s: %s (identity=%s)", e.Code, e.Message, e.Identity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *DecomposeError) Unwrap() error { return e.cause }

// IsEmptyFrontierError returns true if the error is an empty-frontier error.
// Uses errors.As to handle wrapped errors.
func IsEmptyFrontierError(err error) bool {
	var de *DecomposeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeEmptyFrontier
	}
	return false
}

// IsMalformedSelectionError returns true if the error is a malformed-selection error.
// Uses errors.As to handle wrapped errors.
func IsMalformedSelectionError(err error) bool {
	var de *DecomposeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeMalformedSelection
	}
	return false
}

// IsScalarOverflowError returns true if the accumulated scalar overflowed.
func IsScalarOverflowError(err error) bool {
	var de *DecomposeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeScalarOverflow
	}
	return false
}

// NewEmptyFrontierError creates a DecomposeError for a pop on an empty frontier.
func NewEmptyFrontierError(op string) *DecomposeError {
	return &DecomposeError{
		Code:    ErrCodeEmptyFrontier,
		Message: fmt.Sprintf("%s called with an empty frontier", op),
		Details: map[string]string{"operation": op},
	}
}

// NewMalformedSelectionError creates a DecomposeError for an identity applied
// to too few vertices.
func NewMalformedSelectionError(identity string, want, got int) *DecomposeError {
	return &DecomposeError{
		Code:     ErrCodeMalformedSelection,
		Message:  fmt.Sprintf("identity needs %d vertices, got %d", want, got),
		Identity: identity,
		Details: map[string]string{
			"want": fmt.Sprint(want),
			"got":  fmt.Sprint(got),
		},
	}
}

// NewScalarOverflowError creates a DecomposeError for an accumulator that
// can no longer be represented exactly. Unwrap yields scalar.ErrOverflow.
func NewScalarOverflowError(cause error) *DecomposeError {
	return &DecomposeError{
		Code:    ErrCodeScalarOverflow,
		Message: cause.Error(),
		cause:   cause,
	}
}
