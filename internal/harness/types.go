package harness

import "github.com/roach88/stabdecomp/internal/ir"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success. True if every assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Record is the run as read back from the scenario's archive.
	Record ir.RunRecord `json:"record"`

	// Closed reports whether the input diagram had no boundary vertices.
	Closed bool `json:"closed"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
