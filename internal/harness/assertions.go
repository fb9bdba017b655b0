package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/stabdecomp/internal/engine"
	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/runner"
	"github.com/roach88/stabdecomp/internal/store"
	"github.com/roach88/stabdecomp/internal/tensor"
	"github.com/roach88/stabdecomp/internal/zx"
)

// AssertionError is returned when an assertion fails.
// It includes the run summary to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Record   ir.RunRecord // The run being checked
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nRun:\n")
	fmt.Fprintf(&buf, "  t_count=%d max_terms=%s terms=%d incomplete=%d\n",
		e.Record.TCount, e.Record.MaxTerms, e.Record.Terms, e.Record.Incomplete)

	return buf.String()
}

// AssertionContext carries what assertions may inspect.
type AssertionContext struct {
	Ctx    context.Context
	Store  *store.Store
	Input  *zx.Diagram
	Run    *runner.Result
	Record ir.RunRecord
}

// EvaluateAssertions checks every assertion and returns one message per
// failure, prefixed with the assertion's index.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertTermCount:
		return expectInt(a.Type, a.Count, actx.Record.Terms, actx.Record)
	case AssertIncomplete:
		return expectInt(a.Type, a.Count, actx.Record.Incomplete, actx.Record)
	case AssertFullyReduced:
		return expectInt(a.Type, 0, actx.Record.Incomplete, actx.Record)
	case AssertMaxTerms:
		if actx.Record.MaxTerms != a.Value {
			return &AssertionError{Type: a.Type, Expected: a.Value, Actual: actx.Record.MaxTerms, Record: actx.Record}
		}
		return nil
	case AssertFrontierSize:
		return assertFrontierSize(a, actx)
	case AssertTensorSum:
		return assertTensorSum(actx)
	case AssertStoredTerms:
		n, err := actx.Store.CountTerms(actx.Ctx, actx.Record.ID)
		if err != nil {
			return err
		}
		return expectInt(a.Type, a.Count, n, actx.Record)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func expectInt(typ string, want, got int, rec ir.RunRecord) error {
	if want == got {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%d", want),
		Actual:   fmt.Sprintf("%d", got),
		Record:   rec,
	}
}

// assertFrontierSize replays the decomposition breadth first from the input
// and counts pending diagrams once every one is at the requested depth.
func assertFrontierSize(a Assertion, actx *AssertionContext) error {
	opts, err := runner.EngineOptions(actx.Record.Options)
	if err != nil {
		return err
	}
	d := engine.New(actx.Input, opts...)
	if err := d.DecompUntilDepth(a.Depth); err != nil {
		return err
	}
	if d.Len() != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d pending at depth %d", a.Count, a.Depth),
			Actual:   fmt.Sprintf("%d pending", d.Len()),
			Record:   actx.Record,
		}
	}
	return nil
}

// assertTensorSum compares the input's tensor with the sum of the saved
// terms. Both are evaluated exactly, so only small diagrams are practical.
func assertTensorSum(actx *AssertionContext) error {
	want, err := tensor.Evaluate(actx.Input)
	if err != nil {
		return fmt.Errorf("evaluate input: %w", err)
	}
	have, err := tensor.Sum(actx.Run.Decomposer.Done())
	if err != nil {
		return fmt.Errorf("evaluate terms: %w", err)
	}
	if !want.Equal(have) {
		return &AssertionError{
			Type:     AssertTensorSum,
			Expected: "sum of terms equals input tensor",
			Actual:   fmt.Sprintf("sum of %d terms differs", len(actx.Run.Decomposer.Done())),
			Record:   actx.Record,
		}
	}
	return nil
}
