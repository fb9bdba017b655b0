package harness

import (
	"context"
	"fmt"

	"github.com/roach88/stabdecomp/internal/diagramfile"
	"github.com/roach88/stabdecomp/internal/runner"
	"github.com/roach88/stabdecomp/internal/store"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory archive for isolation. The
// finished run is written to it and read back, so the result's Record is
// exactly what a real archive would hold.
//
// Execution flow:
// 1. Load the diagram file
// 2. Decompose it with the scenario's options
// 3. Archive the run and read it back
// 4. Evaluate assertions and return the result
func Run(scenario *Scenario) (*Result, error) {
	g, doc, err := diagramfile.Load(scenario.Diagram)
	if err != nil {
		return nil, fmt.Errorf("failed to load diagram: %w", err)
	}

	opts := scenario.Options
	if scenario.needsTerms() {
		opts.Save = true
	}

	res, err := runner.Run(g, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to decompose: %w", err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	rec := res.Record
	rec.ID = "scenario-" + scenario.Name
	rec.Label = scenario.Name
	if _, err := st.WriteRun(ctx, rec, res.Terms); err != nil {
		return nil, fmt.Errorf("failed to archive run: %w", err)
	}
	stored, err := st.ReadRun(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back run: %w", err)
	}

	result := NewResult()
	result.Record = stored
	result.Closed = g.IsClosed()

	actx := &AssertionContext{
		Ctx:    ctx,
		Store:  st,
		Input:  g,
		Run:    res,
		Record: stored,
	}
	for _, errMsg := range EvaluateAssertions(scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}
