package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/stabdecomp/internal/ir"
)

// Snapshot captures the archived outcome of a scenario.
// Ids, sequence numbers and timings are left out so the golden bytes only
// change when the decomposition does.
type Snapshot struct {
	Name   string
	Record ir.RunRecord
	Closed bool
}

// IRValue converts the snapshot for canonical JSON serialization. The scalar
// is only meaningful for closed diagrams and is omitted otherwise.
func (s Snapshot) IRValue() ir.IRObject {
	obj := ir.IRObject{
		"name":       ir.IRString(s.Name),
		"t_count":    ir.IRInt(s.Record.TCount),
		"max_terms":  ir.IRString(s.Record.MaxTerms),
		"terms":      ir.IRInt(s.Record.Terms),
		"incomplete": ir.IRInt(s.Record.Incomplete),
	}
	if s.Closed {
		obj["scalar"] = s.Record.Scalar.IRValue()
	}
	return obj
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Assertion failures and golden
// mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already computed result against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := SnapshotJSON(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

// SnapshotJSON renders the canonical snapshot bytes for a result.
func SnapshotJSON(scenarioName string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		Name:   scenarioName,
		Record: result.Record,
		Closed: result.Closed,
	}
	return ir.MarshalCanonical(snapshot.IRValue())
}
