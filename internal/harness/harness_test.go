package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stabdecomp/internal/ir"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestRun_ClosedScenarioPasses(t *testing.T) {
	result, err := Run(loadTestScenario(t, "six_t_closed"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.True(t, result.Closed)

	rec := result.Record
	assert.Equal(t, "scenario-six_t_closed", rec.ID)
	assert.Equal(t, int64(1), rec.Seq)
	assert.Equal(t, "six_t_closed", rec.Label)
	assert.Equal(t, 6, rec.TCount)
	assert.Equal(t, 7, rec.Terms)
	assert.Equal(t, ir.ScalarDoc{Pow: 1, Coeffs: [4]int64{-7, 0, 7, 10}}, rec.Scalar)
}

func TestRun_OpenScenarioSavesTerms(t *testing.T) {
	s := loadTestScenario(t, "two_t_open")
	assert.False(t, s.Options.Save)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.False(t, result.Closed)
	assert.True(t, result.Record.Options.Save, "tensor_sum forces saving")
}

func TestRun_FailingAssertionsAreReported(t *testing.T) {
	s := loadTestScenario(t, "six_t_closed")
	s.Assertions = []Assertion{
		{Type: AssertTermCount, Count: 6},
		{Type: AssertMaxTerms, Value: "7"},
		{Type: AssertIncomplete, Count: 1},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "assertions[0]")
	assert.Contains(t, result.Errors[0], "Expected: 6")
	assert.Contains(t, result.Errors[0], "Actual: 7")
	assert.Contains(t, result.Errors[1], "assertions[2]")
}

func TestRun_BadDiagram(t *testing.T) {
	s := &Scenario{
		Name:       "missing",
		Diagram:    filepath.Join(t.TempDir(), "missing.zxt"),
		Assertions: []Assertion{{Type: AssertFullyReduced}},
	}
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load diagram")
}

func TestRun_BadOptions(t *testing.T) {
	s := loadTestScenario(t, "six_t_closed")
	s.Options.Simplify = "greedy"
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decompose")
}
