package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBound(t *testing.T) {
	path := writeFile(t, t.TempDir(), "six.zxt", sixClosedT)

	out, _, err := executeCommand(t, "bound", path)
	require.NoError(t, err)
	assert.Contains(t, out, "t-count 6, at most 7 terms")

	out, _, err = executeCommand(t, "bound", path, "--format", "json")
	require.NoError(t, err)
	var res BoundResult
	decodeData(t, out, &res)
	assert.Equal(t, BoundResult{Diagram: path, TCount: 6, MaxTerms: "7"}, res)
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	two := writeFile(t, dir, "two.zxt", twoOpenT)
	six := writeFile(t, dir, "six.zxt", sixClosedT)

	out, _, err := executeCommand(t, "verify", two)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "2 terms sum to the input")

	out, _, err = executeCommand(t, "verify", six, "--random-t", "--seed", "4", "--format", "json")
	require.NoError(t, err)
	var res VerifyResult
	decodeData(t, out, &res)
	assert.True(t, res.Match)
	assert.Equal(t, 7, res.Terms)
	assert.Equal(t, 0, res.Incomplete)

	_, _, err = executeCommand(t, "verify", filepath.Join(dir, "missing.zxt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRuns_Errors(t *testing.T) {
	t.Setenv("STABDECOMP_ARCHIVE_PATH", "")

	_, _, err := executeCommand(t, "runs")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no archive")

	db := filepath.Join(t.TempDir(), "empty.db")
	out, _, err := executeCommand(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs archived.")

	_, _, err = executeCommand(t, "runs", "--db", db, "--terms", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "run nope not found")
}

func TestRuns_Filters(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	six := writeFile(t, dir, "six.zxt", sixClosedT)
	two := writeFile(t, dir, "two.zxt", twoOpenT)

	_, _, err := executeCommand(t, "decompose", six, "--db", db, "--label", "six")
	require.NoError(t, err)
	_, _, err = executeCommand(t, "decompose", two, "--simp", "none", "--db", db, "--label", "two")
	require.NoError(t, err)

	labels := func(args ...string) []string {
		t.Helper()
		out, _, err := executeCommand(t, append([]string{"runs", "--db", db, "--format", "json"}, args...)...)
		require.NoError(t, err)
		var runs []RunSummary
		decodeData(t, out, &runs)
		names := make([]string, len(runs))
		for i, r := range runs {
			names[i] = r.Label
		}
		return names
	}

	assert.Equal(t, []string{"six", "two"}, labels())
	assert.Equal(t, []string{"two"}, labels("--label", "two"))
	assert.Equal(t, []string{"two"}, labels("--incomplete"))
	assert.Equal(t, []string{"six"}, labels("--min-terms", "5"))
	assert.Empty(t, labels("--label", "six", "--incomplete"))
}
