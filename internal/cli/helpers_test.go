package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sixClosedT is six isolated T spiders: 7 terms, scalar (1+w)^6.
const sixClosedT = `// six T spiders
z a 1/4
z b 1/4
z c 1/4
z d 1/4
z e 1/4
z f 1/4
`

// twoOpenT is two T spiders on outputs joined by a Hadamard edge.
const twoOpenT = `z a 1/4
z b 1/4
b o1
b o2
wire a - o1
wire b - o2
wire a ~ b
outputs(o1, o2)
`

// executeCommand runs the root command with args and returns stdout,
// stderr and the error.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
