package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(BoundResult{Diagram: "a.zxt", TCount: 6, MaxTerms: "7"})
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   BoundResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "7", resp.Data.MaxTerms)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(CodeLoad, "failed to load diagram", nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeLoad, resp.Error.Code)
	assert.Equal(t, "failed to load diagram", resp.Error.Message)
	assert.Nil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error(CodeArchive, "failed to open archive", "disk full")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E_ARCHIVE]")
	assert.Contains(t, buf.String(), "failed to open archive")
	assert.NotContains(t, buf.String(), "disk full")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error(CodeArchive, "failed to open archive", "disk full")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Details: disk full")
}

func TestOutputFormatter_Emit(t *testing.T) {
	text := func(w io.Writer) { fmt.Fprintln(w, "t-count 6") }

	buf := &bytes.Buffer{}
	require.NoError(t, (&OutputFormatter{Format: "text", Writer: buf}).Emit(BoundResult{TCount: 6}, text))
	assert.Equal(t, "t-count 6\n", buf.String())

	buf.Reset()
	require.NoError(t, (&OutputFormatter{Format: "json", Writer: buf}).Emit(BoundResult{TCount: 6}, text))
	assert.Contains(t, buf.String(), `"t_count":6`)
}

func TestOutputFormatter_Fail(t *testing.T) {
	cause := errors.New("no such file")

	buf := &bytes.Buffer{}
	err := (&OutputFormatter{Format: "json", Writer: buf}).Fail(ExitCommandError, CodeLoad, "failed to load diagram", cause)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, buf.String(), `"code":"E_LOAD"`)
	assert.Contains(t, buf.String(), `"details":"no such file"`)

	buf.Reset()
	err = (&OutputFormatter{Format: "text", Writer: buf}).Fail(ExitFailure, CodeTensorMismatch, "tensor mismatch", nil)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "tensor mismatch", err.Error())
	assert.Empty(t, buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("decomposing %s", "a.zxt")

			assert.Empty(t, buf.String(), "verbose output must not corrupt JSON")
			if tt.wantLog {
				assert.Contains(t, errBuf.String(), "decomposing a.zxt")
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "bad"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
