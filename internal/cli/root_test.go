package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stabdecomp/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "stabdecomp", cmd.Use)
	assert.Contains(t, cmd.Long, "stabilizer terms")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"decompose", "bound", "verify", "runs", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestDecomposeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	decomposeCmd, _, err := cmd.Find([]string{"decompose"})
	require.NoError(t, err)

	for _, name := range []string{"simp", "random-t", "seed", "parallel-depth", "workers", "max-steps", "save", "db", "label"} {
		assert.NotNil(t, decomposeCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "full", decomposeCmd.Flags().Lookup("simp").DefValue)
}

func TestInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "six.zxt", sixClosedT)

	_, _, err := executeCommand(t, "bound", path, "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "six.zxt", sixClosedT)
	cfg := writeFile(t, dir, "bad.yaml", "decompose:\n  simplify: greedy\n")

	_, _, err := executeCommand(t, "bound", path, "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestNewLogHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(newLogHandler(buf, config.LoggingConfig{Level: "warn", Format: "json"}, false))
	logger.Info("hidden")
	logger.Warn("shown", "terms", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"terms":3`)

	buf.Reset()
	logger = slog.New(newLogHandler(buf, config.LoggingConfig{Level: "error", Format: "text"}, true))
	logger.Debug("forced by verbose")
	assert.Contains(t, buf.String(), "msg=\"forced by verbose\"")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelWarn, parseLevel(""))
}
