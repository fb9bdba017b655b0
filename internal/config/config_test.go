package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "full", cfg.Decompose.Simplify)
	assert.Equal(t, uint64(1), cfg.Decompose.Seed)
	assert.Equal(t, 16, cfg.Decompose.MaxComponent)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "stabdecomp.yaml", `
decompose:
  simplify: none
  random_t: true
  seed: 42
  parallel_depth: 3
archive:
  path: runs.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Decompose.Simplify)
	assert.True(t, cfg.Decompose.RandomT)
	assert.Equal(t, uint64(42), cfg.Decompose.Seed)
	assert.Equal(t, 3, cfg.Decompose.ParallelDepth)
	assert.Equal(t, "runs.db", cfg.Archive.Path)
	// Untouched keys keep their defaults.
	assert.Equal(t, 16, cfg.Decompose.MaxComponent)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "stabdecomp.toml", "[logging]\nlevel = \"debug\"\nformat = \"json\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "stabdecomp.yaml", "decompose:\n  workers: 2\n")
	t.Setenv("STABDECOMP_DECOMPOSE_WORKERS", "8")
	t.Setenv("STABDECOMP_DECOMPOSE_SAVE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Decompose.Workers)
	assert.True(t, cfg.Decompose.Save)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "bad.yaml", `
decompose:
  simplify: aggressive
  workers: -1
  max_component: 0
  max_steps: -2
logging:
  level: loud
`)
	_, err := Load(path)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{
		"decompose.simplify",
		"decompose.workers",
		"decompose.max_component",
		"decompose.max_steps",
		"logging.level",
	}, fields)
	assert.Contains(t, err.Error(), "5 validation errors")
}

func TestValidationError_Single(t *testing.T) {
	err := ValidationErrors{{Field: "logging.format", Value: "xml", Message: "must be one of text, json"}}
	assert.Equal(t, "logging.format: must be one of text, json (got: xml)", err.Error())
	assert.Equal(t, "", ValidationErrors{}.Error())
}
