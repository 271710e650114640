package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default data dir at a temp dir and clears ACS_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	for _, k := range []string{EnvMinLength, EnvHistoryEnabled, EnvHistoryMaxResults, EnvWatchDebounce, EnvWorkflowDir} {
		t.Setenv(k, "")
	}
	return dir
}

// --- Load ---

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, 0, cfg.MinLength)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.MaxResults)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, filepath.Join(dir, "projects"), cfg.WorkflowDir())
}

func TestLoad_ReadsDataDirFile(t *testing.T) {
	dir := isolate(t)
	yml := "min_length: 40\nhistory:\n  enabled: false\n  max_results: 5\nwatch:\n  debounce: 1s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(yml), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.MinLength)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 5, cfg.History.MaxResults)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	// Unset fields keep their defaults.
	assert.Equal(t, 20000, cfg.History.MaxContentLength)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_length: [oops"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("min_length: 40\n"), 0o600))

	t.Setenv(EnvMinLength, "12")
	t.Setenv(EnvHistoryEnabled, "false")
	t.Setenv(EnvHistoryMaxResults, "7")
	t.Setenv(EnvWatchDebounce, "50ms")
	t.Setenv(EnvWorkflowDir, filepath.Join(dir, "wf"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MinLength)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 7, cfg.History.MaxResults)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, filepath.Join(dir, "wf"), cfg.WorkflowDir())
}

func TestLoad_BadEnvValue(t *testing.T) {
	isolate(t)
	t.Setenv(EnvMinLength, "lots")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMinLength)
}

func TestLoad_ValidationFailure(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("history:\n  max_results: 0\n"), 0o600))

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxResults")
}

// --- Validate ---

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.MinLength = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DataDir = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Watch.Debounce = -time.Second
	assert.Error(t, cfg.Validate())
}

// --- Save ---

func TestSaveAndLoad(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "acs.yaml")

	in := Default()
	in.DataDir = t.TempDir()
	in.MinLength = 25
	in.Watch.Debounce = 2 * time.Second
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, out.MinLength)
	assert.Equal(t, 2*time.Second, out.Watch.Debounce)
}

func TestSave_Nil(t *testing.T) {
	assert.Error(t, Save(filepath.Join(t.TempDir(), "x.yaml"), nil))
}

// --- .env ---

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ACS_TEST_ONLY_KEY=from-dotenv\n"), 0o600))
	t.Setenv("ACS_TEST_ONLY_KEY", "")
	require.NoError(t, os.Unsetenv("ACS_TEST_ONLY_KEY"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-dotenv", os.Getenv("ACS_TEST_ONLY_KEY"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x"), expandHome("~/x"))
	assert.Equal(t, "/abs", expandHome("/abs"))
}
