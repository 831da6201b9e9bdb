package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh directory so a developer's local
// config.yaml cannot leak into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "logs/pipeline.log", cfg.Logging.FilePath)
	assert.Empty(t, cfg.BaseDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MEDCLI_LOGGING_LEVEL", "debug")
	t.Setenv("MEDCLI_BASE_DIR", "/tmp/run")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/run", cfg.BaseDir)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := "base_dir: runs/latest\nlogging:\n  level: warn\n  output: file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "runs/latest", cfg.BaseDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "file", cfg.Logging.Output)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("base_dir: from-file\n"), 0644))
	t.Setenv("MEDCLI_BASE_DIR", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.BaseDir)
}

func TestLoad_InvalidLevel(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MEDCLI_LOGGING_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestLoad_InvalidOutput(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MEDCLI_LOGGING_OUTPUT", "syslog")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging output")
}
