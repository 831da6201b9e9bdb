package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	base := t.TempDir()
	paths, err := GetPaths(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "outputs", "clean"), paths.CleanDir)
	assert.Equal(t, filepath.Join(base, "outputs", "metrics"), paths.MetricsDir)
	assert.Equal(t, filepath.Join(base, "outputs", "figures"), paths.FiguresDir)
	assert.Equal(t, filepath.Join(base, "data", "patients.csv"), paths.PatientsCSV)
	assert.Equal(t, filepath.Join(base, "outputs", "clean", "patients_clean.csv"), paths.CleanCSV)
}

func TestGetPaths_EmptyBaseDefaultsToCurrentDir(t *testing.T) {
	paths, err := GetPaths("")
	require.NoError(t, err)
	assert.Equal(t, ".", paths.BaseDir)
	assert.Equal(t, filepath.Join("data", "patients.csv"), paths.PatientsCSV)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	paths, err := GetPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.CleanDir, paths.MetricsDir, paths.FiguresDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// Idempotent
	require.NoError(t, paths.EnsureDirectories())
}

func TestPaths_Getters(t *testing.T) {
	paths, err := GetPaths(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.MetricsDir, "kpis.csv"), paths.GetMetricsPath("kpis.csv"))
	assert.Equal(t, filepath.Join(paths.FiguresDir, "x.png"), paths.GetFigurePath("x.png"))
	assert.Equal(t, filepath.Join(paths.LogsDir, "pipeline.log"), paths.GetLogPath("pipeline.log"))
}

func TestPaths_InputFile(t *testing.T) {
	paths, err := GetPaths(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	// Neither file exists: report the CSV path so the loader's error names it
	assert.Equal(t, paths.PatientsCSV, paths.InputFile())

	// Only the workbook exists
	require.NoError(t, os.WriteFile(paths.PatientsXLSX, []byte("stub"), 0644))
	assert.Equal(t, paths.PatientsXLSX, paths.InputFile())

	// CSV wins when both exist
	require.NoError(t, os.WriteFile(paths.PatientsCSV, []byte("Name\n"), 0644))
	assert.Equal(t, paths.PatientsCSV, paths.InputFile())
}
