package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "medcli/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patients.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, " Name , Age ,Billing Amount\nAlice,30,100.5\nBob,40\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "Billing Amount"}, table.Columns())
	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, "Alice", table.Get(0, ColName))
	// Ragged row padded with nulls
	assert.True(t, table.IsNull(1, ColBillingAmount))
}

func TestLoadCSV_StripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\xEF\xBB\xBFName,Age\nAlice,30\n")

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.True(t, table.HasColumn(ColName))
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := LoadCSV(path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	path := writeTempCSV(t, "Name\nAlice\n")

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.NumRows())
}
