package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "medcli/internal/errors"
)

func writeTempXLSX(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "patients.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadExcel(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{" Name ", "Age", "Billing Amount"},
		{"Alice", 30, 100.5},
		{"Bob", 40, 200},
	})

	table, err := LoadExcel(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "Billing Amount"}, table.Columns())
	assert.Equal(t, 2, table.NumRows())
	assert.Equal(t, "Alice", table.Get(0, ColName))

	v, ok := table.Float(1, ColBillingAmount)
	require.True(t, ok)
	assert.InDelta(t, 200, v, 1e-9)
}

func TestLoadExcel_MissingFile(t *testing.T) {
	_, err := LoadExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestLoad_DispatchesToExcel(t *testing.T) {
	path := writeTempXLSX(t, [][]interface{}{
		{"Name"},
		{"Alice"},
	})

	table, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.NumRows())
}
