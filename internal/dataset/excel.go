package dataset

import (
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "medcli/internal/errors"
)

// LoadExcel reads a patient roster from the first sheet of an XLSX workbook.
// The first row is the header; remaining rows are data. Header names are
// trimmed the same way as for CSV input.
func LoadExcel(path string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError("dataset file not found", err).
			WithContext("path", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet rows", err).
			WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("sheet has no header row", nil).
			WithContext("sheet", sheets[0])
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
	}

	table := NewTable(columns)
	for _, row := range rows[1:] {
		table.AppendRow(row)
	}

	slog.Info("Loaded dataset from workbook",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", len(columns)))

	return table, nil
}
