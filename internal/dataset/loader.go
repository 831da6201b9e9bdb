package dataset

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "medcli/internal/errors"
)

// Load reads a patient roster from disk, dispatching on file extension.
// CSV is the primary format; XLSX rosters are accepted as a fallback.
func Load(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadExcel(path)
	}
	return LoadCSV(path)
}

// LoadCSV reads a CSV file into a Table. Column names are stripped of
// surrounding whitespace; a UTF-8 BOM on the first header is removed. Ragged
// rows are padded with nulls. A missing or unparseable file is fatal.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("dataset file not found", err).
				WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to open dataset file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV header", err).
			WithContext("path", path)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		columns[i] = strings.TrimSpace(h)
	}

	table := NewTable(columns)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read CSV record", err).
				WithContext("path", path)
		}
		table.AppendRow(record)
	}

	slog.Info("Loaded dataset",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", len(columns)))

	return table, nil
}
