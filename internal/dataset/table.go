// Package dataset defines the Patient Record Table and its loaders.
//
// The table is columnar with string cells; the empty string is the null
// sentinel. Every column is optional: callers gate each transformation or
// aggregation on HasColumn rather than assuming a fixed schema.
package dataset

import (
	"strconv"
	"strings"
	"time"
)

// Canonical column names of the patient roster. Input headers are trimmed
// before matching, so surrounding whitespace in the source file is tolerated.
const (
	ColName              = "Name"
	ColAge               = "Age"
	ColGender            = "Gender"
	ColBloodType         = "Blood Type"
	ColMedicalCondition  = "Medical Condition"
	ColDateOfAdmission   = "Date of Admission"
	ColBillingAmount     = "Billing Amount"
	ColDoctor            = "Doctor"
	ColHospital          = "Hospital"
	ColInsuranceProvider = "Insurance Provider"

	// Derived columns added by the cleaner
	ColAgeGroup       = "Age Group"
	ColAdmissionYear  = "Admission Year"
	ColAdmissionMonth = "Admission Month"
	ColMonthName      = "Month Name"
)

// DateLayout is the canonical date format cells hold after cleaning.
const DateLayout = "2006-01-02"

// FreeTextColumns are the columns that only receive whitespace trimming.
var FreeTextColumns = []string{
	ColName,
	ColBloodType,
	ColMedicalCondition,
	ColDoctor,
	ColHospital,
	ColInsuranceProvider,
}

// Table is an in-memory patient record table: an ordered set of named
// columns over rows of string cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable creates an empty table with the given column names.
func NewTable(columns []string) *Table {
	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(t.columns, columns)
	for i, c := range t.columns {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// AppendRow adds a row, padding or truncating it to the column count.
func (t *Table) AppendRow(row []string) {
	cells := make([]string, len(t.columns))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Get returns the cell at (row, column). Unknown columns read as null.
func (t *Table) Get(row int, col string) string {
	i, ok := t.index[col]
	if !ok {
		return ""
	}
	return t.rows[row][i]
}

// Set writes the cell at (row, column). Unknown columns are ignored.
func (t *Table) Set(row int, col string, value string) {
	if i, ok := t.index[col]; ok {
		t.rows[row][i] = value
	}
}

// AddColumn appends a new column with null cells. Adding an existing
// column is a no-op.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
}

// IsNull reports whether the cell at (row, column) is null.
func (t *Table) IsNull(row int, col string) bool {
	return t.Get(row, col) == ""
}

// Float parses the cell as a number. The second return is false for null
// or unparseable cells.
func (t *Table) Float(row int, col string) (float64, bool) {
	s := t.Get(row, col)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Date parses the cell as a canonical date. The second return is false for
// null or unparseable cells.
func (t *Table) Date(row int, col string) (time.Time, bool) {
	s := t.Get(row, col)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Row returns a copy of the row's cells in column order.
func (t *Table) Row(row int) []string {
	out := make([]string, len(t.rows[row]))
	copy(out, t.rows[row])
	return out
}

// Records returns all rows as string slices in column order, ready for
// CSV export.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Retain keeps only the rows whose index satisfies keep, preserving order.
func (t *Table) Retain(keep func(row int) bool) {
	kept := t.rows[:0]
	for i := range t.rows {
		if keep(i) {
			kept = append(kept, t.rows[i])
		}
	}
	t.rows = kept
}

// RowKey returns a stable key for full-row equality checks.
func (t *Table) RowKey(row int) string {
	return strings.Join(t.rows[row], "\x1f")
}
