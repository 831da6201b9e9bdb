package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"medcli/internal/dataset"
	"medcli/internal/exporter"
)

// Cleaner produces a fully-normalized patient table. After Clean returns,
// Billing Amount has no nulls (imputed with the pre-imputation median) and
// Gender, Insurance Provider and Blood Type fall back to "Unknown".
type Cleaner struct {
	logger *slog.Logger
	writer *exporter.CSVWriter
}

// NewCleaner creates a cleaner. The writer persists the cleaned table; a nil
// logger falls back to slog.Default().
func NewCleaner(logger *slog.Logger, writer *exporter.CSVWriter) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger, writer: writer}
}

// Clean normalizes the table in place and writes the cleaned dataset to its
// fixed output path. Every transformation is guarded by column presence, so
// a table missing any optional column cleans without failure.
func (c *Cleaner) Clean(ctx context.Context, t *dataset.Table) error {
	c.logger.InfoContext(ctx, "cleaning dataset", slog.Int("rows", t.NumRows()))

	c.coerceDates(ctx, t)
	c.coerceBilling(ctx, t)
	c.coerceAges(ctx, t)
	c.normalizeGender(t)
	c.trimFreeText(t)

	before := t.NumRows()
	c.dropDuplicates(t)
	c.logger.InfoContext(ctx, "removed duplicate rows",
		slog.Int("before", before),
		slog.Int("after", t.NumRows()))

	c.imputeMissing(ctx, t)
	c.deriveAgeGroup(t)
	c.deriveAdmissionFields(t)

	if c.writer != nil {
		if err := c.writer.WriteClean(t.Columns(), t.Records()); err != nil {
			return fmt.Errorf("write cleaned dataset: %w", err)
		}
	}

	c.logger.InfoContext(ctx, "cleaning complete", slog.Int("rows", t.NumRows()))
	return nil
}

// coerceDates rewrites admission dates into canonical form; unparseable
// values become null.
func (c *Cleaner) coerceDates(ctx context.Context, t *dataset.Table) {
	if !t.HasColumn(dataset.ColDateOfAdmission) {
		return
	}
	nulled := 0
	for i := 0; i < t.NumRows(); i++ {
		raw := t.Get(i, dataset.ColDateOfAdmission)
		d, ok := ParseDate(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				nulled++
			}
			t.Set(i, dataset.ColDateOfAdmission, "")
			continue
		}
		t.Set(i, dataset.ColDateOfAdmission, d.Format(dataset.DateLayout))
	}
	if nulled > 0 {
		c.logger.WarnContext(ctx, "unparseable admission dates coerced to null",
			slog.Int("count", nulled))
	}
}

// coerceBilling strips currency markup and rewrites billing amounts as
// numbers; unparseable values become null.
func (c *Cleaner) coerceBilling(ctx context.Context, t *dataset.Table) {
	if !t.HasColumn(dataset.ColBillingAmount) {
		return
	}
	nulled := 0
	for i := 0; i < t.NumRows(); i++ {
		raw := t.Get(i, dataset.ColBillingAmount)
		v, ok := ParseBilling(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				nulled++
			}
			t.Set(i, dataset.ColBillingAmount, "")
			continue
		}
		t.Set(i, dataset.ColBillingAmount, FormatFloat(v))
	}
	if nulled > 0 {
		c.logger.WarnContext(ctx, "unparseable billing amounts coerced to null",
			slog.Int("count", nulled))
	}
}

// coerceAges rewrites ages as numbers; unparseable values become null.
func (c *Cleaner) coerceAges(ctx context.Context, t *dataset.Table) {
	if !t.HasColumn(dataset.ColAge) {
		return
	}
	nulled := 0
	for i := 0; i < t.NumRows(); i++ {
		raw := t.Get(i, dataset.ColAge)
		v, ok := ParseAge(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				nulled++
			}
			t.Set(i, dataset.ColAge, "")
			continue
		}
		t.Set(i, dataset.ColAge, FormatFloat(v))
	}
	if nulled > 0 {
		c.logger.WarnContext(ctx, "unparseable ages coerced to null",
			slog.Int("count", nulled))
	}
}

func (c *Cleaner) normalizeGender(t *dataset.Table) {
	if !t.HasColumn(dataset.ColGender) {
		return
	}
	for i := 0; i < t.NumRows(); i++ {
		t.Set(i, dataset.ColGender, NormalizeGender(t.Get(i, dataset.ColGender)))
	}
}

func (c *Cleaner) trimFreeText(t *dataset.Table) {
	for _, col := range dataset.FreeTextColumns {
		if !t.HasColumn(col) {
			continue
		}
		for i := 0; i < t.NumRows(); i++ {
			t.Set(i, col, strings.TrimSpace(t.Get(i, col)))
		}
	}
}

// dropDuplicates removes exact-duplicate rows, keeping the first occurrence.
func (c *Cleaner) dropDuplicates(t *dataset.Table) {
	seen := make(map[string]struct{}, t.NumRows())
	t.Retain(func(row int) bool {
		key := t.RowKey(row)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
}

// imputeMissing fills billing nulls with the column median computed over
// the non-null values before imputation, and categorical nulls with
// "Unknown".
func (c *Cleaner) imputeMissing(ctx context.Context, t *dataset.Table) {
	if t.HasColumn(dataset.ColBillingAmount) {
		var values []float64
		for i := 0; i < t.NumRows(); i++ {
			if v, ok := t.Float(i, dataset.ColBillingAmount); ok {
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			median := FormatFloat(Median(values))
			imputed := 0
			for i := 0; i < t.NumRows(); i++ {
				if t.IsNull(i, dataset.ColBillingAmount) {
					t.Set(i, dataset.ColBillingAmount, median)
					imputed++
				}
			}
			if imputed > 0 {
				c.logger.InfoContext(ctx, "imputed billing amounts with column median",
					slog.Int("count", imputed),
					slog.String("median", median))
			}
		}
	}

	for _, col := range []string{dataset.ColGender, dataset.ColInsuranceProvider, dataset.ColBloodType} {
		if !t.HasColumn(col) {
			continue
		}
		for i := 0; i < t.NumRows(); i++ {
			if t.IsNull(i, col) {
				t.Set(i, col, "Unknown")
			}
		}
	}
}

// deriveAgeGroup buckets ages into the fixed age groups. Out-of-range or
// null ages yield no bucket.
func (c *Cleaner) deriveAgeGroup(t *dataset.Table) {
	if !t.HasColumn(dataset.ColAge) {
		return
	}
	t.AddColumn(dataset.ColAgeGroup)
	for i := 0; i < t.NumRows(); i++ {
		age, ok := t.Float(i, dataset.ColAge)
		if !ok {
			t.Set(i, dataset.ColAgeGroup, "")
			continue
		}
		group, ok := AgeGroup(age)
		if !ok {
			t.Set(i, dataset.ColAgeGroup, "")
			continue
		}
		t.Set(i, dataset.ColAgeGroup, group)
	}
}

// deriveAdmissionFields derives year, year-month and month name from the
// admission date. Null dates propagate as nulls.
func (c *Cleaner) deriveAdmissionFields(t *dataset.Table) {
	if !t.HasColumn(dataset.ColDateOfAdmission) {
		return
	}
	t.AddColumn(dataset.ColAdmissionYear)
	t.AddColumn(dataset.ColAdmissionMonth)
	t.AddColumn(dataset.ColMonthName)
	for i := 0; i < t.NumRows(); i++ {
		d, ok := t.Date(i, dataset.ColDateOfAdmission)
		if !ok {
			t.Set(i, dataset.ColAdmissionYear, "")
			t.Set(i, dataset.ColAdmissionMonth, "")
			t.Set(i, dataset.ColMonthName, "")
			continue
		}
		t.Set(i, dataset.ColAdmissionYear, strconv.Itoa(d.Year()))
		t.Set(i, dataset.ColAdmissionMonth, d.Format("2006-01"))
		t.Set(i, dataset.ColMonthName, d.Format("Jan"))
	}
}
