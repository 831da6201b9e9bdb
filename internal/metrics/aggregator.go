package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"medcli/internal/dataset"
	"medcli/internal/exporter"
)

// Metric table filenames, written into the metrics output directory.
const (
	KPIFile               = "kpis.csv"
	ConditionCountsFile   = "medical_condition_counts.csv"
	MonthlyAdmissionsFile = "admissions_by_month.csv"
	AvgBillingByCondition = "avg_billing_by_condition.csv"
	BloodTypeCountsFile   = "blood_type_counts.csv"
	AvgBillingByBloodType = "avg_billing_by_bloodtype.csv"
)

// KPISummary is the single-row headline summary of the cleaned dataset.
type KPISummary struct {
	TotalPatients  int
	TotalBilling   float64
	AverageBilling float64
	HasBilling     bool
}

// CountRow is one row of a distinct-value count table.
type CountRow struct {
	Key      string
	Patients int
}

// MeanRow is one row of a per-group mean billing table.
type MeanRow struct {
	Key  string
	Mean float64
}

// MonthRow is one row of the monthly admissions table.
type MonthRow struct {
	Month      string
	Admissions int
}

// Aggregator computes fixed summary tables from the cleaned table. The
// table is treated as read-only.
type Aggregator struct {
	logger *slog.Logger
	writer *exporter.CSVWriter
}

// NewAggregator creates an aggregator. A nil logger falls back to
// slog.Default().
func NewAggregator(logger *slog.Logger, writer *exporter.CSVWriter) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger, writer: writer}
}

// KPI computes the headline summary: patient count plus billing totals when
// the billing column is present.
func (a *Aggregator) KPI(t *dataset.Table) KPISummary {
	kpi := KPISummary{TotalPatients: t.NumRows()}
	if !t.HasColumn(dataset.ColBillingAmount) {
		return kpi
	}
	kpi.HasBilling = true
	count := 0
	for i := 0; i < t.NumRows(); i++ {
		if v, ok := t.Float(i, dataset.ColBillingAmount); ok {
			kpi.TotalBilling += v
			count++
		}
	}
	if count > 0 {
		kpi.AverageBilling = kpi.TotalBilling / float64(count)
	}
	return kpi
}

// CountBy counts distinct values of a column, descending by count with
// ties broken by value for stable output. Null cells are skipped.
func (a *Aggregator) CountBy(t *dataset.Table, col string) []CountRow {
	counts := make(map[string]int)
	for i := 0; i < t.NumRows(); i++ {
		v := t.Get(i, col)
		if v == "" {
			continue
		}
		counts[v]++
	}

	rows := make([]CountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, CountRow{Key: k, Patients: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Patients != rows[j].Patients {
			return rows[i].Patients > rows[j].Patients
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// MeanBillingBy computes the mean billing amount per distinct value of a
// column, descending by mean with ties broken by value.
func (a *Aggregator) MeanBillingBy(t *dataset.Table, col string) []MeanRow {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 0; i < t.NumRows(); i++ {
		k := t.Get(i, col)
		if k == "" {
			continue
		}
		v, ok := t.Float(i, dataset.ColBillingAmount)
		if !ok {
			continue
		}
		sums[k] += v
		counts[k]++
	}

	rows := make([]MeanRow, 0, len(sums))
	for k, sum := range sums {
		rows = append(rows, MeanRow{Key: k, Mean: sum / float64(counts[k])})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Mean != rows[j].Mean {
			return rows[i].Mean > rows[j].Mean
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// MonthlyAdmissions counts admissions per year-month, ascending by month.
// Only rows with a non-null admission date participate; rows with a null
// date still count toward every other aggregate.
func (a *Aggregator) MonthlyAdmissions(t *dataset.Table) []MonthRow {
	counts := make(map[string]int)
	for i := 0; i < t.NumRows(); i++ {
		if t.IsNull(i, dataset.ColDateOfAdmission) {
			continue
		}
		month := t.Get(i, dataset.ColAdmissionMonth)
		if month == "" {
			continue
		}
		counts[month]++
	}

	rows := make([]MonthRow, 0, len(counts))
	for m, n := range counts {
		rows = append(rows, MonthRow{Month: m, Admissions: n})
	}
	// Lexicographic order is chronological for "YYYY-MM" keys.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

// WriteAll computes and writes every metric table whose source columns are
// present. Absent columns skip their table entirely; no file is produced.
func (a *Aggregator) WriteAll(ctx context.Context, t *dataset.Table) error {
	kpi := a.KPI(t)
	kpiRow := []string{strconv.Itoa(kpi.TotalPatients), "", ""}
	if kpi.HasBilling {
		kpiRow[1] = formatFloat(kpi.TotalBilling)
		kpiRow[2] = formatFloat(kpi.AverageBilling)
	}
	if err := a.writer.WriteMetrics(KPIFile,
		[]string{"Total Patients", "Total Billing", "Average Billing"},
		[][]string{kpiRow}); err != nil {
		return fmt.Errorf("write KPI summary: %w", err)
	}

	if t.HasColumn(dataset.ColMedicalCondition) {
		if err := a.writeCounts(ConditionCountsFile, "Medical Condition",
			a.CountBy(t, dataset.ColMedicalCondition)); err != nil {
			return err
		}
	}

	if t.HasColumn(dataset.ColDateOfAdmission) && t.HasColumn(dataset.ColAdmissionMonth) {
		monthly := a.MonthlyAdmissions(t)
		records := make([][]string, len(monthly))
		for i, row := range monthly {
			records[i] = []string{row.Month, strconv.Itoa(row.Admissions)}
		}
		if err := a.writer.WriteMetrics(MonthlyAdmissionsFile,
			[]string{"Admission Month", "Admissions"}, records); err != nil {
			return fmt.Errorf("write monthly admissions: %w", err)
		}
	}

	if t.HasColumn(dataset.ColMedicalCondition) && t.HasColumn(dataset.ColBillingAmount) {
		if err := a.writeMeans(AvgBillingByCondition, "Medical Condition",
			a.MeanBillingBy(t, dataset.ColMedicalCondition)); err != nil {
			return err
		}
	}

	if t.HasColumn(dataset.ColBloodType) {
		if err := a.writeCounts(BloodTypeCountsFile, "Blood Type",
			a.CountBy(t, dataset.ColBloodType)); err != nil {
			return err
		}
		if t.HasColumn(dataset.ColBillingAmount) {
			if err := a.writeMeans(AvgBillingByBloodType, "Blood Type",
				a.MeanBillingBy(t, dataset.ColBloodType)); err != nil {
				return err
			}
		}
	}

	a.logger.InfoContext(ctx, "metric tables written",
		slog.Int("total_patients", kpi.TotalPatients))
	return nil
}

func (a *Aggregator) writeCounts(filename, keyHeader string, rows []CountRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{row.Key, strconv.Itoa(row.Patients)}
	}
	if err := a.writer.WriteMetrics(filename, []string{keyHeader, "Patients"}, records); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

func (a *Aggregator) writeMeans(filename, keyHeader string, rows []MeanRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{row.Key, formatFloat(row.Mean)}
	}
	if err := a.writer.WriteMetrics(filename, []string{keyHeader, "Billing Amount"}, records); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
