// Package charts renders the fixed set of report figures as PNG files.
package charts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"medcli/internal/cleaning"
	"medcli/internal/config"
	"medcli/internal/dataset"
	"medcli/internal/metrics"
)

// Figure filenames, written into the figures output directory.
const (
	AdmissionsOverTimeFile   = "admissions_over_time.png"
	TopConditionsFile        = "top10_medical_conditions.png"
	GenderDistributionFile   = "gender_distribution.png"
	AgeGroupDistributionFile = "age_group_distribution.png"
	AvgBillingConditionFile  = "avg_billing_by_condition.png"
	InsuranceShareFile       = "insurance_provider_share.png"
	BloodTypeFile            = "blood_type_distribution.png"
	AvgBillingBloodTypeFile  = "avg_billing_by_bloodtype.png"
)

const (
	chartDPI   = 150
	wideWidth  = 1000
	wideHeight = 500
	pieSize    = 600

	topN = 10
)

// Renderer renders report figures from the cleaned table and its
// aggregates. Each chart owns its drawing surface for the duration of a
// single render call; nothing leaks between charts.
type Renderer struct {
	logger *slog.Logger
	paths  *config.Paths
	agg    *metrics.Aggregator
}

// NewRenderer creates a renderer. A nil logger falls back to slog.Default().
func NewRenderer(logger *slog.Logger, paths *config.Paths, agg *metrics.Aggregator) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger, paths: paths, agg: agg}
}

// RenderAll renders every figure whose source columns are present. Absent
// columns skip their figure entirely; no file is produced.
func (r *Renderer) RenderAll(ctx context.Context, t *dataset.Table) error {
	if t.HasColumn(dataset.ColDateOfAdmission) && t.HasColumn(dataset.ColAdmissionMonth) {
		monthly := r.agg.MonthlyAdmissions(t)
		if len(monthly) > 0 {
			if err := r.save(ctx, AdmissionsOverTimeFile, r.monthlyLine(monthly)); err != nil {
				return err
			}
		}
	}

	if t.HasColumn(dataset.ColMedicalCondition) {
		counts := topCounts(r.agg.CountBy(t, dataset.ColMedicalCondition), topN)
		if len(counts) > 0 {
			if err := r.save(ctx, TopConditionsFile,
				r.countBars("Top 10 Medical Conditions", counts)); err != nil {
				return err
			}
		}
	}

	if t.HasColumn(dataset.ColGender) {
		counts := r.agg.CountBy(t, dataset.ColGender)
		if len(counts) > 0 {
			if err := r.save(ctx, GenderDistributionFile,
				r.countPie("Gender Distribution", counts)); err != nil {
				return err
			}
		}
	}

	if t.HasColumn(dataset.ColAgeGroup) {
		counts := bucketOrdered(r.agg.CountBy(t, dataset.ColAgeGroup))
		if len(counts) > 0 {
			if err := r.save(ctx, AgeGroupDistributionFile,
				r.countPie("Age Group Distribution", counts)); err != nil {
				return err
			}
		}
	}

	if t.HasColumn(dataset.ColMedicalCondition) && t.HasColumn(dataset.ColBillingAmount) {
		means := r.agg.MeanBillingBy(t, dataset.ColMedicalCondition)
		if len(means) > topN {
			means = means[:topN]
		}
		if len(means) > 0 {
			if err := r.save(ctx, AvgBillingConditionFile,
				r.meanBars("Average Billing by Condition (Top 10)", means)); err != nil {
				return err
			}
		}
	}

	if t.HasColumn(dataset.ColInsuranceProvider) {
		counts := topCounts(r.agg.CountBy(t, dataset.ColInsuranceProvider), topN)
		if len(counts) > 0 {
			if err := r.save(ctx, InsuranceShareFile,
				r.countPie("Insurance Provider Share (Top 10)", counts)); err != nil {
				return err
			}
		}
	}

	if t.HasColumn(dataset.ColBloodType) {
		counts := r.agg.CountBy(t, dataset.ColBloodType)
		if len(counts) > 0 {
			if err := r.save(ctx, BloodTypeFile,
				r.countPie("Blood Type Distribution", counts)); err != nil {
				return err
			}
		}
		if t.HasColumn(dataset.ColBillingAmount) {
			means := r.agg.MeanBillingBy(t, dataset.ColBloodType)
			if len(means) > 0 {
				if err := r.save(ctx, AvgBillingBloodTypeFile,
					r.meanBars("Average Billing by Blood Type", means)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// save renders one chart into its figure file. The file handle is owned by
// this call and released on every exit path.
func (r *Renderer) save(ctx context.Context, filename string, render func(io.Writer) error) error {
	path := r.paths.GetFigurePath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create figures directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure %s: %w", filename, err)
	}
	defer file.Close()

	if err := render(file); err != nil {
		return fmt.Errorf("render figure %s: %w", filename, err)
	}

	r.logger.InfoContext(ctx, "figure rendered", slog.String("path", path))
	return nil
}

// monthlyLine draws admissions per month over time with rotated x labels.
func (r *Renderer) monthlyLine(monthly []metrics.MonthRow) func(io.Writer) error {
	// A series needs two points to draw; a single month becomes a flat line.
	if len(monthly) == 1 {
		monthly = append(monthly, monthly[0])
	}

	xs := make([]float64, len(monthly))
	ys := make([]float64, len(monthly))
	ticks := make([]chart.Tick, len(monthly))
	for i, row := range monthly {
		xs[i] = float64(i)
		ys[i] = float64(row.Admissions)
		ticks[i] = chart.Tick{Value: float64(i), Label: row.Month}
	}

	ch := chart.Chart{
		Title:  "Admissions Over Time (Monthly)",
		Width:  wideWidth,
		Height: wideHeight,
		DPI:    chartDPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 20, Right: 20, Bottom: 60},
		},
		XAxis: chart.XAxis{
			Ticks:     ticks,
			TickStyle: chart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: chart.YAxis{Name: "Admissions"},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}
	return func(w io.Writer) error { return ch.Render(chart.PNG, w) }
}

// countBars draws a count table as a bar chart with rotated labels.
func (r *Renderer) countBars(title string, counts []metrics.CountRow) func(io.Writer) error {
	bars := make([]chart.Value, len(counts))
	for i, row := range counts {
		bars[i] = chart.Value{Label: row.Key, Value: float64(row.Patients)}
	}
	return r.bars(title, bars)
}

// meanBars draws a mean billing table as a bar chart with rotated labels.
func (r *Renderer) meanBars(title string, means []metrics.MeanRow) func(io.Writer) error {
	bars := make([]chart.Value, len(means))
	for i, row := range means {
		bars[i] = chart.Value{Label: row.Key, Value: row.Mean}
	}
	return r.bars(title, bars)
}

func (r *Renderer) bars(title string, bars []chart.Value) func(io.Writer) error {
	ch := chart.BarChart{
		Title:  title,
		Width:  wideWidth,
		Height: wideHeight,
		DPI:    chartDPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 20, Right: 20, Bottom: 80},
		},
		BarWidth: 50,
		XAxis:    chart.Style{TextRotationDegrees: 45.0},
		Bars:     bars,
	}
	return func(w io.Writer) error { return ch.Render(chart.PNG, w) }
}

// countPie draws a count table as a pie chart with percentage labels.
func (r *Renderer) countPie(title string, counts []metrics.CountRow) func(io.Writer) error {
	total := 0
	for _, row := range counts {
		total += row.Patients
	}

	values := make([]chart.Value, len(counts))
	for i, row := range counts {
		label := row.Key
		if total > 0 {
			label = fmt.Sprintf("%s (%.1f%%)", row.Key, 100*float64(row.Patients)/float64(total))
		}
		values[i] = chart.Value{Label: label, Value: float64(row.Patients)}
	}

	ch := chart.PieChart{
		Title:  title,
		Width:  pieSize,
		Height: pieSize,
		DPI:    chartDPI,
		Values: values,
	}
	return func(w io.Writer) error { return ch.Render(chart.PNG, w) }
}

// topCounts keeps the first n rows of a descending count table.
func topCounts(counts []metrics.CountRow, n int) []metrics.CountRow {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// bucketOrdered reorders age-group counts into ascending bucket order.
func bucketOrdered(counts []metrics.CountRow) []metrics.CountRow {
	byKey := make(map[string]metrics.CountRow, len(counts))
	for _, row := range counts {
		byKey[row.Key] = row
	}
	ordered := make([]metrics.CountRow, 0, len(counts))
	for _, bucket := range cleaning.AgeGroupOrder {
		if row, ok := byKey[bucket]; ok {
			ordered = append(ordered, row)
		}
	}
	// Unexpected labels (none today) keep their descending-count position.
	for _, row := range counts {
		if !containsBucket(row.Key) {
			ordered = append(ordered, row)
		}
	}
	return ordered
}

func containsBucket(key string) bool {
	for _, bucket := range cleaning.AgeGroupOrder {
		if bucket == key {
			return true
		}
	}
	return false
}
