// Package app wires the pipeline stages together: load, clean, metrics,
// charts. Data flows one way; each stage runs to completion before the next.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"medcli/internal/charts"
	"medcli/internal/cleaning"
	"medcli/internal/config"
	"medcli/internal/dataset"
	"medcli/internal/exporter"
	"medcli/internal/metrics"
)

// Pipeline is the single-run batch workflow over one patient roster.
type Pipeline struct {
	logger *slog.Logger
	paths  *config.Paths
}

// New creates a pipeline. A nil logger falls back to slog.Default().
func New(logger *slog.Logger, paths *config.Paths) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, paths: paths}
}

// Run executes the whole pipeline once. Any failure is fatal to the run;
// there is no partial-output contract.
func (p *Pipeline) Run(ctx context.Context) error {
	fmt.Println("Loading dataset...")
	table, err := dataset.Load(p.paths.InputFile())
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	fmt.Printf("Rows: %d, Cols: %d\n", table.NumRows(), len(table.Columns()))

	writer := exporter.NewCSVWriter(p.paths)

	fmt.Println("Cleaning & enriching...")
	cleaner := cleaning.NewCleaner(p.logger, writer)
	if err := cleaner.Clean(ctx, table); err != nil {
		return fmt.Errorf("clean dataset: %w", err)
	}
	fmt.Printf("Saved cleaned data -> %s\n", p.paths.CleanCSV)

	// The table is read-only from here on.
	fmt.Println("Computing metrics...")
	agg := metrics.NewAggregator(p.logger, writer)
	if err := agg.WriteAll(ctx, table); err != nil {
		return fmt.Errorf("compute metrics: %w", err)
	}

	fmt.Println("Creating charts...")
	renderer := charts.NewRenderer(p.logger, p.paths, agg)
	if err := renderer.RenderAll(ctx, table); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	fmt.Println("All done.")
	fmt.Printf("See outputs in: %s, %s, %s\n",
		p.paths.CleanDir, p.paths.MetricsDir, p.paths.FiguresDir)

	p.logger.InfoContext(ctx, "pipeline complete",
		slog.Int("rows", table.NumRows()),
		slog.String("clean_csv", p.paths.CleanCSV))
	return nil
}
