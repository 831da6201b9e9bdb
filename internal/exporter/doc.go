// Package exporter provides CSV export functionality for the pipeline.
//
// CSVWriter is the single writer type. It resolves destinations through
// config.Paths, creates parent directories on demand, and can prefix output
// with a UTF-8 BOM for Excel compatibility. Metric tables and the cleaned
// dataset are written without a BOM so they round-trip through the loader
// unchanged.
package exporter
