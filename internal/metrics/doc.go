// Package metrics computes summary tables over a cleaned patient dataset and
// persists them as CSV files. Computation is pure; persistence goes through
// the exporter. All tables are sorted deterministically so repeated runs
// produce byte-identical output.
package metrics
