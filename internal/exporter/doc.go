// Package exporter writes the combined summary table to disk.
//
// CSVWriter produces the plain CSV consumed by the figure exporter. Relative
// file names are resolved against the configured data directory.
//
// WorkbookWriter produces an Excel copy of the same table with a second
// sheet counting partners per regime and stability category.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	err := writer.WriteSimpleCSV(paths.FinalSummaryCSV, summary.Columns, summary.Records())
//
//	err = exporter.NewWorkbookWriter(logger).Write(paths.SummaryXLSX, summary)
package exporter
