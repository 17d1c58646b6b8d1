// Package exporter renders summary tables as downloadable CSV or XLSX.
//
// A Sheet is a header plus typed rows built from one of the summaries
// (categories, reviews, tiers). Exporter.Export writes it to any io.Writer
// in the requested Format, so HTTP handlers can stream a download without
// touching the disk.
//
// Example usage:
//
//	exp := exporter.New(logger)
//	sheet := exporter.CategorySheet(dataprocessing.SummarizeRevenue(txs))
//	err := exp.Export(w, exporter.FormatCSV, sheet)
//
// CSV output starts with a UTF-8 BOM so spreadsheet applications pick the
// right encoding. Floats are written with two decimals and undefined review
// means as empty cells.
package exporter
