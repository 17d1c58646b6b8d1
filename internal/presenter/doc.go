// Package presenter turns per-category summaries into page models for the
// three dashboard views. A Page is plain data (tables, bar charts, a scatter
// plot) that the HTML templates and the JSON API both consume. All colors,
// titles and number formats live in style.go.
package presenter
