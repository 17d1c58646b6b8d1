package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"ecomdash/internal/errors"
	"ecomdash/pkg/contracts/domain"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SupportedFormats lists every export format
var SupportedFormats = []Format{FormatCSV, FormatXLSX}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Summary names an exportable summary table
type Summary string

const (
	SummaryCategories Summary = "categories"
	SummaryReviews    Summary = "reviews"
	SummaryTiers      Summary = "tiers"
)

// SupportedSummaries lists every exportable summary
var SupportedSummaries = []Summary{SummaryCategories, SummaryReviews, SummaryTiers}

// ParseSummary parses a summary name, case-insensitively
func ParseSummary(s string) (Summary, error) {
	switch Summary(strings.ToLower(strings.TrimSpace(s))) {
	case SummaryCategories:
		return SummaryCategories, nil
	case SummaryReviews:
		return SummaryReviews, nil
	case SummaryTiers:
		return SummaryTiers, nil
	default:
		return "", fmt.Errorf("unknown summary %q", s)
	}
}

// Filename is the download name of a summary in the given format
func Filename(summary Summary, format Format) string {
	return fmt.Sprintf("%s_summary.%s", summary, format)
}

// Sheet is a header row plus typed rows. Cells are strings, int64, float64
// or *float64 (nil for undefined values).
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// CategorySheet builds the revenue summary table
func CategorySheet(rows []domain.CategorySummary) Sheet {
	s := Sheet{
		Name:    string(SummaryCategories),
		Headers: []string{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []interface{}{r.Category, r.Items, r.Revenue})
	}
	return s
}

// ReviewSheet builds the review summary table
func ReviewSheet(rows []domain.ReviewSummary) Sheet {
	s := Sheet{
		Name:    string(SummaryReviews),
		Headers: []string{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice, domain.ColumnReviewScore, "review_count"},
		Rows:    make([][]interface{}, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []interface{}{r.Category, r.Items, r.Revenue, r.MeanReview, int64(r.ReviewCount)})
	}
	return s
}

// TierSheet builds the sales tier table
func TierSheet(report domain.TierReport) Sheet {
	s := Sheet{
		Name:    string(SummaryTiers),
		Headers: []string{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice, domain.ColumnReviewScore, "sales_category"},
		Rows:    make([][]interface{}, 0, len(report.Categories)),
	}
	for _, c := range report.Categories {
		s.Rows = append(s.Rows, []interface{}{c.Category, c.Items, c.Revenue, c.MeanReview, string(c.Tier)})
	}
	return s
}

// Exporter writes sheets in any supported format
type Exporter struct {
	csv    *CSVWriter
	xlsx   *XLSXWriter
	logger *slog.Logger
}

// New creates an exporter
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "exporter"))
	return &Exporter{
		csv:    NewCSVWriter(logger),
		xlsx:   NewXLSXWriter(logger),
		logger: logger,
	}
}

// Export writes sheet to w. Failures are returned as EXPORT AppErrors.
func (e *Exporter) Export(w io.Writer, format Format, sheet Sheet) error {
	var err error
	switch format {
	case FormatCSV:
		err = e.csv.WriteCSV(w, WriteOptions{
			Headers:   sheet.Headers,
			Records:   sheetRecords(sheet),
			BOMPrefix: true,
		})
	case FormatXLSX:
		err = e.xlsx.WriteXLSX(w, sheet)
	default:
		return errors.NewExportError(fmt.Sprintf("unsupported export format %q", format), nil)
	}

	if err != nil {
		e.logger.Error("export failed",
			slog.String("sheet", sheet.Name),
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return errors.NewExportError(fmt.Sprintf("failed to export %s as %s", sheet.Name, format), err)
	}

	e.logger.Info("export written",
		slog.String("sheet", sheet.Name),
		slog.String("format", string(format)),
		slog.Int("rows", len(sheet.Rows)))
	return nil
}

func sheetRecords(sheet Sheet) [][]string {
	records := make([][]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = formatCell(v)
		}
		records[i] = record
	}
	return records
}
