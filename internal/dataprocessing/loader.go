package dataprocessing

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ecomdash/internal/errors"
	"ecomdash/internal/infrastructure"
	"ecomdash/pkg/contracts/domain"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	// cancellation is checked every ctxCheckInterval data rows
	ctxCheckInterval = 1000
)

// LoaderOptions tunes LoadTransactions
type LoaderOptions struct {
	// Sheet selects the worksheet of an XLSX source. Empty means the first sheet.
	Sheet   string
	Logger  *slog.Logger
	Metrics *infrastructure.BusinessMetrics
}

// Dataset is the in-memory result of loading the transactions file. It is
// read-only once LoadTransactions returns.
type Dataset struct {
	Source       string
	Format       string
	Transactions []domain.Transaction
	RowsRead     int
	SkippedRows  int
	LoadedAt     time.Time
	Duration     time.Duration
}

// Len returns the number of usable transactions
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Transactions)
}

// Categories returns the number of distinct category labels
func (d *Dataset) Categories() int {
	if d == nil {
		return 0
	}
	seen := make(map[string]struct{})
	for _, tx := range d.Transactions {
		seen[tx.Category] = struct{}{}
	}
	return len(seen)
}

// rowReader yields raw records one at a time and io.EOF at the end
type rowReader interface {
	Next() ([]string, int, error)
	Close() error
}

// LoadTransactions reads the joined transactions file at path. It is the
// explicit initialization step of the dashboard and is called once at startup.
func LoadTransactions(ctx context.Context, path string, opts LoaderOptions) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "loader"))

	ctx, span := otel.Tracer(infrastructure.MeterName).Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("dataset.source", path)))
	defer span.End()

	start := time.Now()
	format, err := detectFormat(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	logger.InfoContext(ctx, "loading dataset", slog.String("path", path), slog.String("format", format))

	var rows rowReader
	switch format {
	case formatXLSX:
		rows, err = openXLSX(path, opts.Sheet)
	default:
		rows, err = openCSV(path)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "failed to open dataset", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	defer rows.Close()

	ds := &Dataset{Source: path, Format: format}
	if err := readTransactions(ctx, rows, ds); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "failed to read dataset", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	ds.LoadedAt = time.Now()
	ds.Duration = time.Since(start)

	infrastructure.RecordDatasetLoad(ctx, opts.Metrics, path, ds.Len(), ds.Duration)

	logger.InfoContext(ctx, "dataset loaded",
		slog.Int("rows_read", ds.RowsRead),
		slog.Int("rows_skipped", ds.SkippedRows),
		slog.Int("transactions", ds.Len()),
		slog.Int("categories", ds.Categories()),
		slog.Duration("duration", ds.Duration),
	)

	return ds, nil
}

func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return formatCSV, nil
	case ".xlsx":
		return formatXLSX, nil
	default:
		return "", errors.NewParsingError(fmt.Sprintf("unsupported dataset format %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

func readTransactions(ctx context.Context, rows rowReader, ds *Dataset) error {
	header, _, err := rows.Next()
	if err == io.EOF {
		return errors.NewParsingError("dataset is empty: header row is missing", nil)
	}
	if err != nil {
		return errors.NewParsingError("failed to read header row", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return err
	}

	validate := validator.New()
	ds.Transactions = make([]domain.Transaction, 0, 1024)

	for {
		record, line, err := rows.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewParsingError(fmt.Sprintf("failed to read line %d", line), err).
				WithContext("line", line)
		}

		ds.RowsRead++
		if ds.RowsRead%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		tx, ok, err := cols.parse(record)
		if err != nil {
			return errors.NewParsingError(fmt.Sprintf("malformed row on line %d", line), err).
				WithContext("line", line)
		}
		if !ok {
			ds.SkippedRows++
			continue
		}

		if err := validate.Struct(tx); err != nil {
			return errors.NewParsingError(fmt.Sprintf("invalid row on line %d", line), err).
				WithContext("line", line)
		}

		ds.Transactions = append(ds.Transactions, tx)
	}
}

// columnIndex maps the required columns to their positions in the header
type columnIndex struct {
	category int
	items    int
	price    int
	review   int
}

func mapColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := positions[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, errors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing", missing)
	}

	return columnIndex{
		category: positions[domain.ColumnCategory],
		items:    positions[domain.ColumnItems],
		price:    positions[domain.ColumnPrice],
		review:   positions[domain.ColumnReviewScore],
	}, nil
}

// parse converts a raw record. ok is false when the row has no category.
func (c columnIndex) parse(record []string) (domain.Transaction, bool, error) {
	category := rawCell(record, c.category)
	if isMissing(strings.TrimSpace(category)) {
		return domain.Transaction{}, false, nil
	}

	items, err := parseItems(cell(record, c.items))
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("%s: %w", domain.ColumnItems, err)
	}

	price, _, err := parseNumber(cell(record, c.price))
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("%s: %w", domain.ColumnPrice, err)
	}

	tx := domain.Transaction{
		Category: category,
		Items:    items,
		Price:    price,
	}

	score, present, err := parseNumber(cell(record, c.review))
	if err != nil {
		return domain.Transaction{}, false, fmt.Errorf("%s: %w", domain.ColumnReviewScore, err)
	}
	if present {
		tx.ReviewScore = &score
	}

	return tx, true, nil
}

// rawCell returns the value at i as read, or "" for short records.
// Category labels keep surrounding whitespace: "toys" and " toys " are
// different categories.
func rawCell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

// cell returns the trimmed value at i, for numeric columns
func cell(record []string, i int) string {
	return strings.TrimSpace(rawCell(record, i))
}

func isMissing(s string) bool {
	return s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null")
}

// parseNumber parses a float cell. present is false for empty or NaN cells.
func parseNumber(s string) (float64, bool, error) {
	if isMissing(s) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	return v, true, nil
}

// parseItems accepts integers and integral floats such as "1.0"
func parseItems(s string) (int64, error) {
	if isMissing(s) {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, present, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, nil
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, fmt.Errorf("item count %q is not an integer", s)
	}
	return int64(f), nil
}

type csvRows struct {
	file   *os.File
	reader *csv.Reader
}

func openCSV(path string) (*csvRows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open dataset", err).WithContext("path", path)
	}

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	return &csvRows{file: f, reader: r}, nil
}

func (c *csvRows) Next() ([]string, int, error) {
	record, err := c.reader.Read()
	if err != nil {
		if pe, ok := err.(*csv.ParseError); ok {
			return nil, pe.StartLine, err
		}
		return nil, 0, err
	}
	line, _ := c.reader.FieldPos(0)
	return record, line, nil
}

func (c *csvRows) Close() error {
	return c.file.Close()
}

type xlsxRows struct {
	file *excelize.File
	rows *excelize.Rows
	line int
}

func openXLSX(path string, sheet string) (*xlsxRows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewStorageError("failed to open dataset", err).WithContext("path", path)
		}
		return nil, errors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", path)
	}

	return &xlsxRows{file: f, rows: rows}, nil
}

func (x *xlsxRows) Next() ([]string, int, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, x.line + 1, err
		}
		return nil, x.line, io.EOF
	}
	x.line++
	cols, err := x.rows.Columns()
	if err != nil {
		return nil, x.line, err
	}
	return cols, x.line, nil
}

func (x *xlsxRows) Close() error {
	x.rows.Close()
	return x.file.Close()
}
