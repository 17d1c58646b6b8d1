package dataprocessing

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecomdash/internal/errors"
	"ecomdash/internal/shared/testutil"
	"ecomdash/pkg/contracts/domain"
)

func TestLoadTransactions_CSV(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)

	path := testutil.WriteDatasetCSV(t,
		[]string{"\ufeff" + domain.ColumnCategory, "order_id", domain.ColumnItems, domain.ColumnPrice, domain.ColumnReviewScore},
		[][]string{
			{"bed_bath_table", "o1", "1", "59.90", "5"},
			{"bed_bath_table", "o2", "2.0", "30", ""},
			{"", "o3", "1", "10", "4"},
			{"toys", "o4", "", "", "3"},
			{" health_beauty ", "o5", "1", "129.99", "nan"},
		},
	)

	ds, err := LoadTransactions(context.Background(), path, LoaderOptions{Logger: logger})
	require.NoError(t, err)

	assert.Equal(t, path, ds.Source)
	assert.Equal(t, formatCSV, ds.Format)
	assert.Equal(t, 5, ds.RowsRead)
	assert.Equal(t, 1, ds.SkippedRows)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 3, ds.Categories())
	assert.False(t, ds.LoadedAt.IsZero())

	want := []domain.Transaction{
		{Category: "bed_bath_table", Items: 1, Price: 59.90, ReviewScore: testutil.Score(5)},
		{Category: "bed_bath_table", Items: 2, Price: 30},
		{Category: "toys", Items: 0, Price: 0, ReviewScore: testutil.Score(3)},
		{Category: " health_beauty ", Items: 1, Price: 129.99},
	}
	assert.Equal(t, want, ds.Transactions)

	testutil.AssertNoErrors(t, logs)
	testutil.AssertLogContains(t, logs, slog.LevelInfo, "dataset loaded")
	testutil.AssertLogAttr(t, logs, "rows_skipped", int64(1))
	testutil.AssertLogAttr(t, logs, "component", "loader")
}

func TestLoadTransactions_Errors(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		wantType errors.ErrorType
		wantLine int
		wantMsg  string
	}{
		{
			name:     "missing column",
			header:   []string{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice},
			rows:     [][]string{{"toys", "1", "10"}},
			wantType: errors.ErrTypeParsing,
			wantMsg:  "missing required columns: review_score",
		},
		{
			name:     "empty file",
			wantType: errors.ErrTypeParsing,
			wantMsg:  "header row is missing",
		},
		{
			name:     "malformed price",
			header:   testutil.DatasetHeader,
			rows:     [][]string{{"toys", "1", "10", "5"}, {"toys", "1", "ten", "5"}},
			wantType: errors.ErrTypeParsing,
			wantLine: 3,
			wantMsg:  "malformed row on line 3",
		},
		{
			name:     "fractional item count",
			header:   testutil.DatasetHeader,
			rows:     [][]string{{"toys", "1.5", "10", "5"}},
			wantType: errors.ErrTypeParsing,
			wantLine: 2,
			wantMsg:  "not an integer",
		},
		{
			name:     "negative price",
			header:   testutil.DatasetHeader,
			rows:     [][]string{{"toys", "1", "-3", "5"}},
			wantType: errors.ErrTypeParsing,
			wantLine: 2,
			wantMsg:  "invalid row on line 2",
		},
		{
			name:     "review out of range",
			header:   testutil.DatasetHeader,
			rows:     [][]string{{"toys", "1", "3", "4"}, {"toys", "1", "3", "3"}, {"toys", "1", "3", "6"}},
			wantType: errors.ErrTypeParsing,
			wantLine: 4,
			wantMsg:  "invalid row on line 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteDatasetCSV(t, tt.header, tt.rows)

			ds, err := LoadTransactions(context.Background(), path, LoaderOptions{})
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			if tt.wantLine > 0 {
				var appErr *errors.AppError
				require.True(t, stderrors.As(err, &appErr))
				assert.Equal(t, tt.wantLine, appErr.Context["line"])
			}
		})
	}
}

func TestLoadTransactions_CategoryLabelsExact(t *testing.T) {
	path := testutil.WriteDatasetCSV(t, testutil.DatasetHeader, [][]string{
		{"toys", "1", "10", "5"},
		{" toys ", "1", "20", "4"},
		{"   ", "1", "30", "3"},
	})

	ds, err := LoadTransactions(context.Background(), path, LoaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.SkippedRows)
	assert.Equal(t, 2, ds.Categories())

	assert.Equal(t, []domain.CategorySummary{
		{Category: " toys ", Items: 1, Revenue: 20},
		{Category: "toys", Items: 1, Revenue: 10},
	}, SummarizeRevenue(ds.Transactions))
}

func TestLoadTransactions_MissingFile(t *testing.T) {
	_, err := LoadTransactions(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), LoaderOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
}

func TestLoadTransactions_UnsupportedFormat(t *testing.T) {
	_, err := LoadTransactions(context.Background(), "data/all_data.json", LoaderOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	assert.Contains(t, err.Error(), `unsupported dataset format ".json"`)
}

func writeXLSX(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	path := filepath.Join(t.TempDir(), "all_data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadTransactions_XLSX(t *testing.T) {
	rows := [][]interface{}{
		{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice, domain.ColumnReviewScore},
		{"toys", 2, 20.5, 4},
		{"toys", 1, 9.5},
		{"garden_tools", 3, 60, 1},
	}

	t.Run("first sheet", func(t *testing.T) {
		path := writeXLSX(t, "Sheet1", rows)

		ds, err := LoadTransactions(context.Background(), path, LoaderOptions{})
		require.NoError(t, err)
		assert.Equal(t, formatXLSX, ds.Format)
		require.Equal(t, 3, ds.Len())
		assert.Equal(t, domain.Transaction{Category: "toys", Items: 2, Price: 20.5, ReviewScore: testutil.Score(4)}, ds.Transactions[0])
		assert.Nil(t, ds.Transactions[1].ReviewScore)
		assert.Equal(t, 2, ds.Categories())
	})

	t.Run("named sheet", func(t *testing.T) {
		path := writeXLSX(t, "transactions", rows)

		ds, err := LoadTransactions(context.Background(), path, LoaderOptions{Sheet: "transactions"})
		require.NoError(t, err)
		assert.Equal(t, 3, ds.Len())
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := writeXLSX(t, "Sheet1", rows)

		_, err := LoadTransactions(context.Background(), path, LoaderOptions{Sheet: "missing"})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})
}

func TestLoadTransactions_FeedsAggregation(t *testing.T) {
	txs := testutil.SampleTransactions()
	path := testutil.WriteDatasetCSV(t, testutil.DatasetHeader, testutil.TransactionRows(txs))

	ds, err := LoadTransactions(context.Background(), path, LoaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, txs, ds.Transactions)

	assert.Equal(t, []domain.CategorySummary{
		{Category: "A", Items: 8, Revenue: 150},
		{Category: "B", Items: 1, Revenue: 10},
	}, SummarizeRevenue(ds.Transactions))
}

func TestParseItems(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "NaN", want: 0},
		{in: "3", want: 3},
		{in: "3.0", want: 3},
		{in: "1e1", want: 10},
		{in: "2.25", wantErr: true},
		{in: "two", wantErr: true},
		{in: "-1", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseItems(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatasetNil(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, 0, ds.Categories())
}
