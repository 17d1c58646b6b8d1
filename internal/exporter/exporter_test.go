package exporter

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecomdash/internal/analytics"
	"ecomdash/internal/dataprocessing"
	"ecomdash/internal/errors"
	"ecomdash/internal/shared/testutil"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestParseSummary(t *testing.T) {
	for _, s := range SupportedSummaries {
		got, err := ParseSummary(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseSummary("orders")
	assert.Error(t, err)

	assert.Equal(t, "reviews_summary.xlsx", Filename(SummaryReviews, FormatXLSX))
}

func TestExport_CSV(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	exp := New(logger)

	txs := testutil.SampleTransactions()

	t.Run("categories", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exp.Export(&buf, FormatCSV, CategorySheet(dataprocessing.SummarizeRevenue(txs))))

		require.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
		records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"product_category_name_english", "order_item_id", "price"},
			{"A", "8", "150.00"},
			{"B", "1", "10.00"},
		}, records)
	})

	t.Run("reviews leave undefined mean empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, exp.Export(&buf, FormatCSV, ReviewSheet(dataprocessing.SummarizeReviews(txs))))

		records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"A", "8", "150.00", "4.00", "2"}, records[1])
		assert.Equal(t, []string{"B", "1", "10.00", "", "0"}, records[2])
	})

	t.Run("tiers", func(t *testing.T) {
		var buf bytes.Buffer
		report := analytics.ClassifyTiers(dataprocessing.SummarizeReviews(txs))
		require.NoError(t, exp.Export(&buf, FormatCSV, TierSheet(report)))

		records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "sales_category", records[0][4])
		assert.Equal(t, "High Sales", records[1][4])
		assert.Equal(t, "Low Sales", records[2][4])
	})

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "export written")
	testutil.AssertLogAttr(t, logs, "component", "exporter")
}

func TestExport_XLSX(t *testing.T) {
	exp := New(nil)
	rows := dataprocessing.SummarizeReviews(testutil.SampleTransactions())

	var buf bytes.Buffer
	require.NoError(t, exp.Export(&buf, FormatXLSX, ReviewSheet(rows)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"reviews"}, f.GetSheetList())

	got, err := f.GetRows("reviews")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"product_category_name_english", "order_item_id", "price", "review_score", "review_count"}, got[0])
	assert.Equal(t, []string{"A", "8", "150", "4", "2"}, got[1])
	assert.Equal(t, "B", got[2][0])
	assert.Equal(t, "", got[2][3])
}

func TestExport_Errors(t *testing.T) {
	exp := New(nil)

	err := exp.Export(&bytes.Buffer{}, Format("pdf"), CategorySheet(nil))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeExport))

	err = exp.Export(failingWriter{}, FormatCSV, CategorySheet(nil))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeExport))
	assert.Contains(t, err.Error(), "failed to export categories as csv")
}
