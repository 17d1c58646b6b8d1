package presenter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomdash/internal/dataprocessing"
	"ecomdash/internal/shared/testutil"
	"ecomdash/pkg/contracts/domain"
)

func summaries(txs []domain.Transaction) ([]domain.CategorySummary, []domain.ReviewSummary) {
	return dataprocessing.SummarizeRevenue(txs), dataprocessing.SummarizeReviews(txs)
}

func TestEveryViewHasRenderer(t *testing.T) {
	require.Len(t, AllViews(), 3)
	for _, v := range AllViews() {
		_, ok := renderers[v]
		assert.True(t, ok, "view %s has no renderer", v)
		assert.NotEmpty(t, v.Slug())
		assert.NotEmpty(t, v.Label())
	}
	assert.Len(t, renderers, len(AllViews()))
}

func TestParseViewKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewKind
		wantErr bool
	}{
		{in: "overview", want: ViewOverview},
		{in: "Overview", want: ViewOverview},
		{in: "performance", want: ViewPerformance},
		{in: "Top and Worst Performing Products", want: ViewPerformance},
		{in: "sales-reviews", want: ViewSalesReviews},
		{in: " sales and review scores average ", want: ViewSalesReviews},
		{in: "pie", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseViewKind(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownView))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := New().Render(ViewKind(42), nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownView))
	assert.Contains(t, err.Error(), "ViewKind(42)")
}

func TestRender_Overview(t *testing.T) {
	revenue, reviews := summaries(testutil.SampleTransactions())

	page, err := New().Render(ViewOverview, revenue, reviews)
	require.NoError(t, err)

	assert.Equal(t, "overview", page.View)
	assert.Equal(t, PageTitle, page.Title)
	assert.Equal(t, "Overview", page.Header)
	require.Len(t, page.Tables, 3)

	top := page.Tables[0]
	assert.Equal(t, "Top Selling by Revenues", top.Title)
	assert.Equal(t, []string{"product_category_name_english", "order_item_id", "price"}, top.Columns)
	assert.Equal(t, []TableRow{
		{Number: 1, Cells: []string{"A", "8", "150.00"}},
		{Number: 2, Cells: []string{"B", "1", "10.00"}},
	}, top.Rows)

	worst := page.Tables[1]
	assert.Equal(t, "Worst Selling by Revenues", worst.Title)
	assert.Equal(t, "B", worst.Rows[0].Cells[0])
	assert.Equal(t, 1, worst.Rows[0].Number)

	withReviews := page.Tables[2]
	assert.Equal(t, "Worst Selling and Review Scores Average", withReviews.Title)
	assert.Len(t, withReviews.Columns, 4)
	assert.Equal(t, []string{"B", "1", "10.00", "no data"}, withReviews.Rows[0].Cells)
	assert.Equal(t, []string{"A", "8", "150.00", "4.0000"}, withReviews.Rows[1].Cells)

	assert.Empty(t, page.Caption)
}

func TestRender_Performance(t *testing.T) {
	revenue, reviews := summaries(testutil.GenerateTransactions(25))

	page, err := New().Render(ViewPerformance, revenue, reviews)
	require.NoError(t, err)

	assert.Equal(t, "Best & Worst Performing Product", page.Header)
	require.Len(t, page.ChartGroups, 2)
	assert.Equal(t, "Best and Worst Selling Product Categories by Revenues", page.ChartGroups[0].Title)
	assert.Equal(t, "Best and Worst Selling Product Categories by Total Sales", page.ChartGroups[1].Title)

	wantTitles := [][]string{
		{"Top 10 Product Categories by Revenues", "Bottom 10 Product Categories by Revenues"},
		{"Top 10 Product Categories by Total Sales", "Bottom 10 Product Categories by Total Sales"},
	}
	for g, group := range page.ChartGroups {
		require.Len(t, group.Charts, 2)
		for c, chart := range group.Charts {
			assert.Equal(t, wantTitles[g][c], chart.Title)
			assert.Equal(t, ChartBar, chart.Kind)
			assert.Equal(t, c == 1, chart.Mirrored)
			require.Len(t, chart.Bars, TopN)

			assert.Equal(t, HighlightColor, chart.Bars[0].Color)
			for _, bar := range chart.Bars[1:] {
				assert.Equal(t, MutedColor, bar.Color)
			}
		}
	}

	topRevenue := page.ChartGroups[0].Charts[0].Bars[0]
	assert.Equal(t, "cat_24", topRevenue.Label)
	assert.Equal(t, 250.0, topRevenue.Value)
	assert.Equal(t, "250", topRevenue.Display)

	bottomSales := page.ChartGroups[1].Charts[1].Bars[0]
	assert.Equal(t, "cat_00", bottomSales.Label)
	assert.Equal(t, "1", bottomSales.Display)
}

func TestRender_SalesReviews(t *testing.T) {
	txs := []domain.Transaction{
		{Category: "auto", Items: 1, Price: 10, ReviewScore: testutil.Score(2)},
		{Category: "baby", Items: 2, Price: 10, ReviewScore: testutil.Score(4)},
		{Category: "cool_stuff", Items: 3, Price: 10},
		{Category: "diapers", Items: 4, Price: 10, ReviewScore: testutil.Score(5)},
	}
	revenue, reviews := summaries(txs)

	page, err := New().Render(ViewSalesReviews, revenue, reviews)
	require.NoError(t, err)

	assert.Equal(t, "Sales and Review Scores Average", page.Header)
	assert.Equal(t, "Bangkit Academy 2024 H2", page.Caption)
	require.Len(t, page.Charts, 1)

	chart := page.Charts[0]
	assert.Equal(t, ChartScatter, chart.Kind)
	assert.Equal(t, "Sales vs. Review Scores (Low vs High Sales)", chart.Title)
	assert.Equal(t, "Total Number of Items Sold", chart.XLabel)
	assert.Equal(t, "Average Review Score", chart.YLabel)
	assert.Equal(t, "Sales Category", chart.Legend)

	// threshold is 1.75, so only auto is Low Sales
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "Low Sales", chart.Series[0].Name)
	assert.Equal(t, []Point{{Label: "auto", X: 1, Y: 2}}, chart.Series[0].Points)
	assert.Equal(t, "High Sales", chart.Series[1].Name)
	assert.Equal(t, []Point{{Label: "baby", X: 2, Y: 4}, {Label: "diapers", X: 4, Y: 5}}, chart.Series[1].Points)
	assert.NotEqual(t, chart.Series[0].Color, chart.Series[1].Color)
	assert.Equal(t, ScatterAlpha, chart.Series[0].Alpha)

	assert.Equal(t, []Stat{
		{Label: statThreshold, Value: "1.75"},
		{Label: statLowSales, Value: "1"},
		{Label: statHighSales, Value: "3"},
	}, page.Stats)
}

func TestRender_DegenerateInput(t *testing.T) {
	inputs := map[string][]domain.Transaction{
		"empty":          nil,
		"one category":   testutil.GenerateTransactions(1),
		"three":          testutil.GenerateTransactions(3),
		"no review data": {{Category: "toys", Items: 2, Price: 5}},
	}

	for name, txs := range inputs {
		t.Run(name, func(t *testing.T) {
			revenue, reviews := summaries(txs)
			for _, v := range AllViews() {
				var page Page
				var err error
				require.NotPanics(t, func() { page, err = New().Render(v, revenue, reviews) })
				require.NoError(t, err)

				_, err = json.Marshal(page)
				assert.NoError(t, err)
			}
		})
	}

	page, err := New().Render(ViewSalesReviews, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Charts[0].Series)
	assert.Equal(t, "no data", page.Stats[0].Value)

	page, err = New().Render(ViewPerformance, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, page.ChartGroups[0].Charts[0].Bars)
}
