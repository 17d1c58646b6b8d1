package presenter

import (
	"errors"
	"fmt"
	"strings"

	"ecomdash/internal/analytics"
	"ecomdash/pkg/contracts/domain"
)

// ErrUnknownView is returned for a view that has no renderer
var ErrUnknownView = errors.New("unknown view")

// ViewKind is one of the dashboard's menu options
type ViewKind int

const (
	ViewOverview ViewKind = iota
	ViewPerformance
	ViewSalesReviews
)

type viewMeta struct {
	slug  string
	label string
}

var views = map[ViewKind]viewMeta{
	ViewOverview:     {slug: "overview", label: "Overview"},
	ViewPerformance:  {slug: "performance", label: "Top and Worst Performing Products"},
	ViewSalesReviews: {slug: "sales-reviews", label: "Sales and Review Scores Average"},
}

// AllViews returns every view in menu order
func AllViews() []ViewKind {
	return []ViewKind{ViewOverview, ViewPerformance, ViewSalesReviews}
}

// Slug is the URL-safe name of the view
func (v ViewKind) Slug() string {
	return views[v].slug
}

// Label is the menu text of the view
func (v ViewKind) Label() string {
	return views[v].label
}

func (v ViewKind) String() string {
	if m, ok := views[v]; ok {
		return m.label
	}
	return fmt.Sprintf("ViewKind(%d)", int(v))
}

// ParseViewKind accepts a slug or a menu label, case-insensitively
func ParseViewKind(s string) (ViewKind, error) {
	s = strings.TrimSpace(s)
	for _, v := range AllViews() {
		if strings.EqualFold(s, v.Slug()) || strings.EqualFold(s, v.Label()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

type renderFunc func(p *Presenter, revenue []domain.CategorySummary, reviews []domain.ReviewSummary) Page

var renderers = map[ViewKind]renderFunc{
	ViewOverview:     renderOverview,
	ViewPerformance:  renderPerformance,
	ViewSalesReviews: renderSalesReviews,
}

// Presenter renders summary rows into view pages. It holds no data and is
// safe for concurrent use.
type Presenter struct {
	topN int
}

// New creates a presenter showing TopN categories per best/worst chart
func New() *Presenter {
	return &Presenter{topN: TopN}
}

// Render builds the page of the given view
func (p *Presenter) Render(kind ViewKind, revenue []domain.CategorySummary, reviews []domain.ReviewSummary) (Page, error) {
	render, ok := renderers[kind]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownView, kind)
	}

	page := render(p, revenue, reviews)
	page.View = kind.Slug()
	page.Title = PageTitle
	return page, nil
}

func renderOverview(_ *Presenter, revenue []domain.CategorySummary, reviews []domain.ReviewSummary) Page {
	return Page{
		Header: headerOverview,
		Tables: []Table{
			revenueTable(titleTopRevenue, analytics.Sort(revenue, analytics.SortByRevenue, analytics.Descending)),
			revenueTable(titleWorstRevenue, analytics.Sort(revenue, analytics.SortByRevenue, analytics.Ascending)),
			reviewTable(titleWorstAndReview, analytics.Sort(reviews, analytics.SortByItems, analytics.Ascending)),
		},
	}
}

func renderPerformance(p *Presenter, revenue []domain.CategorySummary, _ []domain.ReviewSummary) Page {
	return Page{
		Header: headerPerformance,
		ChartGroups: []ChartGroup{
			{
				Title: groupRevenue,
				Charts: []Chart{
					barChart(titleTop10Revenue, analytics.Top(revenue, analytics.SortByRevenue, p.topN), analytics.SortByRevenue, false),
					barChart(titleBottom10Revenue, analytics.Bottom(revenue, analytics.SortByRevenue, p.topN), analytics.SortByRevenue, true),
				},
			},
			{
				Title: groupTotalSales,
				Charts: []Chart{
					barChart(titleTop10TotalSales, analytics.Top(revenue, analytics.SortByItems, p.topN), analytics.SortByItems, false),
					barChart(titleBottom10TotalSales, analytics.Bottom(revenue, analytics.SortByItems, p.topN), analytics.SortByItems, true),
				},
			},
		},
	}
}

func renderSalesReviews(_ *Presenter, _ []domain.CategorySummary, reviews []domain.ReviewSummary) Page {
	report := analytics.ClassifyTiers(reviews)

	threshold := noData
	if report.Threshold != nil {
		threshold = fmt.Sprintf(revenueFormat, *report.Threshold)
	}

	return Page{
		Header: headerSalesReviews,
		Charts: []Chart{scatterChart(report)},
		Stats: []Stat{
			{Label: statThreshold, Value: threshold},
			{Label: statLowSales, Value: fmt.Sprint(report.Count(domain.TierLowSales))},
			{Label: statHighSales, Value: fmt.Sprint(report.Count(domain.TierHighSales))},
		},
		Caption: Caption,
	}
}

func revenueTable(title string, rows []domain.CategorySummary) Table {
	t := Table{Title: title, Columns: revenueColumns, Rows: make([]TableRow, 0, len(rows))}
	for i, r := range rows {
		t.Rows = append(t.Rows, TableRow{
			Number: i + 1,
			Cells:  []string{r.Category, formatItems(r.Items), formatRevenue(r.Revenue)},
		})
	}
	return t
}

func reviewTable(title string, rows []domain.ReviewSummary) Table {
	t := Table{Title: title, Columns: reviewColumns, Rows: make([]TableRow, 0, len(rows))}
	for i, r := range rows {
		t.Rows = append(t.Rows, TableRow{
			Number: i + 1,
			Cells:  []string{r.Category, formatItems(r.Items), formatRevenue(r.Revenue), formatReview(r.MeanReview)},
		})
	}
	return t
}

func barChart(title string, rows []domain.CategorySummary, key analytics.SortKey, mirrored bool) Chart {
	c := Chart{Kind: ChartBar, Title: title, Mirrored: mirrored, Bars: make([]Bar, 0, len(rows))}
	for i, r := range rows {
		v := r.Revenue
		if key == analytics.SortByItems {
			v = float64(r.Items)
		}
		c.Bars = append(c.Bars, Bar{
			Label:   r.Category,
			Value:   v,
			Display: formatBarLabel(v),
			Color:   barColor(i),
		})
	}
	return c
}

// scatterChart plots items sold against mean review, one series per tier.
// Categories without a mean review have no point.
func scatterChart(report domain.TierReport) Chart {
	c := Chart{
		Kind:   ChartScatter,
		Title:  titleScatter,
		XLabel: labelItemsSold,
		YLabel: labelAvgReview,
		Legend: legendSalesTier,
		Series: []ScatterSeries{},
	}

	index := map[domain.SalesTier]int{}
	for _, cat := range report.Categories {
		if cat.MeanReview == nil {
			continue
		}
		i, ok := index[cat.Tier]
		if !ok {
			i = len(c.Series)
			index[cat.Tier] = i
			c.Series = append(c.Series, ScatterSeries{
				Name:   string(cat.Tier),
				Color:  seriesColor(i),
				Alpha:  ScatterAlpha,
				Points: []Point{},
			})
		}
		c.Series[i].Points = append(c.Series[i].Points, Point{
			Label: cat.Category,
			X:     float64(cat.Items),
			Y:     *cat.MeanReview,
		})
	}
	return c
}
