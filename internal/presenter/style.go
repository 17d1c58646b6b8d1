package presenter

import (
	"fmt"
	"strconv"

	"ecomdash/pkg/contracts/domain"
)

const (
	PageTitle     = "E-Commerce Data Analysis Dashboard"
	SidebarTitle  = "Dashboard Options"
	SelectorLabel = "Choose Options"
	Caption       = "Bangkit Academy 2024 H2"

	// TopN is the number of categories in each best/worst chart
	TopN = 10

	HighlightColor = "#72BCD4"
	MutedColor     = "#D3D3D3"
	ScatterAlpha   = 0.7

	barLabelFormat = "%.0f"
	revenueFormat  = "%.2f"
	reviewFormat   = "%.4f"
	noData         = "no data"
)

// Overview
const (
	headerOverview      = "Overview"
	titleTopRevenue     = "Top Selling by Revenues"
	titleWorstRevenue   = "Worst Selling by Revenues"
	titleWorstAndReview = "Worst Selling and Review Scores Average"
)

// Top and Worst Performing Products
const (
	headerPerformance       = "Best & Worst Performing Product"
	groupRevenue            = "Best and Worst Selling Product Categories by Revenues"
	titleTop10Revenue       = "Top 10 Product Categories by Revenues"
	titleBottom10Revenue    = "Bottom 10 Product Categories by Revenues"
	groupTotalSales         = "Best and Worst Selling Product Categories by Total Sales"
	titleTop10TotalSales    = "Top 10 Product Categories by Total Sales"
	titleBottom10TotalSales = "Bottom 10 Product Categories by Total Sales"
)

// Sales and Review Scores Average
const (
	headerSalesReviews = "Sales and Review Scores Average"
	titleScatter       = "Sales vs. Review Scores (Low vs High Sales)"
	labelItemsSold     = "Total Number of Items Sold"
	labelAvgReview     = "Average Review Score"
	legendSalesTier    = "Sales Category"
	statThreshold      = "Low Sales threshold (25th percentile of items sold)"
	statLowSales       = "Low Sales categories"
	statHighSales      = "High Sales categories"
)

// coolwarm holds the two ends of the coolwarm palette, assigned to scatter
// series in order of first appearance
var coolwarm = []string{"#6788EE", "#DD6853"}

var (
	revenueColumns = []string{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice}
	reviewColumns  = []string{domain.ColumnCategory, domain.ColumnItems, domain.ColumnPrice, domain.ColumnReviewScore}
)

// barColor highlights the first bar of a chart
func barColor(i int) string {
	if i == 0 {
		return HighlightColor
	}
	return MutedColor
}

func seriesColor(i int) string {
	return coolwarm[i%len(coolwarm)]
}

func formatItems(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatRevenue(v float64) string {
	return fmt.Sprintf(revenueFormat, v)
}

func formatBarLabel(v float64) string {
	return fmt.Sprintf(barLabelFormat, v)
}

// formatReview renders a mean review score, or "no data" when undefined
func formatReview(v *float64) string {
	if v == nil {
		return noData
	}
	return fmt.Sprintf(reviewFormat, *v)
}
