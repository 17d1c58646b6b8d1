package dataprocessing

import (
	"sort"

	"ecomdash/pkg/contracts/domain"
)

// categoryTotals accumulates one group of the per-category aggregation
type categoryTotals struct {
	items       int64
	revenue     float64
	reviewSum   float64
	reviewCount int
}

// groupByCategory sums transactions per category label and returns the labels
// in ascending order together with their totals.
func groupByCategory(txs []domain.Transaction) ([]string, map[string]*categoryTotals) {
	groups := make(map[string]*categoryTotals)
	for _, tx := range txs {
		if tx.Category == "" {
			continue
		}
		g, ok := groups[tx.Category]
		if !ok {
			g = &categoryTotals{}
			groups[tx.Category] = g
		}
		g.items += tx.Items
		g.revenue += tx.Price
		if tx.ReviewScore != nil {
			g.reviewSum += *tx.ReviewScore
			g.reviewCount++
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, groups
}

// SummarizeRevenue returns one row per category with the summed item count and
// revenue, ordered by category.
func SummarizeRevenue(txs []domain.Transaction) []domain.CategorySummary {
	keys, groups := groupByCategory(txs)

	out := make([]domain.CategorySummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, domain.CategorySummary{
			Category: k,
			Items:    g.items,
			Revenue:  g.revenue,
		})
	}
	return out
}

// SummarizeReviews is SummarizeRevenue plus the mean review score of each
// category. Rows without a score are left out of the mean; a category with no
// scored row has a nil MeanReview.
func SummarizeReviews(txs []domain.Transaction) []domain.ReviewSummary {
	keys, groups := groupByCategory(txs)

	out := make([]domain.ReviewSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		row := domain.ReviewSummary{
			CategorySummary: domain.CategorySummary{
				Category: k,
				Items:    g.items,
				Revenue:  g.revenue,
			},
			ReviewCount: g.reviewCount,
		}
		if g.reviewCount > 0 {
			mean := g.reviewSum / float64(g.reviewCount)
			row.MeanReview = &mean
		}
		out = append(out, row)
	}
	return out
}
