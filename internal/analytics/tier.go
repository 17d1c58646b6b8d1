package analytics

import (
	"math"
	"sort"

	"ecomdash/pkg/contracts/domain"
)

// TierPercentile is the item-count percentile separating Low from High Sales
const TierPercentile = 0.25

// Percentile returns the p-th percentile of values using linear interpolation
// between the closest ranks, on index p*(n-1) of the sorted values. p is
// clamped to [0, 1]. ok is false when values is empty.
func Percentile(values []float64, p float64) (float64, bool) {
	n := len(values)
	if n == 0 {
		return 0, false
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0], true
	}
	if p >= 1 {
		return sorted[n-1], true
	}

	index := p * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower], true
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight, true
}

// Classify labels an item count against the threshold
func Classify(items int64, threshold float64) domain.SalesTier {
	if float64(items) < threshold {
		return domain.TierLowSales
	}
	return domain.TierHighSales
}

// ClassifyTiers labels every row with its sales tier. The threshold is the
// TierPercentile of the rows' item counts. Rows keep their input order.
func ClassifyTiers(rows []domain.ReviewSummary) domain.TierReport {
	report := domain.TierReport{
		Percentile: TierPercentile,
		Categories: make([]domain.TieredCategory, 0, len(rows)),
	}

	items := make([]float64, len(rows))
	for i, r := range rows {
		items[i] = float64(r.Items)
	}

	threshold, ok := Percentile(items, TierPercentile)
	if !ok {
		return report
	}
	report.Threshold = &threshold

	for _, r := range rows {
		report.Categories = append(report.Categories, domain.TieredCategory{
			ReviewSummary: r,
			Tier:          Classify(r.Items, threshold),
		})
	}
	return report
}
