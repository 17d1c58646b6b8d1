package domain

// SalesTier classifies a category against the item-count threshold.
type SalesTier string

const (
	TierLowSales  SalesTier = "Low Sales"
	TierHighSales SalesTier = "High Sales"
)

// CategorySummary is one row of the revenue summary.
type CategorySummary struct {
	Category string  `json:"category"`
	Items    int64   `json:"items"`
	Revenue  float64 `json:"revenue"`
}

// Totals returns the aggregated row. Types embedding CategorySummary inherit it,
// which lets rankings work on any summary row.
func (c CategorySummary) Totals() CategorySummary {
	return c
}

// ReviewSummary extends the revenue summary with the mean review score.
// MeanReview is nil when no transaction of the category was reviewed.
type ReviewSummary struct {
	CategorySummary
	MeanReview  *float64 `json:"mean_review_score"`
	ReviewCount int      `json:"review_count"`
}

// HasReview reports whether a mean review score is defined for the category.
func (r ReviewSummary) HasReview() bool {
	return r.MeanReview != nil
}

// TieredCategory is a review summary row labelled with its sales tier.
type TieredCategory struct {
	ReviewSummary
	Tier SalesTier `json:"sales_category"`
}

// TierReport is the result of classifying every category into a sales tier.
// Threshold is nil when there were no categories to classify.
type TierReport struct {
	Percentile float64          `json:"percentile"`
	Threshold  *float64         `json:"threshold"`
	Categories []TieredCategory `json:"categories"`
}

// Count returns the number of categories labelled with the given tier.
func (r TierReport) Count(tier SalesTier) int {
	n := 0
	for _, c := range r.Categories {
		if c.Tier == tier {
			n++
		}
	}
	return n
}
