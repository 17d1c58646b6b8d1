package domain

// Source column names of the joined transactions dataset.
const (
	ColumnCategory    = "product_category_name_english"
	ColumnItems       = "order_item_id"
	ColumnPrice       = "price"
	ColumnReviewScore = "review_score"
)

// RequiredColumns lists the header names a dataset must carry.
var RequiredColumns = []string{ColumnCategory, ColumnItems, ColumnPrice, ColumnReviewScore}

// Transaction is one row of the joined e-commerce dataset.
//
// Items holds the order_item_id value of the row. Summed per category it gives
// the number of items sold. ReviewScore is nil when the row carries no review.
type Transaction struct {
	Category    string   `json:"category" validate:"required"`
	Items       int64    `json:"items" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
	ReviewScore *float64 `json:"review_score,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// HasReview reports whether the row carries a review score.
func (t Transaction) HasReview() bool {
	return t.ReviewScore != nil
}
