// Package dataprocessing loads the joined e-commerce transactions file and
// aggregates it per product category.
//
// # Loading
//
// LoadTransactions is the explicit initialization step. It reads a CSV or XLSX
// file once, validates every row and returns a read-only Dataset:
//
//	ds, err := dataprocessing.LoadTransactions(ctx, "data/all_data.csv", dataprocessing.LoaderOptions{Logger: logger})
//	if err != nil {
//	    return err
//	}
//
// Rows without a category are skipped and counted. Malformed cells abort the
// load with an AppError of type PARSING carrying the line number.
//
// # Aggregation
//
// SummarizeRevenue and SummarizeReviews are pure functions over the loaded
// transactions:
//
//	revenue := dataprocessing.SummarizeRevenue(ds.Transactions)
//	reviews := dataprocessing.SummarizeReviews(ds.Transactions)
//
// Both return one row per distinct category in ascending label order, which is
// the tie-break order for every later stable sort.
package dataprocessing
