package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ecomdash/pkg/contracts/domain"
)

// DatasetHeader is the header row of a well-formed transactions file
var DatasetHeader = []string{
	domain.ColumnCategory,
	domain.ColumnItems,
	domain.ColumnPrice,
	domain.ColumnReviewScore,
}

// Score returns a pointer to a review score
func Score(v float64) *float64 {
	return &v
}

// SampleTransactions returns the three-row example dataset:
// A sells 5 and 3 items for 100 and 50, B sells 1 item for 10.
func SampleTransactions() []domain.Transaction {
	return []domain.Transaction{
		{Category: "A", Items: 5, Price: 100, ReviewScore: Score(5)},
		{Category: "A", Items: 3, Price: 50, ReviewScore: Score(3)},
		{Category: "B", Items: 1, Price: 10},
	}
}

// GenerateTransactions builds n categories named cat_00, cat_01, ... where
// category i sells i+1 items for a revenue of (i+1)*10. Every category gets
// two rows, one of which carries a review score.
func GenerateTransactions(n int) []domain.Transaction {
	txs := make([]domain.Transaction, 0, 2*n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("cat_%02d", i)
		txs = append(txs,
			domain.Transaction{Category: name, Items: int64(i + 1), Price: float64(i+1) * 4, ReviewScore: Score(float64(i%5 + 1))},
			domain.Transaction{Category: name, Items: 0, Price: float64(i+1) * 6},
		)
	}
	return txs
}

// WriteDatasetCSV writes header and rows to a CSV file in a test temp dir
// and returns its path.
func WriteDatasetCSV(t *testing.T, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "all_data.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create dataset fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if header != nil {
		if err := w.Write(header); err != nil {
			t.Fatalf("failed to write header: %v", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to write rows: %v", err)
	}

	return path
}

// TransactionRows converts transactions into CSV records in DatasetHeader order
func TransactionRows(txs []domain.Transaction) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		score := ""
		if tx.ReviewScore != nil {
			score = fmt.Sprintf("%g", *tx.ReviewScore)
		}
		rows = append(rows, []string{
			tx.Category,
			fmt.Sprintf("%d", tx.Items),
			fmt.Sprintf("%g", tx.Price),
			score,
		})
	}
	return rows
}
