package analytics_test

import (
	"fmt"

	"ecomdash/internal/analytics"
	"ecomdash/internal/dataprocessing"
	"ecomdash/pkg/contracts/domain"
)

func ExampleTop() {
	txs := []domain.Transaction{
		{Category: "A", Items: 5, Price: 100},
		{Category: "A", Items: 3, Price: 50},
		{Category: "B", Items: 1, Price: 10},
	}

	for _, row := range analytics.Top(dataprocessing.SummarizeRevenue(txs), analytics.SortByRevenue, 10) {
		fmt.Printf("%s %d %.0f\n", row.Category, row.Items, row.Revenue)
	}
	// Output:
	// A 8 150
	// B 1 10
}

func ExampleClassifyTiers() {
	rows := dataprocessing.SummarizeReviews([]domain.Transaction{
		{Category: "auto", Items: 1, Price: 10},
		{Category: "baby", Items: 2, Price: 10},
		{Category: "cool_stuff", Items: 3, Price: 10},
	})

	report := analytics.ClassifyTiers(rows)
	fmt.Printf("threshold %.2f\n", *report.Threshold)
	for _, c := range report.Categories {
		fmt.Println(c.Category, c.Tier)
	}
	// Output:
	// threshold 1.50
	// auto Low Sales
	// baby High Sales
	// cool_stuff High Sales
}
