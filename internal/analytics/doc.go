// Package analytics ranks and classifies per-category summary rows.
//
// Rankings are stable: rows with equal values keep the order they had on
// input, which for aggregator output is ascending category label.
//
//   - rank.go: sort keys, directions, stable sort and top/bottom selection
//   - tier.go: percentile threshold and Low/High Sales classification
package analytics
