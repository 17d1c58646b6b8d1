package analytics

import (
	"fmt"
	"sort"
	"strings"

	"ecomdash/pkg/contracts/domain"
)

// SortKey names the measure a ranking orders by
type SortKey string

const (
	SortByRevenue SortKey = "revenue"
	SortByItems   SortKey = "items"
)

// SortKeys lists every supported sort key
var SortKeys = []SortKey{SortByRevenue, SortByItems}

// ParseSortKey parses a sort key, case-insensitively
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByRevenue:
		return SortByRevenue, nil
	case SortByItems:
		return SortByItems, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// Direction is the order of a ranking
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection parses a direction, case-insensitively
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// Measured is implemented by every summary row type
type Measured interface {
	Totals() domain.CategorySummary
}

func (k SortKey) value(m Measured) float64 {
	t := m.Totals()
	if k == SortByItems {
		return float64(t.Items)
	}
	return t.Revenue
}

// Sort returns a copy of rows ordered by key. The sort is stable.
func Sort[T Measured](rows []T, key SortKey, dir Direction) []T {
	out := make([]T, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := key.value(out[i]), key.value(out[j])
		if dir == Descending {
			return a > b
		}
		return a < b
	})
	return out
}

// Top returns the n rows with the highest value of key, highest first
func Top[T Measured](rows []T, key SortKey, n int) []T {
	desc := Sort(rows, key, Descending)
	return desc[:clamp(n, len(desc))]
}

// Bottom returns the n rows with the lowest value of key, lowest first.
// It is cut from the same descending order as Top, so Top and Bottom never
// share a row while len(rows) >= 2n. Among tied values Bottom therefore holds
// the rows latest in grouping order, which can differ from the head of
// Sort(rows, key, Ascending).
func Bottom[T Measured](rows []T, key SortKey, n int) []T {
	desc := Sort(rows, key, Descending)
	tail := desc[len(desc)-clamp(n, len(desc)):]
	return Sort(tail, key, Ascending)
}

// Limit returns at most n rows. n <= 0 means no limit.
func Limit[T any](rows []T, n int) []T {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func clamp(n, size int) int {
	if n < 0 {
		return 0
	}
	if n > size {
		return size
	}
	return n
}
