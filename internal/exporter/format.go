package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// formatCell renders one typed sheet cell as CSV text. nil and nil pointers
// become empty cells.
func formatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case int64:
		return formatInt(c)
	case float64:
		return formatFloat(c)
	case *float64:
		if c == nil {
			return ""
		}
		return formatFloat(*c)
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}

// xlsxCell converts a sheet cell to a value excelize writes natively
func xlsxCell(v interface{}) interface{} {
	switch c := v.(type) {
	case *float64:
		if c == nil {
			return nil
		}
		return *c
	case fmt.Stringer:
		return c.String()
	default:
		return c
	}
}
