package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tierLabel string

func (t tierLabel) String() string { return "tier:" + string(t) }

func TestFormatCell(t *testing.T) {
	score := 4.25
	var missing *float64

	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "string", input: "toys", expected: "toys"},
		{name: "int", input: 7, expected: "7"},
		{name: "int64", input: int64(-12), expected: "-12"},
		{name: "float padded to two decimals", input: 13.4, expected: "13.40"},
		{name: "float rounded", input: 1.005e3, expected: "1005.00"},
		{name: "float pointer", input: &score, expected: "4.25"},
		{name: "nil float pointer", input: missing, expected: ""},
		{name: "stringer", input: tierLabel("low"), expected: "tier:low"},
		{name: "fallback", input: true, expected: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatCell(tt.input))
		})
	}
}

func TestXLSXCell(t *testing.T) {
	score := 3.5
	var missing *float64

	assert.Equal(t, 3.5, xlsxCell(&score))
	assert.Nil(t, xlsxCell(missing))
	assert.Equal(t, int64(4), xlsxCell(int64(4)))
	assert.Equal(t, "tier:x", xlsxCell(tierLabel("x")))
}
