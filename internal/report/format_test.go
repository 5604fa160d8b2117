package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney_TableDriven(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		want   string
	}{
		{"0", 0, "0"},
		{"999", 0, "999"},
		{"1000", 0, "1,000"},
		{"1324000000000", 0, "1,324,000,000,000"},
		{"1324000000000.6", 0, "1,324,000,000,001"},
		{"67234.125", 2, "67,234.13"},
		{"0.5", 2, "0.50"},
		{"15", 2, "15.00"},
		{"-1234.5", 2, "-1,234.50"},
		{"-0.001", 2, "0.00"},
		{"123456789012345678901234", 0, "123,456,789,012,345,678,901,234"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatMoney(decimal.RequireFromString(tc.in), tc.places))
		})
	}
}

func TestFormatPercent_TableDriven(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.345", "12.35%"},
		{"-8.2", "-8.20%"},
		{"0", "0.00%"},
		{"-0.004", "0.00%"},
		{"1234.5", "1234.50%"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPercent(decimal.RequireFromString(tc.in)))
		})
	}
}
