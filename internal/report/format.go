package report

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders d with thousands separators and exactly places decimals,
// rounding half away from zero: FormatMoney(1234567.891, 2) == "1,234,567.89".
func FormatMoney(d decimal.Decimal, places int32) string {
	fixed := d.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")

	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return fixed
	}

	out := humanize.BigComma(n)
	if frac != "" {
		out += "." + frac
	}
	if d.IsNegative() && !d.Round(places).IsZero() {
		out = "-" + out
	}
	return out
}

// FormatPercent renders d with two decimals and a trailing "%". Only negative
// values carry a sign.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
