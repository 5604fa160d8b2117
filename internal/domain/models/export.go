package models

import "github.com/shopspring/decimal"

// ExportColumns is the fixed header of the spreadsheet, in column order.
var ExportColumns = []string{
	"Name",
	"Symbol",
	"Current Price (USD)",
	"Market Cap",
	"24h Volume",
	"24h Price Change (%)",
}

// ExportRow is one spreadsheet row. Column order matches ExportColumns.
type ExportRow struct {
	Name                  string
	Symbol                string
	CurrentPrice          decimal.NullDecimal
	MarketCap             decimal.NullDecimal
	TotalVolume           decimal.NullDecimal
	PriceChangePercent24h decimal.NullDecimal
}

// Cells returns the row as spreadsheet cell values. Null decimals become nil
// so the sink writes an empty cell instead of a zero.
func (r ExportRow) Cells() []any {
	return []any{
		r.Name,
		r.Symbol,
		cell(r.CurrentPrice),
		cell(r.MarketCap),
		cell(r.TotalVolume),
		cell(r.PriceChangePercent24h),
	}
}

func cell(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

// ExportTable is the tabular projection of a RecordSet.
type ExportTable struct {
	Columns []string
	Rows    []ExportRow
}
