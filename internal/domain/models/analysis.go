package models

import "github.com/shopspring/decimal"

// NamedValue pairs an asset name with one of its figures (market cap, 24h change).
type NamedValue struct {
	Name  string
	Value decimal.Decimal
}

// AnalysisResult holds the statistics derived from a single RecordSet.
//
// Fields:
//   - RecordCount: number of records the statistics were computed from.
//   - TopByMarketCap: up to five assets, largest market cap first. Records
//     without a market cap are not ranked.
//   - AveragePrice: mean CurrentPrice over the records that carry one;
//     invalid when none does.
//   - HighestChange / LowestChange: extreme 24h change; nil when no record
//     carries a change value.
type AnalysisResult struct {
	RecordCount    int
	TopByMarketCap []NamedValue
	AveragePrice   decimal.NullDecimal
	HighestChange  *NamedValue
	LowestChange   *NamedValue
}
