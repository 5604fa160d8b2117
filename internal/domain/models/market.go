package models

import "github.com/shopspring/decimal"

// MarketRecord represents one entry of the /coins/markets response.
//
// Only the fields needed by the report are decoded. Optional numeric fields use
// decimal.NullDecimal so that a JSON null (or an absent key) stays distinguishable
// from zero all the way to the spreadsheet.
//
// Fields:
//   - ID: CoinGecko coin id (e.g., "bitcoin"); used to identify the record in logs.
//   - Name: display name, required.
//   - Symbol: ticker, required.
//   - CurrentPrice: unit price in the reference currency.
//   - MarketCap: market capitalisation; may be null or zero for thinly tracked assets.
//   - TotalVolume: 24h traded volume.
//   - PriceChangePercent24h: signed 24h change; null when there is no prior-day price.
type MarketRecord struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name" validate:"required"`
	Symbol                string              `json:"symbol" validate:"required"`
	CurrentPrice          decimal.NullDecimal `json:"current_price" validate:"omitempty,gte=0"`
	MarketCap             decimal.NullDecimal `json:"market_cap" validate:"omitempty,gte=0"`
	TotalVolume           decimal.NullDecimal `json:"total_volume" validate:"omitempty,gte=0"`
	PriceChangePercent24h decimal.NullDecimal `json:"price_change_percentage_24h"`
}

// Identifier returns the best available handle for the record: id, then symbol.
// Empty when neither is set.
func (r MarketRecord) Identifier() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Symbol
}
