// Package service holds the analysis side of a report run: record validation
// and the statistics computed over one RecordSet.
package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptoreport/internal/domain/errs"
	"github.com/guttosm/cryptoreport/internal/domain/models"
)

// TopK is the length of the market-cap ranking.
const TopK = 5

// Aggregate computes the AnalysisResult for records.
//
// Behavior:
//   - Returns errs.ErrEmptyInput when records is empty; no statistic is computed.
//   - Does not modify records.
//
// Records are expected to have passed ValidateRecords.
func Aggregate(records []models.MarketRecord) (*models.AnalysisResult, error) {
	if len(records) == 0 {
		return nil, errs.ErrEmptyInput
	}

	return &models.AnalysisResult{
		RecordCount:    len(records),
		TopByMarketCap: TopByMarketCap(records, TopK),
		AveragePrice:   AveragePrice(records),
		HighestChange:  HighestChange(records),
		LowestChange:   LowestChange(records),
	}, nil
}

// TopByMarketCap returns up to k (name, market cap) pairs, largest first.
// Records without a market cap are not ranked; equal caps keep source order.
func TopByMarketCap(records []models.MarketRecord, k int) []models.NamedValue {
	ranked := make([]models.NamedValue, 0, len(records))
	for _, r := range records {
		if !r.MarketCap.Valid {
			continue
		}
		ranked = append(ranked, models.NamedValue{Name: r.Name, Value: r.MarketCap.Decimal})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value.GreaterThan(ranked[j].Value)
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// AveragePrice returns the mean CurrentPrice over the records that carry one.
// The result is invalid when no record has a price.
func AveragePrice(records []models.MarketRecord) decimal.NullDecimal {
	sum := decimal.Zero
	n := int64(0)
	for _, r := range records {
		if !r.CurrentPrice.Valid {
			continue
		}
		sum = sum.Add(r.CurrentPrice.Decimal)
		n++
	}
	if n == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(n)))
}

// HighestChange returns the record with the largest 24h change, or nil when no
// record carries one. The first record reaching the maximum wins.
func HighestChange(records []models.MarketRecord) *models.NamedValue {
	return extremeChange(records, func(candidate, best decimal.Decimal) bool {
		return candidate.GreaterThan(best)
	})
}

// LowestChange is the minimum counterpart of HighestChange.
func LowestChange(records []models.MarketRecord) *models.NamedValue {
	return extremeChange(records, func(candidate, best decimal.Decimal) bool {
		return candidate.LessThan(best)
	})
}

// extremeChange scans records once; better reports whether candidate strictly
// beats the current best, so ties keep the earlier record.
func extremeChange(records []models.MarketRecord, better func(candidate, best decimal.Decimal) bool) *models.NamedValue {
	var best *models.NamedValue
	for _, r := range records {
		if !r.PriceChangePercent24h.Valid {
			continue
		}
		if best == nil || better(r.PriceChangePercent24h.Decimal, best.Value) {
			best = &models.NamedValue{Name: r.Name, Value: r.PriceChangePercent24h.Decimal}
		}
	}
	return best
}
