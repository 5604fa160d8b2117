// Package report turns analysis results into a rendering-independent document.
package report

import (
	"fmt"

	"github.com/guttosm/cryptoreport/internal/domain/models"
	"github.com/guttosm/cryptoreport/internal/service"
)

// Section labels, in document order.
const (
	LabelTitle      = "title"
	LabelTopHeading = "top.heading"
	LabelTopItem    = "top.item"
	LabelAverage    = "average"
	LabelHighest    = "change.highest"
	LabelLowest     = "change.lowest"
)

const (
	Title = "Cryptocurrency Market Analysis Report"

	gapLarge = 10
	gapSmall = 5
)

// Compose builds the report for res.
//
// Order: title, top market caps (heading + one line per asset), average
// price, highest change, lowest change. Lines whose value is undefined
// (no market cap, no price, no change data) are left out rather than rendered empty.
func Compose(res *models.AnalysisResult) models.Document {
	sections := []models.Section{
		{Label: LabelTitle, Style: models.StyleTitle, Text: Title, SpaceAfter: gapLarge},
	}

	if len(res.TopByMarketCap) > 0 {
		sections = append(sections, models.Section{
			Label:      LabelTopHeading,
			Text:       fmt.Sprintf("Top %d Cryptocurrencies by Market Cap:", service.TopK),
			SpaceAfter: gapSmall,
		})
	}

	for i, nv := range res.TopByMarketCap {
		s := models.Section{Label: LabelTopItem, Text: fmt.Sprintf("%s: $%s", nv.Name, FormatMoney(nv.Value, 0))}
		if i == len(res.TopByMarketCap)-1 {
			s.SpaceAfter = gapLarge
		}
		sections = append(sections, s)
	}

	if res.AveragePrice.Valid {
		sections = append(sections, models.Section{
			Label:      LabelAverage,
			Text:       fmt.Sprintf("Average Price of Top %d Cryptocurrencies: $%s", res.RecordCount, FormatMoney(res.AveragePrice.Decimal, 2)),
			SpaceAfter: gapLarge,
		})
	}

	if res.HighestChange != nil {
		sections = append(sections, models.Section{
			Label: LabelHighest,
			Text:  fmt.Sprintf("Highest 24h Price Change: %s (%s)", res.HighestChange.Name, FormatPercent(res.HighestChange.Value)),
		})
	}
	if res.LowestChange != nil {
		sections = append(sections, models.Section{
			Label: LabelLowest,
			Text:  fmt.Sprintf("Lowest 24h Price Change: %s (%s)", res.LowestChange.Name, FormatPercent(res.LowestChange.Value)),
		})
	}

	return models.Document{Sections: sections}
}
