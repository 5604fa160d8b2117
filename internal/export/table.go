// Package export projects a RecordSet onto the fixed spreadsheet layout.
package export

import "github.com/guttosm/cryptoreport/internal/domain/models"

// Project maps records onto an ExportTable with the columns of
// models.ExportColumns. Rows keep the order and count of records; nulls are
// passed through untouched and the record id is dropped.
func Project(records []models.MarketRecord) models.ExportTable {
	cols := make([]string, len(models.ExportColumns))
	copy(cols, models.ExportColumns)

	rows := make([]models.ExportRow, len(records))
	for i, r := range records {
		rows[i] = models.ExportRow{
			Name:                  r.Name,
			Symbol:                r.Symbol,
			CurrentPrice:          r.CurrentPrice,
			MarketCap:             r.MarketCap,
			TotalVolume:           r.TotalVolume,
			PriceChangePercent24h: r.PriceChangePercent24h,
		}
	}

	return models.ExportTable{Columns: cols, Rows: rows}
}
