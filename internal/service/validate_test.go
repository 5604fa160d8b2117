package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cryptoreport/internal/domain/errs"
	"github.com/guttosm/cryptoreport/internal/domain/models"
)

func TestValidateRecords_TableDriven(t *testing.T) {
	valid := models.MarketRecord{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", CurrentPrice: dec(1), MarketCap: dec(2), TotalVolume: dec(3), PriceChangePercent24h: dec(-4)}

	cases := []struct {
		name      string
		records   []models.MarketRecord
		wantField string
		wantRule  string
		wantIdx   int
		wantID    string
	}{
		{name: "all valid", records: []models.MarketRecord{valid, valid}},
		{name: "nulls are fine", records: []models.MarketRecord{{ID: "x", Name: "X", Symbol: "x"}}},
		{
			name:      "missing name",
			records:   []models.MarketRecord{valid, {ID: "ghost", Symbol: "gh"}},
			wantField: "Name", wantRule: "required", wantIdx: 1, wantID: "ghost",
		},
		{
			name:      "missing symbol falls back to name",
			records:   []models.MarketRecord{{Name: "Nameless"}},
			wantField: "Symbol", wantRule: "required", wantIdx: 0, wantID: "Nameless",
		},
		{
			name:      "no identifier at all",
			records:   []models.MarketRecord{valid, valid, {}},
			wantField: "Name", wantRule: "required", wantIdx: 2, wantID: "#2",
		},
		{
			name:      "negative price",
			records:   []models.MarketRecord{{ID: "neg", Name: "Neg", Symbol: "neg", CurrentPrice: dec(-1)}},
			wantField: "CurrentPrice", wantRule: "gte", wantIdx: 0, wantID: "neg",
		},
		{
			name:      "negative volume",
			records:   []models.MarketRecord{{ID: "vol", Name: "Vol", Symbol: "vol", TotalVolume: dec(-0.5)}},
			wantField: "TotalVolume", wantRule: "gte", wantIdx: 0, wantID: "vol",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRecords(tc.records)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var mre *errs.MalformedRecordError
			require.True(t, errors.As(err, &mre), "expected MalformedRecordError, got %v", err)
			assert.Equal(t, tc.wantField, mre.Field)
			assert.Equal(t, tc.wantRule, mre.Rule)
			assert.Equal(t, tc.wantIdx, mre.Index)
			assert.Equal(t, tc.wantID, mre.Identifier)
		})
	}
}
