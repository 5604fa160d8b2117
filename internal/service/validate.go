package service

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptoreport/internal/domain/errs"
	"github.com/guttosm/cryptoreport/internal/domain/models"
)

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	// NullDecimal is validated as its float value; a null is treated as absent
	// so "omitempty" skips it.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.InexactFloat64()
		}
		return nil
	}, decimal.NullDecimal{})
	return v
}

// ValidateRecords checks every record against the struct-tag rules of
// models.MarketRecord: name and symbol are required and present prices,
// market caps and volumes are non-negative.
//
// Returns a *errs.MalformedRecordError for the first offending record.
func ValidateRecords(records []models.MarketRecord) error {
	for i := range records {
		err := recordValidator.Struct(&records[i])
		if err == nil {
			continue
		}

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return fmt.Errorf("validate record %d: %w", i, err)
		}
		return &errs.MalformedRecordError{
			Index:      i,
			Identifier: identifier(records[i], i),
			Field:      verrs[0].Field(),
			Rule:       verrs[0].Tag(),
		}
	}
	return nil
}

func identifier(r models.MarketRecord, idx int) string {
	if id := r.Identifier(); id != "" {
		return id
	}
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("#%d", idx)
}
