package utils

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ozzo's Min/Max compare ints, floats and times only, decimals need custom rules

// DecimalMin fails when the value is below min. Nil pointers pass, combine with Required/NotNil.
func DecimalMin(min decimal.Decimal, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok := asDecimal(value)
		if ok && d.LessThan(min) {
			return errors.New(message)
		}
		return nil
	})
}

// DecimalMax fails when the value is above max
func DecimalMax(max decimal.Decimal, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok := asDecimal(value)
		if ok && d.GreaterThan(max) {
			return errors.New(message)
		}
		return nil
	})
}

// DecimalPositive fails on zero or negative values
func DecimalPositive(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok := asDecimal(value)
		if ok && !d.IsPositive() {
			return errors.New(message)
		}
		return nil
	})
}

func asDecimal(value interface{}) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	default:
		return decimal.Zero, false
	}
}
