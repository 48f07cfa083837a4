package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CalculateMean returns the arithmetic mean of values.
func CalculateMean(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, errors.New("no values provided")
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values)))), nil
}
