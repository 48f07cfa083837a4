package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CalculateRange scans values and returns the high and low.
func CalculateRange(values []decimal.Decimal) (high, low decimal.Decimal, err error) {
	if len(values) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no values provided")
	}
	high, low = values[0], values[0]
	for _, v := range values[1:] {
		if v.GreaterThan(high) {
			high = v
		}
		if v.LessThan(low) {
			low = v
		}
	}
	return high, low, nil
}
