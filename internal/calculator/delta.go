package calculator

import (
	"github.com/shopspring/decimal"

	"SpinLedger/internal/model"
)

// RoundDelta rounds a difference to one decimal place, half away from zero.
// A result of zero is normalised so it never carries a sign.
func RoundDelta(d decimal.Decimal) decimal.Decimal {
	r := d.Round(1)
	if r.IsZero() {
		return decimal.Zero
	}
	return r
}

// DeltaAt returns the delta of values[i] against values[i-1]. Index 0 and
// out-of-range indices yield the sentinel.
func DeltaAt(values []decimal.Decimal, i int) model.Delta {
	if i <= 0 || i >= len(values) {
		return model.NoDelta
	}
	return model.Delta{Value: RoundDelta(values[i].Sub(values[i-1])), Valid: true}
}

// Deltas recomputes the whole delta column in ledger order.
func Deltas(values []decimal.Decimal) []model.Delta {
	out := make([]model.Delta, len(values))
	for i := range values {
		out[i] = DeltaAt(values, i)
	}
	return out
}
