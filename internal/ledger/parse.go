package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidValue is returned when input does not parse as a non-negative decimal.
	ErrInvalidValue = errors.New("invalid value")
	// ErrIndexOutOfRange is returned when an operation names an index outside the ledger.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ParseValue parses raw as a non-negative decimal. Surrounding whitespace is
// ignored; signs, exponents and anything but digits and one decimal point
// are rejected.
func ParseValue(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !isDecimal(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidValue, raw, err)
	}
	return v, nil
}

func isDecimal(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
