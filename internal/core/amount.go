package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount bounds user-entered amounts so they stay well inside int64.
const MaxAmount int64 = 1_000_000_000_000

var ErrAmountFormat = errors.New("amount is not a number")

// ParseAmount parses a decimal string and rounds it half-to-even to whole
// currency units. The result must be positive.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrAmountFormat
	}
	d = d.RoundBank(0)
	if !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return 0, ErrInvalidAmount
	}
	return d.IntPart(), nil
}

// ParseStoredAmount reads an amount cell. Integral decimals such as "100.0"
// are accepted, fractional ones are not.
func ParseStoredAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrAmountFormat
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, ErrAmountFormat
	}
	return d.IntPart(), nil
}
