package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (e.g. 10.50 is 1050). All balance
// and delta arithmetic in the ledger happens on this type; decimal
// strings exist only at the API edge.
type Money int64

var ErrMalformedAmount = errors.New("malformed amount")

// ParseMoney converts a decimal string like "10.50" to minor units.
// Anything with more than two fraction digits is rejected rather than
// truncated.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q has sub-cent precision", ErrMalformedAmount, s)
	}
	return Money(minor.IntPart()), nil
}

// String renders the amount back as a two-decimal string.
func (m Money) String() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}
