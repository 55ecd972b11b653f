package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer cents. All ledger balances are held in Cents;
// decimal.Decimal is only used for rates and intermediate products.
type Cents int64

var hundred = decimal.NewFromInt(100)

// Decimal returns the amount as a decimal number of cents.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c))
}

// String renders the amount as a major-unit string, e.g. 12345 -> "123.45".
func (c Cents) String() string {
	return decimal.New(int64(c), -2).StringFixed(2)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (c Cents) IsPositive() bool {
	return c > 0
}

// Min returns the smaller of two amounts.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// RoundHalfUp rounds a decimal number of cents to the nearest whole cent, halves away from zero.
// This is the only rounding step used by the ledger: late-fee percentages and amortization
// interest both go through it so the two never diverge by a cent.
func RoundHalfUp(d decimal.Decimal) Cents {
	return Cents(d.Round(0).IntPart())
}

// PercentOf returns RoundHalfUp(amount * percent / 100).
func PercentOf(amount Cents, percent decimal.Decimal) Cents {
	return RoundHalfUp(amount.Decimal().Mul(percent).Div(hundred))
}

// ParseCents parses a major-unit string ("123.45") into cents. More than two fractional digits is an error.
func ParseCents(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	scaled := d.Mul(hundred)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}
	return Cents(scaled.IntPart()), nil
}
