// Package money provides the decimal conventions used for every monetary value.
//
// Invariants:
//   - Amounts are exact decimals, never binary floating point.
//   - Presented balances, limits and rates carry DisplayScale decimals, rounded half away from zero.
//   - Denomination values and user-facing amounts in messages carry MessageScale decimals.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DisplayScale is the number of decimals of presented balances, limits and rates.
	DisplayScale int32 = 3
	// MessageScale is the number of decimals used when an amount is written into a message.
	MessageScale int32 = 2
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrDivisionByZero is returned when dividing by a zero rate.
	ErrDivisionByZero = errors.New("division by zero")
)

// Unit is the smallest step of the reference currency used when searching for dispensable amounts.
var Unit = decimal.NewFromInt(1)

// Round rounds d half away from zero to DisplayScale decimals.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayScale)
}

// RoundPtr rounds d and returns a pointer to the result.
func RoundPtr(d decimal.Decimal) *decimal.Decimal {
	r := Round(d)
	return &r
}

// Divide divides d by divisor rounding half away from zero to DisplayScale decimals.
func Divide(d, divisor decimal.Decimal) (decimal.Decimal, error) {
	if divisor.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return d.DivRound(divisor, DisplayScale), nil
}

// Format renders d with MessageScale fixed decimals, e.g. 200 -> "200.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(MessageScale)
}

// Parse parses a decimal string, trimming surrounding whitespace.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Join(ErrInvalidAmount, err)
	}
	return d, nil
}

// IsMultiple reports whether amount is an exact multiple of step.
func IsMultiple(amount, step decimal.Decimal) bool {
	if step.IsZero() {
		return false
	}
	return amount.Mod(step).IsZero()
}

// ValueOrZero returns the value of a nullable decimal, or zero when it is unset.
func ValueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
