// Package core holds the client-side data model for the FinWise service.
//
// This file contains the Amount type and parsing helpers. Amounts are exact
// decimals end to end; float conversion only happens at display time.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a decimal monetary value. It marshals as a bare JSON number so
// request bodies match what the service expects, and it accepts both quoted
// and unquoted numbers when decoding (the embedded decimal handles both).
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from whole units, mostly for tests and defaults.
func NewAmount(units int64) Amount {
	return Amount{decimal.NewFromInt(units)}
}

// AmountFromDecimal wraps an existing decimal value.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{d}
}

// ParseAmount converts user input to an Amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for anything that is not a plain decimal number.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	return Amount{d}, nil
}

// MarshalJSON emits the value as an unquoted JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Cents returns the value in cents with half-up rounding on the third
// decimal place. Used for display formatting.
func (a Amount) Cents() int64 {
	return a.Decimal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.Decimal.IsPositive()
}

// Equal reports value equality regardless of exponent representation.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}
