// Package core defines the finance tracker's domain types: calendar
// dates, money amounts, and transactions.
//
// This file holds money parsing and formatting. Amounts are kept as
// integer cents everywhere; decimal arithmetic happens only at the
// parsing and presentation boundaries so aggregate sums never
// accumulate floating-point error.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a currency amount in integer cents.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string from user input to Money with
// half-up rounding on the third decimal place. It accepts both dot
// (12.34) and comma (12,34) separators. Amounts must be strictly
// positive; zero, negative, and malformed input are rejected here so
// the ledger never has to re-validate.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if v.Sign() <= 0 {
		return Money{}, ErrInvalidAmount
	}
	cents := v.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() {
		return Money{}, ErrInvalidAmount
	}
	m := Money{Cents: cents.IntPart()}
	if m.Cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// Validate rejects non-positive amounts.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns m + x.
func (m Money) Add(x Money) Money { return Money{Cents: m.Cents + x.Cents} }

// Sub returns m - x. The result may be negative (net change).
func (m Money) Sub(x Money) Money { return Money{Cents: m.Cents - x.Cents} }

// Decimal returns the amount as a major-unit decimal value.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.Cents, -2) }

// Float returns the major-unit value as a float64. Only for the chart
// and display boundaries; use cents for all arithmetic.
func (m Money) Float() float64 { return m.Decimal().InexactFloat64() }

// String renders the amount with two decimals, e.g. "12.34".
func (m Money) String() string { return m.Decimal().StringFixed(2) }

// MarshalJSON encodes the amount as a bare integer number of cents.
// This keeps the persisted ledger blob exact and compact.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Cents, 10)), nil
}

// UnmarshalJSON decodes an integer number of cents.
func (m *Money) UnmarshalJSON(data []byte) error {
	cents, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Cents = cents
	return nil
}
