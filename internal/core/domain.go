package core

import (
	"errors"
	"fmt"
	"strings"
)

// TransactionType tags a transaction as money in or money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyName     = errors.New("empty transaction name")
	ErrEmptyCategory = errors.New("empty category")
)

// ParseTransactionType parses "income" or "expense".
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Valid reports whether the type is one of the two known values.
func (t TransactionType) Valid() bool { return t == Income || t == Expense }

// Transaction is a single ledger entry. The ID is assigned once at
// creation and never changes; every other field may be replaced by an
// edit.
type Transaction struct {
	ID       int64           `json:"id"`
	Type     TransactionType `json:"type"`
	Name     string          `json:"name"`
	Amount   Money           `json:"amount"`
	Date     Date            `json:"date"`
	Category string          `json:"category"`
}

// Validate checks a transaction built from raw user input. The ledger
// trusts its callers and does not re-run this.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if len(strings.TrimSpace(t.Name)) == 0 {
		return ErrEmptyName
	}
	if len(t.Name) > 200 {
		return errors.New("transaction name too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
