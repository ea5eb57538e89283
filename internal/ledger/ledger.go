// Package ledger owns the authoritative in-memory transaction list and
// its running aggregates. The aggregates are maintained incrementally
// on every mutation; consumers read them, they never recompute them.
package ledger

import (
	"errors"
	"time"

	"fintrack/internal/core"
)

// ErrNotFound is returned by Edit and Delete when no transaction has
// the given id. The ledger is left untouched.
var ErrNotFound = errors.New("transaction not found")

// State is the persisted form of a ledger: the transaction list plus
// the three derived totals, exactly the fields the storage blob holds.
type State struct {
	Transactions []core.Transaction `json:"transactions"`
	Balance      core.Money         `json:"balance"`
	Income       core.Money         `json:"income"`
	Expenses     core.Money         `json:"expenses"`
}

// Fields carries the replacement values for an edit. The id itself is
// immutable; everything else is overwritten.
type Fields struct {
	Type     core.TransactionType
	Name     string
	Amount   core.Money
	Date     core.Date
	Category string
}

// Ledger holds transactions newest-first and keeps income, expenses,
// and balance consistent with the list after every mutation. It is not
// safe for concurrent use; the owning service serializes access.
type Ledger struct {
	transactions []core.Transaction
	income       int64 // cents
	expenses     int64 // cents
	lastID       int64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{transactions: make([]core.Transaction, 0)}
}

// NewFromState rebuilds a ledger from a loaded snapshot. The aggregates
// are recomputed from the transactions rather than trusted, and the id
// counter resumes past the largest stored id so re-added entries can
// never collide with old ones.
func NewFromState(s State) *Ledger {
	l := &Ledger{transactions: append([]core.Transaction(nil), s.Transactions...)}
	for _, t := range l.transactions {
		l.apply(t, +1)
		if t.ID > l.lastID {
			l.lastID = t.ID
		}
	}
	return l
}

// nextID returns a fresh, strictly increasing time-of-creation id.
// Creating several transactions in the same millisecond still yields
// unique ids.
func (l *Ledger) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

// apply folds a transaction's contribution into the aggregates.
// sign is +1 to apply and -1 to reverse.
func (l *Ledger) apply(t core.Transaction, sign int64) {
	if t.Type == core.Income {
		l.income += sign * t.Amount.Cents
	} else {
		l.expenses += sign * t.Amount.Cents
	}
}

// Add creates a transaction with a fresh id, prepends it (the list is
// newest-first), and updates the aggregates. The caller validates the
// input before calling and persists afterwards.
func (l *Ledger) Add(typ core.TransactionType, name string, amount core.Money, date core.Date, category string) core.Transaction {
	t := core.Transaction{
		ID:       l.nextID(),
		Type:     typ,
		Name:     name,
		Amount:   amount,
		Date:     date,
		Category: category,
	}
	l.transactions = append([]core.Transaction{t}, l.transactions...)
	l.apply(t, +1)
	return t
}

// Edit replaces a transaction's mutable fields. The pre-edit
// contribution is reversed before the post-edit one is applied, so
// flipping an expense to an income of the same amount swings the
// balance by exactly twice that amount.
func (l *Ledger) Edit(id int64, f Fields) error {
	i := l.find(id)
	if i < 0 {
		return ErrNotFound
	}
	old := l.transactions[i]
	l.apply(old, -1)

	updated := old
	updated.Type = f.Type
	updated.Name = f.Name
	updated.Amount = f.Amount
	updated.Date = f.Date
	updated.Category = f.Category
	l.transactions[i] = updated
	l.apply(updated, +1)
	return nil
}

// Delete removes a transaction and reverses its contribution to the
// aggregates.
func (l *Ledger) Delete(id int64) error {
	i := l.find(id)
	if i < 0 {
		return ErrNotFound
	}
	l.apply(l.transactions[i], -1)
	l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
	return nil
}

func (l *Ledger) find(id int64) int {
	for i, t := range l.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Income is the sum of all income-type transaction amounts.
func (l *Ledger) Income() core.Money { return core.Money{Cents: l.income} }

// Expenses is the sum of all expense-type transaction amounts.
func (l *Ledger) Expenses() core.Money { return core.Money{Cents: l.expenses} }

// Balance is income minus expenses. It may be negative.
func (l *Ledger) Balance() core.Money { return core.Money{Cents: l.income - l.expenses} }

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// Snapshot returns a read-only copy of the ledger state for filtering,
// reporting, and persistence. Mutating the returned slice does not
// affect the ledger.
func (l *Ledger) Snapshot() State {
	return State{
		Transactions: append([]core.Transaction(nil), l.transactions...),
		Balance:      l.Balance(),
		Income:       l.Income(),
		Expenses:     l.Expenses(),
	}
}
