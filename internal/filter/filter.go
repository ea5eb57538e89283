// Package filter narrows a ledger snapshot to the transactions a user
// asked to see. Apply is a pure function over the input slice.
package filter

import (
	"strings"

	"fintrack/internal/core"
)

// RecentLimit is how many entries the list view shows when no filter
// dimension is active.
const RecentLimit = 10

// Spec is a set of optional predicates, AND-combined. Zero values mean
// "no constraint on this dimension".
type Spec struct {
	SearchTerm string
	Category   string
	Type       core.TransactionType
	From       core.Date
	To         core.Date
}

// IsZero reports whether no filter dimension is active.
func (s Spec) IsZero() bool {
	return s.SearchTerm == "" && s.Category == "" && s.Type == "" &&
		s.From.IsZero() && s.To.IsZero()
}

// Apply returns the transactions matching every active predicate of
// spec, preserving input order. With a zero spec the input is returned
// unchanged.
func Apply(ts []core.Transaction, spec Spec) []core.Transaction {
	if spec.IsZero() {
		return ts
	}
	out := make([]core.Transaction, 0, len(ts))
	for _, t := range ts {
		if matches(t, spec) {
			out = append(out, t)
		}
	}
	return out
}

// Visible applies the list-view presentation policy: with no active
// filter only the RecentLimit most recent entries are shown (the head
// of the newest-first list); with any filter active, all matches.
func Visible(ts []core.Transaction, spec Spec) []core.Transaction {
	if spec.IsZero() {
		if len(ts) > RecentLimit {
			ts = ts[:RecentLimit]
		}
		return append([]core.Transaction(nil), ts...)
	}
	return Apply(ts, spec)
}

func matches(t core.Transaction, spec Spec) bool {
	if spec.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(t.Name), strings.ToLower(spec.SearchTerm)) {
		return false
	}
	if spec.Category != "" && t.Category != spec.Category {
		return false
	}
	if spec.Type != "" && t.Type != spec.Type {
		return false
	}
	// Calendar-date comparisons, both bounds inclusive. There is no
	// instant conversion, so "through end of day" holds by construction.
	if !spec.From.IsZero() && t.Date.Before(spec.From) {
		return false
	}
	if !spec.To.IsZero() && t.Date.After(spec.To) {
		return false
	}
	return true
}
