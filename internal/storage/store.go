// Package storage persists the ledger state as an opaque snapshot blob.
// The contract is deliberately small: Load returns the last saved state
// or nothing, Save replaces it. The serialized form holds exactly the
// ledger state fields (transactions, balance, income, expenses); any
// change to the transaction shape is a breaking format change.
package storage

import (
	"context"

	"fintrack/internal/ledger"
)

// Store is the persistence adapter contract. Save is invoked
// synchronously after every mutating ledger operation so a crash-free
// restart always reflects the latest state.
type Store interface {
	// Load returns the saved ledger state, or (nil, nil) when nothing
	// has been saved yet.
	Load(ctx context.Context) (*ledger.State, error)
	// Save replaces the saved state with s.
	Save(ctx context.Context, s ledger.State) error
	Close() error
}
