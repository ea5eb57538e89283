package storage

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// MemoryStore keeps the snapshot in process memory. It is the default
// backend and the one the tests use.
type MemoryStore struct {
	mu    sync.Mutex
	state *ledger.State
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(_ context.Context) (*ledger.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	s := *m.state
	s.Transactions = append([]core.Transaction(nil), m.state.Transactions...)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s ledger.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := s
	saved.Transactions = append(saved.Transactions[:0:0], s.Transactions...)
	m.state = &saved
	return nil
}

func (m *MemoryStore) Close() error { return nil }
