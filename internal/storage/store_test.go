package storage

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

func sampleState() ledger.State {
	return ledger.State{
		Transactions: []core.Transaction{
			{
				ID:       2,
				Type:     core.Expense,
				Name:     "groceries",
				Amount:   core.Money{Cents: 4000},
				Date:     core.MustParseDate("2024-01-03"),
				Category: "Food",
			},
			{
				ID:       1,
				Type:     core.Income,
				Name:     "salary",
				Amount:   core.Money{Cents: 10000},
				Date:     core.MustParseDate("2024-01-02"),
				Category: "Work",
			},
		},
		Balance:  core.Money{Cents: 6000},
		Income:   core.Money{Cents: 10000},
		Expenses: core.Money{Cents: 4000},
	}
}

func checkRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// A fresh store has no state yet.
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil state before first save, got %+v", got)
	}

	want := sampleState()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatalf("expected state after save")
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(got.Transactions))
	}
	if got.Transactions[0] != want.Transactions[0] {
		t.Fatalf("transaction mismatch: %+v != %+v", got.Transactions[0], want.Transactions[0])
	}
	if got.Balance != want.Balance || got.Income != want.Income || got.Expenses != want.Expenses {
		t.Fatalf("totals mismatch: %+v", got)
	}

	// Save again to exercise overwrite, not append.
	want.Transactions = want.Transactions[:1]
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Transactions) != 1 {
		t.Fatalf("expected overwritten state with 1 transaction, got %d", len(got.Transactions))
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	checkRoundTrip(t, store)
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first.Transactions[0].Name = "mutated"

	second, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if second.Transactions[0].Name != "groceries" {
		t.Fatalf("loaded state must be a copy, got %q", second.Transactions[0].Name)
	}
}

func TestJSONFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store, err := NewJSONFileStore(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer store.Close()
	checkRoundTrip(t, store)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer store.Close()
	checkRoundTrip(t, store)
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		cfg Config
		ok  bool
	}{
		{Config{Type: MemoryBackend}, true},
		{Config{Type: JSONBackend, JSONStatePath: filepath.Join(dir, "s.json")}, true},
		{Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "s.db")}, true},
		{Config{Type: "redis"}, false},
	}
	for _, tc := range cases {
		store, err := Open(tc.cfg, nil)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: expected ok, got %v", tc.cfg.Type, err)
			}
			store.Close()
		} else if err == nil {
			t.Fatalf("%s: expected error", tc.cfg.Type)
		}
	}
}
