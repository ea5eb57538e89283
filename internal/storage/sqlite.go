package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the snapshot in a single-row table. The payload
// column is the same opaque JSON blob the file backend writes, so the
// two backends stay format-compatible.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*ledger.State, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM ledger_snapshot WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger snapshot: %w", err)
	}
	var state ledger.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode ledger snapshot: %w", err)
	}
	return &state, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state ledger.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode ledger snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ledger_snapshot (id, payload, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		payload)
	if err != nil {
		return fmt.Errorf("write ledger snapshot: %w", err)
	}
	slog.DebugContext(ctx, "Ledger snapshot saved",
		"transactions", len(state.Transactions),
		"balance_cents", state.Balance.Cents)
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
