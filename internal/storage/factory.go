package storage

import (
	"fmt"
	"log/slog"
)

// BackendType selects which Store implementation persists the ledger.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	JSONBackend   BackendType = "json"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string { return string(bt) }

// IsValid reports whether the backend type is one of the known values.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type          BackendType
	JSONStatePath string
	SQLiteDBPath  string
}

// Open builds the configured Store.
func Open(cfg Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Type {
	case MemoryBackend:
		logger.Info("Initialized memory store")
		return NewMemoryStore(), nil
	case JSONBackend:
		st, err := NewJSONFileStore(cfg.JSONStatePath)
		if err != nil {
			return nil, fmt.Errorf("initialize json store: %w", err)
		}
		logger.Info("Initialized JSON file store", "path", cfg.JSONStatePath)
		return st, nil
	case SQLiteBackend:
		st, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite store", "path", cfg.SQLiteDBPath)
		return st, nil
	default:
		return nil, fmt.Errorf("invalid store backend: %s", cfg.Type)
	}
}
