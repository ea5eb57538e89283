package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fintrack/internal/ledger"
)

// JSONFileStore keeps the snapshot in a single JSON file, the local
// equivalent of the browser-storage blob the tracker grew out of.
type JSONFileStore struct {
	path string
}

func NewJSONFileStore(path string) (*JSONFileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &JSONFileStore{path: path}, nil
}

func (f *JSONFileStore) Load(_ context.Context) (*ledger.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var s ledger.State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", f.path, err)
	}
	return &s, nil
}

func (f *JSONFileStore) Save(_ context.Context, s ledger.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (f *JSONFileStore) Close() error { return nil }
