package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"signalgate/internal/domain"
)

// JSONFileStore keeps the full ordered sequence of signal records in memory
// and mirrors it to a single JSON array file. Appends rewrite the file to a
// temp path and rename it into place, so a crash mid-write leaves the
// previous snapshot intact. One mutex serializes appends and reads: a
// reader sees either the pre-append or post-append snapshot, never a torn
// record.
type JSONFileStore struct {
	mu      sync.Mutex
	path    string
	records []*domain.SignalRecord
}

// Open loads the store file at path, creating parent directories as needed.
// A missing file yields an empty store, not an error.
func Open(path string) (*JSONFileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	s := &JSONFileStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}

	return s, nil
}

// Append persists the record before committing it to the in-memory
// sequence. On a write failure nothing is committed and the caller gets a
// storage error.
func (s *JSONFileStore) Append(ctx context.Context, record *domain.SignalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(s.records, record)

	if err := s.persist(next); err != nil {
		return err
	}

	s.records = next
	return nil
}

// Recent retrieves up to limit records from the tail, oldest first
func (s *JSONFileStore) Recent(ctx context.Context, limit int) ([]*domain.SignalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		return []*domain.SignalRecord{}, nil
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}

	tail := s.records[len(s.records)-limit:]
	out := make([]*domain.SignalRecord, len(tail))
	copy(out, tail)
	return out, nil
}

// Count returns the total number of records ever stored
func (s *JSONFileStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

// Path returns the backing file path
func (s *JSONFileStore) Path() string {
	return s.path
}

// persist writes the full sequence to a temp file and renames it over the
// store file. Caller must hold the mutex.
func (s *JSONFileStore) persist(records []*domain.SignalRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}
