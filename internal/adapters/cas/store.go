// Package cas persists declaration check results keyed by type name.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPath is where check results are stored, relative to the working directory.
const DefaultPath = ".cascade/state.json"

var _ ports.CheckStore = (*Store)(nil)

// Store implements ports.CheckStore using a flat JSON file.
type Store struct {
	path    string
	mu      sync.RWMutex
	records map[string]domain.CheckRecord
}

// NewStore creates a new CheckStore backed by the file at the given path.
// A missing file is treated as an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		records: make(map[string]domain.CheckRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store reads from and writes to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read check store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal check store"), "path", s.path)
	}
	if s.records == nil {
		s.records = make(map[string]domain.CheckRecord)
	}

	return nil
}

// save must be called with s.mu held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal check store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for check store")
	}

	// Write to a sibling file and rename so a crash never leaves a torn store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.Wrap(err, "failed to write check store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace check store")
	}

	return nil
}

// Get retrieves the last check record for a given type name.
func (s *Store) Get(typeName string) (*domain.CheckRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[typeName]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the check record and flushes the store to disk.
func (s *Store) Put(record domain.CheckRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.TypeName] = record
	return s.save()
}
