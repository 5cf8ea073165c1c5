package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store loads and saves snapshots as whole values.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// FileStore persists the snapshot as an indent-formatted JSON file so the
// baseline stays independently readable outside the pipeline. Save writes to
// a sibling temp file and renames it into place.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store rooted at the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the persisted snapshot, or an empty one when none exists yet.
func (s *FileStore) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: read %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode %s: %w", s.path, err)
	}
	return snap, nil
}

// Save replaces the persisted snapshot.
func (s *FileStore) Save(snap Snapshot) error {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("snapshot: mkdir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("snapshot: replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore keeps the snapshot in process memory. Used by tests and dry
// runs that must not touch the persisted baseline.
type MemoryStore struct {
	snap Snapshot
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held snapshot.
func (s *MemoryStore) Load() (Snapshot, error) {
	return s.snap, nil
}

// Save replaces the held snapshot.
func (s *MemoryStore) Save(snap Snapshot) error {
	s.snap = snap
	return nil
}
