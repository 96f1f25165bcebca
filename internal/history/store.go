package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store is the persisted single-slot history.
type Store interface {
	// Load returns the stored record, or nil when the slot is empty.
	Load() (*Record, error)
	// Save replaces the slot with rec.
	Save(rec Record) error
	// Clear empties the slot.
	Clear() error
}

// ErrCorrupt is returned by Load when the file exists but cannot be parsed.
// Callers treat it as an empty slot.
var ErrCorrupt = errors.New("history file is corrupt")

// FileStore keeps the slot in a JSON file.
type FileStore struct {
	Path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the slot. A missing file or an empty object yields (nil, nil).
func (s *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.IsZero() {
		return nil, nil
	}
	return &rec, nil
}

// Save persists rec as indented JSON, replacing any previous record.
func (s *FileStore) Save(rec Record) error {
	// Marshal with 4-space indent
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	return s.write(data)
}

// Clear writes an empty object.
func (s *FileStore) Clear() error {
	return s.write([]byte("{}"))
}

// write replaces the file atomically via a temp file in the same directory.
func (s *FileStore) write(data []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close history file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

// ReadOnly wraps a store so that writes are dropped. Used for dry runs.
type ReadOnly struct {
	Store Store
}

var _ Store = ReadOnly{}

func (r ReadOnly) Load() (*Record, error) { return r.Store.Load() }
func (r ReadOnly) Save(Record) error      { return nil }
func (r ReadOnly) Clear() error           { return nil }
