package cart

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Store persists cart lines between sessions. Load returns the lines
// saved by the most recent Save, or an empty slice when nothing has
// been saved yet.
type Store interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// MemoryStore keeps cart lines in process memory. Used in tests and as
// a fallback when no durable path is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Item
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored lines
func (s *MemoryStore) Load(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Save replaces the stored lines
func (s *MemoryStore) Save(_ context.Context, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]Item, len(items))
	copy(s.items, items)
	return nil
}

// FileStore persists cart lines as a JSON array on disk. Writes go
// through a temp file plus rename so a crash mid-write never leaves a
// truncated cart behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path.
// The parent directory must exist.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the stored lines. A missing file is an empty cart, not an
// error; unreadable JSON is surfaced so the caller can decide to reset.
func (s *FileStore) Load(_ context.Context) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save writes the lines atomically
func (s *FileStore) Save(_ context.Context, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cart-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}
