package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	catalogapp "github.com/turkmasale/backend/internal/application/catalog"
)

// MemoryImageStorage is an in-memory ImageStorage for development and tests.
type MemoryImageStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

// NewMemoryImageStorage creates a new MemoryImageStorage
func NewMemoryImageStorage(baseURL string) *MemoryImageStorage {
	if baseURL == "" {
		baseURL = "https://images.example.com"
	}
	return &MemoryImageStorage{
		objects: make(map[string][]byte),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Ensure MemoryImageStorage implements ImageStorage
var _ catalogapp.ImageStorage = (*MemoryImageStorage)(nil)

// Upload stores the image bytes and returns the public URL
func (m *MemoryImageStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = stored

	return m.baseURL + "/" + key, nil
}

// Delete removes a stored image
func (m *MemoryImageStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Exists reports whether a key has been uploaded
func (m *MemoryImageStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

// Get returns the stored bytes for a key (for testing)
func (m *MemoryImageStorage) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}
