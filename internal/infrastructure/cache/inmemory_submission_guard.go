package cache

import (
	"context"
	"sync"
	"time"

	"github.com/turkmasale/backend/internal/domain/shared"
)

// entry represents a stored submission key with expiration
type entry struct {
	expiresAt time.Time
}

// InMemorySubmissionGuard implements SubmissionGuard using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemorySubmissionGuard struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySubmissionGuard creates a new in-memory submission guard
// It starts a background goroutine to clean up expired entries
func NewInMemorySubmissionGuard() *InMemorySubmissionGuard {
	guard := &InMemorySubmissionGuard{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	// Start cleanup goroutine
	guard.wg.Add(1)
	go guard.cleanupLoop()

	return guard
}

// MarkSubmitted records a checkout submission key with a TTL
// Returns true if the key was newly recorded, false if it was already seen
func (g *InMemorySubmissionGuard) MarkSubmitted(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Check if already exists and not expired
	if e, exists := g.entries[key]; exists {
		if time.Now().Before(e.expiresAt) {
			return false, nil // Already submitted
		}
		// Entry exists but expired, will be overwritten
	}

	g.entries[key] = entry{
		expiresAt: time.Now().Add(ttl),
	}

	return true, nil
}

// IsSubmitted checks if a submission key has already been recorded
func (g *InMemorySubmissionGuard) IsSubmitted(ctx context.Context, key string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, exists := g.entries[key]
	if !exists {
		return false, nil
	}

	// Check if entry has expired
	if time.Now().After(e.expiresAt) {
		return false, nil // Expired, treat as not submitted
	}

	return true, nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (g *InMemorySubmissionGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (g *InMemorySubmissionGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanup()
		}
	}
}

// cleanup removes expired entries from the guard
func (g *InMemorySubmissionGuard) cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for key, e := range g.entries {
		if now.After(e.expiresAt) {
			delete(g.entries, key)
		}
	}
}

// Size returns the number of entries in the guard (for testing/monitoring)
func (g *InMemorySubmissionGuard) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Ensure InMemorySubmissionGuard implements SubmissionGuard
var _ shared.SubmissionGuard = (*InMemorySubmissionGuard)(nil)
