package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turkmasale/backend/internal/infrastructure/config"
)

// testRedisConfig points at a port nothing listens on so the redis
// backend path exercises its fallback behavior.
func testRedisConfig() config.RedisConfig {
	return config.RedisConfig{
		Host: "127.0.0.1",
		Port: 1,
		DB:   0,
	}
}

func TestInMemorySubmissionGuard_MarkSubmitted(t *testing.T) {
	guard := NewInMemorySubmissionGuard()
	defer guard.Close()

	ctx := context.Background()

	t.Run("records a new submission key", func(t *testing.T) {
		isNew, err := guard.MarkSubmitted(ctx, "checkout-1", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew, "new key should return true")
	})

	t.Run("returns false for an already recorded key", func(t *testing.T) {
		isNew, err := guard.MarkSubmitted(ctx, "checkout-2", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = guard.MarkSubmitted(ctx, "checkout-2", 1*time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew, "already recorded key should return false")
	})

	t.Run("allows resubmission after expiration", func(t *testing.T) {
		ttl := 10 * time.Millisecond

		isNew, err := guard.MarkSubmitted(ctx, "checkout-3", ttl)
		require.NoError(t, err)
		assert.True(t, isNew)

		time.Sleep(20 * time.Millisecond)

		isNew, err = guard.MarkSubmitted(ctx, "checkout-3", ttl)
		require.NoError(t, err)
		assert.True(t, isNew, "expired key should be accepted again")
	})
}

func TestInMemorySubmissionGuard_IsSubmitted(t *testing.T) {
	guard := NewInMemorySubmissionGuard()
	defer guard.Close()

	ctx := context.Background()

	t.Run("returns false for an unknown key", func(t *testing.T) {
		submitted, err := guard.IsSubmitted(ctx, "unknown-key")
		require.NoError(t, err)
		assert.False(t, submitted)
	})

	t.Run("returns true for a recorded key", func(t *testing.T) {
		_, err := guard.MarkSubmitted(ctx, "recorded-key", 1*time.Hour)
		require.NoError(t, err)

		submitted, err := guard.IsSubmitted(ctx, "recorded-key")
		require.NoError(t, err)
		assert.True(t, submitted)
	})

	t.Run("returns false for an expired key", func(t *testing.T) {
		_, err := guard.MarkSubmitted(ctx, "expired-key", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		submitted, err := guard.IsSubmitted(ctx, "expired-key")
		require.NoError(t, err)
		assert.False(t, submitted, "expired key should return false")
	})
}

func TestInMemorySubmissionGuard_Size(t *testing.T) {
	guard := NewInMemorySubmissionGuard()
	defer guard.Close()

	ctx := context.Background()

	assert.Equal(t, 0, guard.Size(), "empty guard should have size 0")

	guard.MarkSubmitted(ctx, "key-1", 1*time.Hour)
	assert.Equal(t, 1, guard.Size())

	guard.MarkSubmitted(ctx, "key-2", 1*time.Hour)
	assert.Equal(t, 2, guard.Size())

	// Recording the same key shouldn't increase size
	guard.MarkSubmitted(ctx, "key-1", 1*time.Hour)
	assert.Equal(t, 2, guard.Size())
}

func TestInMemorySubmissionGuard_Close(t *testing.T) {
	guard := NewInMemorySubmissionGuard()

	require.NoError(t, guard.Close())
	// Safe to call multiple times
	require.NoError(t, guard.Close())
}

func TestInMemorySubmissionGuard_Cleanup(t *testing.T) {
	guard := NewInMemorySubmissionGuard()
	defer guard.Close()

	ctx := context.Background()

	guard.MarkSubmitted(ctx, "short-lived", 10*time.Millisecond)
	guard.MarkSubmitted(ctx, "long-lived", 1*time.Hour)
	require.Equal(t, 2, guard.Size())

	time.Sleep(20 * time.Millisecond)
	guard.cleanup()

	assert.Equal(t, 1, guard.Size(), "cleanup should drop expired entries")
}

func TestSubmissionGuardFactory(t *testing.T) {
	t.Run("creates in-memory guard for memory backend", func(t *testing.T) {
		factory := NewSubmissionGuardFactory(testRedisConfig())

		guard, err := factory.CreateGuard("memory")
		require.NoError(t, err)
		defer guard.Close()

		assert.IsType(t, &InMemorySubmissionGuard{}, guard)
	})

	t.Run("rejects an unknown backend", func(t *testing.T) {
		factory := NewSubmissionGuardFactory(testRedisConfig())

		_, err := factory.CreateGuard("memcached")
		assert.Error(t, err)
	})

	t.Run("redis backend falls back to in-memory when unreachable", func(t *testing.T) {
		factory := NewSubmissionGuardFactory(testRedisConfig())

		guard, err := factory.CreateGuard("redis")
		require.NoError(t, err)
		defer guard.Close()

		assert.IsType(t, &InMemorySubmissionGuard{}, guard)
	})

	t.Run("redis backend errors when fallback is disabled", func(t *testing.T) {
		factory := NewSubmissionGuardFactory(testRedisConfig(), WithInMemoryFallback(false))

		_, err := factory.CreateGuard("redis")
		assert.Error(t, err)
	})
}
