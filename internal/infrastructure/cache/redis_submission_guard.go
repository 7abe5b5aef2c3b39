package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// RedisSubmissionGuard implements SubmissionGuard using Redis
// This is suitable for distributed deployments where multiple instances
// need to share submission state
type RedisSubmissionGuard struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSubmissionGuard creates a new Redis-based submission guard
func NewRedisSubmissionGuard(cfg RedisConfig) (*RedisSubmissionGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSubmissionGuard{
		client:    client,
		keyPrefix: "checkout:submission:",
	}, nil
}

// NewRedisSubmissionGuardWithClient creates a guard with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSubmissionGuardWithClient(client *redis.Client, keyPrefix string) *RedisSubmissionGuard {
	if keyPrefix == "" {
		keyPrefix = "checkout:submission:"
	}
	return &RedisSubmissionGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkSubmitted records a checkout submission key with a TTL
// Returns true if the key was newly recorded, false if it was already seen
// Uses SETNX (SET if Not eXists) for atomic operation
func (g *RedisSubmissionGuard) MarkSubmitted(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	redisKey := g.keyPrefix + key

	// Use SETNX with TTL in a single atomic operation
	// Returns true if key was set, false if it already existed
	result, err := g.client.SetNX(ctx, redisKey, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark submission: %w", err)
	}

	return result, nil
}

// IsSubmitted checks if a submission key has already been recorded
func (g *RedisSubmissionGuard) IsSubmitted(ctx context.Context, key string) (bool, error) {
	redisKey := g.keyPrefix + key

	exists, err := g.client.Exists(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check submission: %w", err)
	}

	return exists > 0, nil
}

// Close closes the Redis client
func (g *RedisSubmissionGuard) Close() error {
	return g.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (g *RedisSubmissionGuard) GetClient() *redis.Client {
	return g.client
}

// Ensure RedisSubmissionGuard implements SubmissionGuard
var _ shared.SubmissionGuard = (*RedisSubmissionGuard)(nil)
