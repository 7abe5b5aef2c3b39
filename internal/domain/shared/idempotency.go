package shared

import (
	"context"
	"time"
)

// SubmissionGuard records submission keys to prevent duplicate processing
// of retried requests (e.g. a checkout form submitted twice).
type SubmissionGuard interface {
	// MarkSubmitted marks a submission key as used with a TTL.
	// Returns true if the key was newly marked, false if it was already used.
	MarkSubmitted(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsSubmitted checks if a submission key has already been used
	IsSubmitted(ctx context.Context, key string) (bool, error)

	// Close closes the guard and releases resources
	Close() error
}

// SubmissionGuardConfig holds configuration for duplicate-submission handling
type SubmissionGuardConfig struct {
	// TTL is the time-to-live for recorded submission keys.
	// After this duration the same key is accepted again.
	// Default: 24 hours
	TTL time.Duration

	// Enabled determines whether duplicate-submission checking is enabled
	// Default: true
	Enabled bool
}

// DefaultSubmissionGuardConfig returns the default guard configuration
func DefaultSubmissionGuardConfig() SubmissionGuardConfig {
	return SubmissionGuardConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
