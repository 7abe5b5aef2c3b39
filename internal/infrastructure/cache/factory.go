package cache

import (
	"fmt"

	"github.com/turkmasale/backend/internal/domain/shared"
	"github.com/turkmasale/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SubmissionGuardFactory creates submission guards based on configuration
type SubmissionGuardFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SubmissionGuardFactoryOption is a functional option for configuring the factory
type SubmissionGuardFactoryOption func(*SubmissionGuardFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SubmissionGuardFactoryOption {
	return func(f *SubmissionGuardFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory guard when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) SubmissionGuardFactoryOption {
	return func(f *SubmissionGuardFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSubmissionGuardFactory creates a new factory
func NewSubmissionGuardFactory(cfg config.RedisConfig, opts ...SubmissionGuardFactoryOption) *SubmissionGuardFactory {
	f := &SubmissionGuardFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisGuard creates a Redis-based submission guard
func (f *SubmissionGuardFactory) CreateRedisGuard() (shared.SubmissionGuard, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	guard, err := NewRedisSubmissionGuard(redisCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis submission guard: %w", err)
	}

	return guard, nil
}

// CreateInMemoryGuard creates an in-memory submission guard
// This is suitable for single-instance deployments and testing
// WARNING: In-memory guards do not share state across process instances,
// which can lead to duplicate order submissions in distributed deployments
func (f *SubmissionGuardFactory) CreateInMemoryGuard() shared.SubmissionGuard {
	return NewInMemorySubmissionGuard()
}

// CreateGuard creates a submission guard for the configured backend.
// The "redis" backend falls back to in-memory when Redis is unreachable
// and AllowInMemoryFallback is true.
func (f *SubmissionGuardFactory) CreateGuard(backend string) (shared.SubmissionGuard, error) {
	switch backend {
	case "memory":
		f.logger.Info("using in-memory submission guard")
		return f.CreateInMemoryGuard(), nil
	case "redis":
		guard, err := f.CreateRedisGuard()
		if err == nil {
			f.logger.Info("using Redis submission guard")
			return guard, nil
		}

		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for submission guard but unavailable: %w", err)
		}

		f.logger.Warn("Redis unavailable, falling back to in-memory submission guard. "+
			"This may allow duplicate order submissions in distributed deployments.",
			zap.Error(err),
		)
		return f.CreateInMemoryGuard(), nil
	default:
		return nil, fmt.Errorf("unknown submission guard backend: %q", backend)
	}
}
