package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"MASALE_APP_NAME":                os.Getenv("MASALE_APP_NAME"),
		"MASALE_APP_ENV":                 os.Getenv("MASALE_APP_ENV"),
		"MASALE_APP_PORT":                os.Getenv("MASALE_APP_PORT"),
		"MASALE_DATABASE_HOST":           os.Getenv("MASALE_DATABASE_HOST"),
		"MASALE_DATABASE_PORT":           os.Getenv("MASALE_DATABASE_PORT"),
		"MASALE_DATABASE_USER":           os.Getenv("MASALE_DATABASE_USER"),
		"MASALE_DATABASE_PASSWORD":       os.Getenv("MASALE_DATABASE_PASSWORD"),
		"MASALE_DATABASE_DBNAME":         os.Getenv("MASALE_DATABASE_DBNAME"),
		"MASALE_DATABASE_SSLMODE":        os.Getenv("MASALE_DATABASE_SSLMODE"),
		"MASALE_DATABASE_MAX_OPEN_CONNS": os.Getenv("MASALE_DATABASE_MAX_OPEN_CONNS"),
		"MASALE_DATABASE_MAX_IDLE_CONNS": os.Getenv("MASALE_DATABASE_MAX_IDLE_CONNS"),
		"MASALE_ADMIN_TOKEN_SECRET":      os.Getenv("MASALE_ADMIN_TOKEN_SECRET"),
		"MASALE_CHECKOUT_GUARD_BACKEND":  os.Getenv("MASALE_CHECKOUT_GUARD_BACKEND"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "masale-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "masale", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "admin", cfg.Admin.Username)
		assert.Equal(t, 24*time.Hour, cfg.Admin.SessionTTL)
		assert.Equal(t, "Turk Masale", cfg.Store.Name)
		assert.Equal(t, "91", cfg.Store.CountryCode)
		assert.Equal(t, "memory", cfg.Checkout.GuardBackend)
		assert.Equal(t, 5, cfg.HTTP.AuthRateLimitRequests)
		assert.Equal(t, time.Minute, cfg.HTTP.AuthRateLimitWindow)
		assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadSize)
	})

	t.Run("loads values from environment variables with MASALE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("MASALE_APP_NAME", "test-app")
		os.Setenv("MASALE_APP_ENV", "testing")
		os.Setenv("MASALE_APP_PORT", "9000")
		os.Setenv("MASALE_DATABASE_HOST", "testdb.local")
		os.Setenv("MASALE_DATABASE_PORT", "5433")
		os.Setenv("MASALE_DATABASE_USER", "testuser")
		os.Setenv("MASALE_DATABASE_PASSWORD", "testpass")
		os.Setenv("MASALE_DATABASE_DBNAME", "testdb")
		os.Setenv("MASALE_DATABASE_SSLMODE", "require")
		os.Setenv("MASALE_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("MASALE_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("MASALE_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("MASALE_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown guard backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("MASALE_CHECKOUT_GUARD_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "guard_backend")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("MASALE_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"MASALE_APP_ENV":             os.Getenv("MASALE_APP_ENV"),
		"MASALE_ADMIN_PASSWORD_HASH": os.Getenv("MASALE_ADMIN_PASSWORD_HASH"),
		"MASALE_ADMIN_TOKEN_SECRET":  os.Getenv("MASALE_ADMIN_TOKEN_SECRET"),
		"MASALE_DATABASE_PASSWORD":   os.Getenv("MASALE_DATABASE_PASSWORD"),
		"MASALE_DATABASE_SSLMODE":    os.Getenv("MASALE_DATABASE_SSLMODE"),
		"MASALE_COOKIE_SECURE":       os.Getenv("MASALE_COOKIE_SECURE"),
		"MASALE_STORE_PHONE":         os.Getenv("MASALE_STORE_PHONE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	// Helper to set valid production base config
	setValidProductionBase := func() {
		os.Setenv("MASALE_APP_ENV", "production")
		os.Setenv("MASALE_ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
		os.Setenv("MASALE_ADMIN_TOKEN_SECRET", "this-is-a-very-secure-token-secret-32chars")
		os.Setenv("MASALE_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MASALE_DATABASE_SSLMODE", "require")
		os.Setenv("MASALE_COOKIE_SECURE", "true")
		os.Setenv("MASALE_STORE_PHONE", "919634749230")
	}

	t.Run("requires admin.password_hash in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("MASALE_ADMIN_PASSWORD_HASH")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "admin.password_hash is required in production")
	})

	t.Run("requires admin.token_secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("MASALE_ADMIN_TOKEN_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token_secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("MASALE_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("MASALE_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires store.phone in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("MASALE_STORE_PHONE")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.phone is required in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
