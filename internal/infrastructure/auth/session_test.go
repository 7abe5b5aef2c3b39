package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turkmasale/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

func testSessionConfig(t *testing.T, ttl time.Duration) config.AdminConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AdminConfig{
		Username:     "admin",
		PasswordHash: string(hash),
		TokenSecret:  "test-secret-at-least-32-characters-long",
		SessionTTL:   ttl,
		Issuer:       "masale-backend",
	}
}

func TestSessionService_VerifyCredentials(t *testing.T) {
	svc := NewSessionService(testSessionConfig(t, time.Hour))

	t.Run("accepts the correct credentials", func(t *testing.T) {
		assert.NoError(t, svc.VerifyCredentials("admin", "correct-horse"))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		assert.ErrorIs(t, svc.VerifyCredentials("admin", "battery-staple"), ErrInvalidCredentials)
	})

	t.Run("rejects a wrong username", func(t *testing.T) {
		assert.ErrorIs(t, svc.VerifyCredentials("root", "correct-horse"), ErrInvalidCredentials)
	})

	t.Run("rejects empty credentials", func(t *testing.T) {
		assert.ErrorIs(t, svc.VerifyCredentials("", ""), ErrInvalidCredentials)
	})
}

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := NewSessionService(testSessionConfig(t, time.Hour))

	t.Run("issues a validatable session", func(t *testing.T) {
		session, err := svc.IssueSession()
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

		claims, err := svc.ValidateSession(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, "admin", claims.Subject)
		assert.Equal(t, "masale-backend", claims.Issuer)
		assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		_, err := svc.ValidateSession("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := NewSessionService(config.AdminConfig{
			TokenSecret: "another-secret-also-32-characters-xx",
			SessionTTL:  time.Hour,
			Issuer:      "masale-backend",
		})
		session, err := other.IssueSession()
		require.NoError(t, err)

		_, err = svc.ValidateSession(session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewSessionService(testSessionConfig(t, -time.Minute))
		session, err := expired.IssueSession()
		require.NoError(t, err)

		_, err = svc.ValidateSession(session.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token without the admin role", func(t *testing.T) {
		cfg := testSessionConfig(t, time.Hour)
		claims := &SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "someone",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
			Role: "viewer",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.TokenSecret))
		require.NoError(t, err)

		_, err = svc.ValidateSession(signed)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects a token with a non-HMAC signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{Role: "admin"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateSession(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionClaims_Helpers(t *testing.T) {
	t.Run("zero claims report no expiry", func(t *testing.T) {
		c := &SessionClaims{}
		assert.True(t, c.GetExpiresAtTime().IsZero())
		assert.Equal(t, time.Duration(0), c.GetRemainingTTL())
	})

	t.Run("past expiry reports zero TTL", func(t *testing.T) {
		c := &SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		assert.Equal(t, time.Duration(0), c.GetRemainingTTL())
	})
}
