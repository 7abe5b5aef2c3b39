package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/turkmasale/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SessionClaims represents the claims carried by an admin session token
type SessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Session represents an issued admin session
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService issues and validates admin session tokens.
// There is a single admin identity; the token only proves that the
// holder presented the admin password.
type SessionService struct {
	secret       []byte
	username     string
	passwordHash string
	ttl          time.Duration
	issuer       string
}

// NewSessionService creates a new session service
func NewSessionService(cfg config.AdminConfig) *SessionService {
	return &SessionService{
		secret:       []byte(cfg.TokenSecret),
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		ttl:          cfg.SessionTTL,
		issuer:       cfg.Issuer,
	}
}

// VerifyCredentials checks a login attempt against the configured admin
// identity. The bcrypt comparison runs even when the username is wrong,
// so both failure modes take roughly the same time.
func (s *SessionService) VerifyCredentials(username, password string) error {
	nameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
	if !nameMatch || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueSession generates a signed session token for the admin
func (s *SessionService) IssueSession() (*Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   "admin",
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: "admin",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// ValidateSession validates a session token and returns its claims
func (s *SessionService) ValidateSession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.Role != "admin" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// SessionTTL returns the configured session lifetime
func (s *SessionService) SessionTTL() time.Duration {
	return s.ttl
}

// GetExpiresAtTime returns the token's expiration time as time.Time
func (c *SessionClaims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *SessionClaims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
