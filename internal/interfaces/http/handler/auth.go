package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turkmasale/backend/internal/infrastructure/auth"
	"github.com/turkmasale/backend/internal/infrastructure/config"
	"github.com/turkmasale/backend/internal/interfaces/http/dto"
	"github.com/turkmasale/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	BaseHandler
	sessions *auth.SessionService
	cookie   config.CookieConfig
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(sessions *auth.SessionService, cookie config.CookieConfig, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	return &AuthHandler{
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

// LoginRequest represents an admin login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse confirms a successful login
type LoginResponse struct {
	ExpiresAt string `json:"expires_at"`
}

// Login verifies the admin credentials and sets the session cookie.
// Failed attempts get the same response regardless of which credential
// was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Username and password are required")
		return
	}

	if err := h.sessions.VerifyCredentials(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("admin login rejected",
				zap.String("ip", c.ClientIP()),
			)
			h.Error(c, http.StatusUnauthorized, dto.ErrCodeInvalidCredentials, "Invalid username or password")
			return
		}
		h.InternalError(c, "Could not verify credentials")
		return
	}

	session, err := h.sessions.IssueSession()
	if err != nil {
		h.InternalError(c, "Could not create session")
		return
	}

	h.setSessionCookie(c, session.Token, int(h.sessions.SessionTTL().Seconds()))
	h.logger.Info("admin logged in", zap.String("ip", c.ClientIP()))

	h.Success(c, LoginResponse{ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z07:00")})
}

// Logout clears the session cookie. The token itself simply expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	h.Success(c, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(sameSiteFor(h.cookie.SameSite))
	c.SetCookie(middleware.AdminSessionCookie, token, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteFor(policy string) http.SameSite {
	switch policy {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
