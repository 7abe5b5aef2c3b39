package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turkmasale/backend/internal/infrastructure/auth"
	"github.com/turkmasale/backend/internal/interfaces/http/dto"
)

// AdminSessionCookie is the cookie carrying the admin session token.
const AdminSessionCookie = "admin_token"

// AdminClaimsKey is the gin context key holding validated session claims.
const AdminClaimsKey = "admin_claims"

// AdminAuth gates a route group behind the admin session cookie. Requests
// without a valid session token get a 401 with a login redirect hint so the
// frontend can send the operator back to the login form.
func AdminAuth(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AdminSessionCookie)
		if err != nil || token == "" {
			unauthorized(c, "Authentication required")
			return
		}

		claims, err := sessions.ValidateSession(token)
		if err != nil {
			unauthorized(c, "Session is invalid or expired")
			return
		}

		c.Set(AdminClaimsKey, claims)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	requestID := c.GetString("request_id")
	resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID)
	resp.Data = gin.H{"redirect": "/admin/login"}
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}
