package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turkmasale/backend/internal/infrastructure/mail"
	"github.com/turkmasale/backend/internal/interfaces/http/dto"
)

// ContactHandler handles the public contact form
type ContactHandler struct {
	BaseHandler
	mailer mail.Mailer
	inbox  string
	logger *zap.Logger
}

// NewContactHandler creates a new ContactHandler. inbox is the store
// address that receives contact messages.
func NewContactHandler(mailer mail.Mailer, inbox string, logger *zap.Logger) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{
		mailer: mailer,
		inbox:  inbox,
		logger: logger,
	}
}

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=20"`
	Message string `json:"message" binding:"required,min=1,max=5000"`
}

// Submit relays a contact form message to the store inbox
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	subject := fmt.Sprintf("Contact form: %s", req.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", req.Name, req.Email, req.Phone, req.Message)

	if err := h.mailer.Send(h.inbox, subject, body); err != nil {
		h.logger.Warn("contact mail delivery failed", zap.Error(err))
		h.ErrorWithCode(c, dto.ErrCodeUpstreamUnavailable, "Could not deliver your message, please try again later")
		return
	}

	h.Success(c, gin.H{"message": "Thanks for reaching out, we will get back to you soon"})
}
