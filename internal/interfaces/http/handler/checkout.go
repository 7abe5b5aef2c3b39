package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/turkmasale/backend/internal/application/order"
)

// CheckoutHandler handles public order submission
type CheckoutHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *orderapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Submit accepts a cart and contact details, persists the order snapshot
// and returns the WhatsApp hand-off link. The optional Idempotency-Key
// header lets a retrying client avoid double submission.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req orderapp.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.IdempotencyKey = c.GetHeader("Idempotency-Key")

	result, err := h.checkoutService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}
