package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/turkmasale/backend/internal/application/order"
	"github.com/turkmasale/backend/internal/interfaces/http/dto"
)

// AdminOrderHandler handles order management for the admin dashboard
type AdminOrderHandler struct {
	BaseHandler
	orderService *orderapp.AdminOrderService
}

// NewAdminOrderHandler creates a new AdminOrderHandler
func NewAdminOrderHandler(orderService *orderapp.AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{
		orderService: orderService,
	}
}

// List returns orders newest first, filterable by status and search term
func (h *AdminOrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get returns a single order with its immutable item snapshot
func (h *AdminOrderHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// SetStatus moves an order between Pending and Completed. Completing an
// order triggers the customer notification exactly once.
func (h *AdminOrderHandler) SetStatus(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.SetStatus(c.Request.Context(), uri.ID, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}
