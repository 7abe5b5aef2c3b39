package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/turkmasale/backend/internal/domain/cart"
	"github.com/turkmasale/backend/internal/domain/order"
)

// CheckoutItemRequest is one cart line in a checkout submission
type CheckoutItemRequest struct {
	Slug     string          `json:"slug" binding:"required"`
	Title    string          `json:"title" binding:"required"`
	Size     string          `json:"size" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Image    string          `json:"image"`
}

// SubmitOrderRequest represents a checkout submission.
// IdempotencyKey comes from the Idempotency-Key header, not the body.
type SubmitOrderRequest struct {
	FullName       string                `json:"full_name" binding:"required,min=1,max=100"`
	Phone          string                `json:"phone" binding:"required"`
	AlternatePhone string                `json:"alternate_phone"`
	Pincode        string                `json:"pincode" binding:"required"`
	City           string                `json:"city" binding:"required,max=100"`
	Landmark       string                `json:"landmark" binding:"max=200"`
	FullAddress    string                `json:"full_address" binding:"required"`
	AddressType    string                `json:"address_type" binding:"omitempty,oneof=Home Work Other"`
	Items          []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`

	IdempotencyKey string `json:"-"`
}

// OrderItemResponse is one snapshot line in API responses
type OrderItemResponse struct {
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID             uint                `json:"id"`
	FullName       string              `json:"full_name"`
	Phone          string              `json:"phone"`
	AlternatePhone string              `json:"alternate_phone,omitempty"`
	Pincode        string              `json:"pincode"`
	City           string              `json:"city"`
	Landmark       string              `json:"landmark,omitempty"`
	FullAddress    string              `json:"full_address"`
	AddressType    string              `json:"address_type"`
	Items          []OrderItemResponse `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Version        int                 `json:"version"`
}

// SubmitOrderResponse carries the persisted order plus the WhatsApp
// hand-off the storefront opens for the customer
type SubmitOrderResponse struct {
	Order      OrderResponse `json:"order"`
	Message    string        `json:"message"`
	HandoffURL string        `json:"handoff_url"`
}

// SetStatusRequest updates an order's fulfilment status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter represents filter options for the admin order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=All Pending Completed"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) (OrderResponse, error) {
	items, err := o.Items()
	if err != nil {
		return OrderResponse{}, err
	}

	out := make([]OrderItemResponse, len(items))
	for i, it := range items {
		out[i] = OrderItemResponse{
			Slug:     it.Slug,
			Title:    it.Title,
			Size:     it.Size,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}

	return OrderResponse{
		ID:             o.ID,
		FullName:       o.FullName,
		Phone:          o.Phone,
		AlternatePhone: o.AlternatePhone,
		Pincode:        o.Pincode,
		City:           o.City,
		Landmark:       o.Landmark,
		FullAddress:    o.FullAddress,
		AddressType:    o.AddressType,
		Items:          out,
		Total:          o.Total,
		Status:         o.Status.String(),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Version:        o.Version,
	}, nil
}

// ToOrderResponses converts a slice of domain Orders to responses
func ToOrderResponses(orders []order.Order) ([]OrderResponse, error) {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		resp, err := ToOrderResponse(&orders[i])
		if err != nil {
			return nil, err
		}
		responses[i] = resp
	}
	return responses, nil
}

// toCartItems converts request lines to domain cart items
func toCartItems(items []CheckoutItemRequest) []cart.Item {
	out := make([]cart.Item, len(items))
	for i, it := range items {
		out[i] = cart.Item{
			Slug:     it.Slug,
			Title:    it.Title,
			Size:     it.Size,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		}
	}
	return out
}
