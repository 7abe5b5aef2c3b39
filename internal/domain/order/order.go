package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/turkmasale/backend/internal/domain/cart"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// OrderStatus represents the fulfilment status of an order.
// The set is closed: orders are either awaiting fulfilment or done.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
)

// IsValid checks if the status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// Contact holds the delivery details captured at checkout
type Contact struct {
	FullName       string
	Phone          string
	AlternatePhone string
	Pincode        string
	City           string
	Landmark       string
	FullAddress    string
	AddressType    string
}

// Order is a submitted customer order. The cart contents are frozen into
// ItemsJSON at submission time; later catalog edits never change what an
// order shows it was for.
type Order struct {
	shared.BaseAggregateRoot
	FullName       string          `gorm:"type:varchar(100);not null"`
	Phone          string          `gorm:"type:varchar(10);not null;index"`
	AlternatePhone string          `gorm:"type:varchar(10)"`
	Pincode        string          `gorm:"type:varchar(6);not null"`
	City           string          `gorm:"type:varchar(100);not null"`
	Landmark       string          `gorm:"type:varchar(200)"`
	FullAddress    string          `gorm:"type:text;not null"`
	AddressType    string          `gorm:"type:varchar(20);not null;default:'Home'"`
	ItemsJSON      string          `gorm:"type:jsonb;not null"`
	Total          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status         OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending';index"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order from checkout contact details and a
// non-empty set of cart lines. The lines are serialized into the order's
// immutable snapshot and the total is fixed from their prices.
func NewOrder(contact Contact, items []cart.Item) (*Order, error) {
	if err := validateContact(&contact); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot submit an order with an empty cart")
	}

	total := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_CART_ITEM", "Cart item quantity must be positive")
		}
		if it.Price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_CART_ITEM", "Cart item price cannot be negative")
		}
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	snapshot, err := json.Marshal(items)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CART_ITEM", "Cart items cannot be serialized")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          contact.FullName,
		Phone:             contact.Phone,
		AlternatePhone:    contact.AlternatePhone,
		Pincode:           contact.Pincode,
		City:              contact.City,
		Landmark:          contact.Landmark,
		FullAddress:       contact.FullAddress,
		AddressType:       contact.AddressType,
		ItemsJSON:         string(snapshot),
		Total:             total,
		Status:            OrderStatusPending,
	}, nil
}

// Items decodes the frozen cart snapshot
func (o *Order) Items() ([]cart.Item, error) {
	var items []cart.Item
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil, shared.NewDomainError("CORRUPT_SNAPSHOT", "Order snapshot is not valid JSON")
	}
	return items, nil
}

// SnapshotTotal recomputes the order total from the stored snapshot.
func (o *Order) SnapshotTotal() (decimal.Decimal, error) {
	items, err := o.Items()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total, nil
}

// SetStatus moves the order to the given status. Setting the current
// status again is a no-op. The returned flag reports whether the order
// actually crossed into Completed, so callers fire the customer
// notification exactly once per real transition.
func (o *Order) SetStatus(next OrderStatus) (completed bool, err error) {
	if !next.IsValid() {
		return false, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if o.Status == next {
		return false, nil
	}

	prev := o.Status
	o.Status = next
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return prev == OrderStatusPending && next == OrderStatusCompleted, nil
}

// IsPending returns true if the order awaits fulfilment
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order has been fulfilled
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

func validateContact(c *Contact) error {
	c.FullName = strings.TrimSpace(c.FullName)
	c.City = strings.TrimSpace(c.City)
	c.FullAddress = strings.TrimSpace(c.FullAddress)
	if c.AddressType == "" {
		c.AddressType = "Home"
	}

	if c.FullName == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Full name is required")
	}
	if !isDigits(c.Phone) || len(c.Phone) != 10 {
		return shared.NewDomainError("INVALID_CONTACT", "Phone number should be 10 digits")
	}
	if c.AlternatePhone != "" && (!isDigits(c.AlternatePhone) || len(c.AlternatePhone) != 10) {
		return shared.NewDomainError("INVALID_CONTACT", "Alternate phone number should be 10 digits")
	}
	if !isDigits(c.Pincode) || len(c.Pincode) != 6 {
		return shared.NewDomainError("INVALID_CONTACT", "Pincode should be 6 digits")
	}
	if c.City == "" {
		return shared.NewDomainError("INVALID_CONTACT", "City is required")
	}
	if c.FullAddress == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Full address is required")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
