package order

import (
	"context"

	"github.com/turkmasale/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindAll finds all orders matching the filter. Status filtering and
	// customer search run over the full order set before pagination.
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order
	Delete(ctx context.Context, id uint) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
