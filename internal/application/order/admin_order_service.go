package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/turkmasale/backend/internal/domain/order"
	"github.com/turkmasale/backend/internal/domain/shared"
	"github.com/turkmasale/backend/internal/infrastructure/telemetry"
)

// Notifier delivers the customer-facing completion notification.
// Implementations return the delivery reference (e.g. a wa.me link).
type Notifier interface {
	NotifyOrderCompleted(ctx context.Context, o *order.Order) (string, error)
}

// AdminOrderService handles order management from the admin panel
type AdminOrderService struct {
	orderRepo order.OrderRepository
	notifier  Notifier
	logger    *zap.Logger
}

// NewAdminOrderService creates a new AdminOrderService. The notifier is
// optional; without one completion transitions are silent.
func NewAdminOrderService(orderRepo order.OrderRepository, notifier Notifier, logger *zap.Logger) *AdminOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminOrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

// Get retrieves an order by ID
func (s *AdminOrderService) Get(ctx context.Context, id uint) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves orders with filtering and pagination, newest first.
// Status filtering and customer search apply to the full order set
// before the page is cut.
func (s *AdminOrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "id",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" && filter.Status != "All" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := ToOrderResponses(orders)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// SetStatus moves an order to the given status. When the order actually
// crosses into Completed the customer notification fires once, in the
// background; a failed notification is logged and never undoes the
// status change.
func (s *AdminOrderService) SetStatus(ctx context.Context, id uint, status string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "admin_order", "set_status")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, int(id),
		telemetry.SpanAttrOrderStatus, status,
	)

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	completed, err := o.SetStatus(order.OrderStatus(status))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if completed && s.notifier != nil {
		notifyOrder := *o
		go func() {
			ref, err := s.notifier.NotifyOrderCompleted(context.Background(), &notifyOrder)
			if err != nil {
				s.logger.Warn("completion notification failed",
					zap.Uint("order_id", notifyOrder.ID),
					zap.Error(err))
				return
			}
			s.logger.Info("completion notification sent",
				zap.Uint("order_id", notifyOrder.ID),
				zap.String("reference", ref))
		}()
	}

	response, err := ToOrderResponse(o)
	if err != nil {
		return nil, err
	}
	return &response, nil
}
