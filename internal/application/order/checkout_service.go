package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/turkmasale/backend/internal/domain/order"
	"github.com/turkmasale/backend/internal/domain/shared"
	"github.com/turkmasale/backend/internal/infrastructure/telemetry"
)

// CheckoutService turns a validated cart submission into a persisted
// pending order plus the WhatsApp hand-off payload.
type CheckoutService struct {
	orderRepo order.OrderRepository
	guard     shared.SubmissionGuard
	guardTTL  time.Duration
	handoff   order.HandoffConfig
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService. The guard is
// optional; without one only client-side double-submit protection
// applies.
func NewCheckoutService(
	orderRepo order.OrderRepository,
	guard shared.SubmissionGuard,
	guardTTL time.Duration,
	handoff order.HandoffConfig,
	logger *zap.Logger,
) *CheckoutService {
	if guardTTL <= 0 {
		guardTTL = shared.DefaultSubmissionGuardConfig().TTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		orderRepo: orderRepo,
		guard:     guard,
		guardTTL:  guardTTL,
		handoff:   handoff,
		logger:    logger,
	}
}

// Submit validates the checkout, freezes the cart into an order and
// returns the order together with its WhatsApp hand-off message and
// deep link.
func (s *CheckoutService) Submit(ctx context.Context, req SubmitOrderRequest) (*SubmitOrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "submit_order")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrItemCount, len(req.Items))

	contact := order.Contact{
		FullName:       req.FullName,
		Phone:          req.Phone,
		AlternatePhone: req.AlternatePhone,
		Pincode:        req.Pincode,
		City:           req.City,
		Landmark:       req.Landmark,
		FullAddress:    req.FullAddress,
		AddressType:    req.AddressType,
	}

	// Contact and cart validation happens inside NewOrder; nothing is
	// marked against the guard until the submission is known to be valid.
	newOrder, err := order.NewOrder(contact, toCartItems(req.Items))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if req.IdempotencyKey != "" && s.guard != nil {
		fresh, err := s.guard.MarkSubmitted(ctx, req.IdempotencyKey, s.guardTTL)
		if err != nil {
			// A broken guard must not block checkout
			s.logger.Warn("submission guard unavailable, accepting order",
				zap.String("idempotency_key", req.IdempotencyKey),
				zap.Error(err))
		} else if !fresh {
			err := shared.NewDomainError("DUPLICATE_SUBMISSION", "This order was already submitted")
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, newOrder); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, int(newOrder.ID),
		telemetry.SpanAttrOrderTotal, newOrder.Total.String(),
	)
	telemetry.SetOK(span)

	message, err := order.BuildHandoffMessage(s.handoff, newOrder)
	if err != nil {
		return nil, err
	}

	response, err := ToOrderResponse(newOrder)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order submitted",
		zap.Uint("order_id", newOrder.ID),
		zap.String("phone", newOrder.Phone),
		zap.String("total", newOrder.Total.String()))

	return &SubmitOrderResponse{
		Order:      response,
		Message:    message,
		HandoffURL: order.HandoffLink(s.handoff, message),
	}, nil
}
