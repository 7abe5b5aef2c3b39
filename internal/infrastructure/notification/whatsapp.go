// Package notification produces customer-facing WhatsApp notifications.
package notification

import (
	"context"

	"github.com/turkmasale/backend/internal/domain/order"
	"github.com/turkmasale/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Notifier tells a customer that their order reached a new state.
type Notifier interface {
	// NotifyOrderCompleted returns the wa.me link carrying the completion
	// message for the order's customer.
	NotifyOrderCompleted(ctx context.Context, o *order.Order) (string, error)
}

// WhatsAppNotifier builds prefilled wa.me links. WhatsApp has no
// server-side send API on the free tier, so delivery happens when the
// store operator opens the link; the backend's job is to produce it
// and keep a record in the logs.
type WhatsAppNotifier struct {
	cfg order.HandoffConfig
}

// NewWhatsAppNotifier creates a notifier for the configured store
func NewWhatsAppNotifier(cfg order.HandoffConfig) *WhatsAppNotifier {
	return &WhatsAppNotifier{cfg: cfg}
}

// NotifyOrderCompleted builds the completion message link for the order
func (n *WhatsAppNotifier) NotifyOrderCompleted(ctx context.Context, o *order.Order) (string, error) {
	message := order.BuildCompletionMessage(n.cfg, o)
	link := order.CustomerLink(n.cfg, o, message)

	logger.L(ctx).Info("order completion notification prepared",
		zap.Uint("order_id", o.ID),
		zap.String("phone", o.Phone),
		zap.String("link", link),
	)

	return link, nil
}

var _ Notifier = (*WhatsAppNotifier)(nil)
