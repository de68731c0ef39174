package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderStatusNotifier emails the buyer when their order moves, is cancelled
// or gets a shipping quote selected. Send failures are logged and swallowed.
type OrderStatusNotifier struct {
	mailer Mailer
	logger *zap.Logger
}

// NewOrderStatusNotifier creates a new OrderStatusNotifier
func NewOrderStatusNotifier(mailer Mailer, logger *zap.Logger) *OrderStatusNotifier {
	return &OrderStatusNotifier{
		mailer: mailer,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (n *OrderStatusNotifier) EventTypes() []string {
	return []string{
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderCancelled,
		order.EventTypeOrderShippingQuoteSelected,
	}
}

// Handle turns an order event into a buyer email
func (n *OrderStatusNotifier) Handle(ctx context.Context, evt shared.DomainEvent) error {
	var email Email
	switch e := evt.(type) {
	case *order.OrderStatusChangedEvent:
		email = statusChangedEmail(e)
	case *order.OrderCancelledEvent:
		email = cancelledEmail(e)
	case *order.OrderShippingQuoteSelectedEvent:
		email = quoteSelectedEmail(e)
	default:
		return fmt.Errorf("unexpected event type: %s", evt.EventType())
	}

	if email.To == "" {
		n.logger.Debug("buyer has no email, skipping notification",
			zap.String("event_type", evt.EventType()),
			zap.String("order_id", evt.AggregateID().String()),
		)
		return nil
	}

	if err := n.mailer.Send(ctx, email); err != nil {
		n.logger.Error("failed to send order notification",
			zap.String("event_type", evt.EventType()),
			zap.String("order_id", evt.AggregateID().String()),
			zap.Error(err),
		)
		return nil
	}

	n.logger.Info("order notification sent",
		zap.String("event_type", evt.EventType()),
		zap.String("order_id", evt.AggregateID().String()),
	)
	return nil
}

func statusChangedEmail(e *order.OrderStatusChangedEvent) Email {
	label := stageLabels[e.ToStatus]
	if label == "" {
		label = string(e.ToStatus)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your order %s is now %s.\n", e.OrderNumber, label)
	if e.Carrier != "" {
		fmt.Fprintf(&b, "Carrier: %s\n", e.Carrier)
	}
	if e.TrackingNumber != "" {
		fmt.Fprintf(&b, "Tracking number: %s\n", e.TrackingNumber)
	}
	if e.EstimatedDelivery != nil {
		fmt.Fprintf(&b, "Estimated delivery: %s\n", e.EstimatedDelivery.Format("2 Jan 2006"))
	}
	return Email{
		To:        e.BuyerEmail,
		Subject:   fmt.Sprintf("Order %s: %s", e.OrderNumber, label),
		PlainText: b.String(),
	}
}

func cancelledEmail(e *order.OrderCancelledEvent) Email {
	return Email{
		To:        e.BuyerEmail,
		Subject:   fmt.Sprintf("Order %s cancelled", e.OrderNumber),
		PlainText: fmt.Sprintf("Your order %s was cancelled.\nReason: %s\n", e.OrderNumber, e.Reason),
	}
}

func quoteSelectedEmail(e *order.OrderShippingQuoteSelectedEvent) Email {
	return Email{
		To:        e.BuyerEmail,
		Subject:   fmt.Sprintf("Shipping selected for order %s", e.OrderNumber),
		PlainText: fmt.Sprintf("Shipping for order %s is confirmed at %s.\n", e.OrderNumber, e.ShippingCost.StringFixed(2)),
	}
}

var _ shared.EventHandler = (*OrderStatusNotifier)(nil)
