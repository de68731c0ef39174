package shipping

import (
	"context"
	"fmt"

	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"go.uber.org/zap"
)

// DeliveryRecordedHandler credits a completed delivery to the company whose
// quote was selected when an order reaches delivered.
type DeliveryRecordedHandler struct {
	quoteRepo   shipping.ShippingQuoteRepository
	companyRepo shipping.ShippingCompanyRepository
	logger      *zap.Logger
}

// NewDeliveryRecordedHandler creates a new DeliveryRecordedHandler
func NewDeliveryRecordedHandler(
	quoteRepo shipping.ShippingQuoteRepository,
	companyRepo shipping.ShippingCompanyRepository,
	logger *zap.Logger,
) *DeliveryRecordedHandler {
	return &DeliveryRecordedHandler{
		quoteRepo:   quoteRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DeliveryRecordedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderStatusChanged}
}

// Handle processes an OrderStatusChangedEvent
func (h *DeliveryRecordedHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	changed, ok := evt.(*order.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderStatusChanged, evt.EventType())
	}
	if changed.ToStatus != order.OrderStatusDelivered || changed.SelectedQuoteID == nil {
		return nil
	}

	quote, err := h.quoteRepo.FindByID(ctx, evt.TenantID(), *changed.SelectedQuoteID)
	if err != nil {
		return fmt.Errorf("load selected quote: %w", err)
	}
	company, err := h.companyRepo.FindByID(ctx, evt.TenantID(), quote.ShippingCompanyID)
	if err != nil {
		return fmt.Errorf("load shipping company: %w", err)
	}

	if err := company.RecordDelivery(0); err != nil {
		return err
	}
	if err := h.companyRepo.SaveWithLock(ctx, company); err != nil {
		return fmt.Errorf("save delivery stats: %w", err)
	}

	h.logger.Info("delivery recorded",
		zap.String("order_id", changed.OrderID.String()),
		zap.String("company_id", company.ID.String()),
		zap.Int("completed_deliveries", company.Stats.CompletedDeliveries),
	)
	return nil
}

var _ shared.EventHandler = (*DeliveryRecordedHandler)(nil)
