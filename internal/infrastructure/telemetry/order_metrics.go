package telemetry

import (
	"context"

	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope for marketplace business metrics
const MeterName = "github.com/marketplace/backend"

// OrderMetrics turns order and quote events into counters. It is subscribed
// to the event bus, so the use cases stay free of metric calls.
type OrderMetrics struct {
	ordersCreated     *Counter
	statusTransitions *Counter
	ordersCancelled   *Counter
	quotesSubmitted   *Counter
	quoteTransitions  *Counter
	quotesSelected    *Counter
	quotePrice        *Histogram
	orderAmount       *Histogram
}

// NewOrderMetrics registers the instruments on meter
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	m := &OrderMetrics{}
	var err error

	if m.ordersCreated, err = NewCounter(meter, "marketplace.orders.created", "Orders placed", "{order}"); err != nil {
		return nil, err
	}
	if m.statusTransitions, err = NewCounter(meter, "marketplace.orders.status_transitions", "Order status changes", "{transition}"); err != nil {
		return nil, err
	}
	if m.ordersCancelled, err = NewCounter(meter, "marketplace.orders.cancelled", "Orders cancelled", "{order}"); err != nil {
		return nil, err
	}
	if m.quotesSubmitted, err = NewCounter(meter, "marketplace.shipping_quotes.submitted", "Shipping quotes submitted", "{quote}"); err != nil {
		return nil, err
	}
	if m.quoteTransitions, err = NewCounter(meter, "marketplace.shipping_quotes.status_transitions", "Shipping quote status changes", "{transition}"); err != nil {
		return nil, err
	}
	if m.quotesSelected, err = NewCounter(meter, "marketplace.shipping_quotes.selected", "Shipping quotes selected by buyers", "{quote}"); err != nil {
		return nil, err
	}
	if m.quotePrice, err = NewHistogram(meter, HistogramOpts{
		Name:        "marketplace.shipping_quotes.price",
		Description: "Submitted shipping quote prices",
		Unit:        "{currency}",
		Buckets:     []float64{5, 10, 20, 50, 100, 200, 500, 1000},
	}); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "marketplace.orders.amount",
		Description: "Order totals at creation",
		Unit:        "{currency}",
		Buckets:     []float64{10, 50, 100, 250, 500, 1000, 5000},
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// EventTypes implements shared.EventHandler
func (m *OrderMetrics) EventTypes() []string {
	return []string{
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderCancelled,
		order.EventTypeOrderShippingQuoteSelected,
		shipping.EventTypeQuoteSubmitted,
		shipping.EventTypeQuoteStatusChanged,
	}
}

// Handle implements shared.EventHandler
func (m *OrderMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	tenant := attribute.String("tenant_id", event.TenantID().String())

	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		m.ordersCreated.Inc(ctx, tenant)
		m.orderAmount.Record(ctx, e.TotalAmount.InexactFloat64(), tenant)
	case *order.OrderStatusChangedEvent:
		m.statusTransitions.Inc(ctx, tenant,
			attribute.String("from", e.FromStatus.String()),
			attribute.String("to", e.ToStatus.String()),
		)
	case *order.OrderCancelledEvent:
		m.ordersCancelled.Inc(ctx, tenant, attribute.String("from", e.PreviousStatus.String()))
	case *order.OrderShippingQuoteSelectedEvent:
		m.quotesSelected.Inc(ctx, tenant, attribute.Bool("reselection", e.PreviousQuoteID != nil))
	case *shipping.QuoteSubmittedEvent:
		m.quotesSubmitted.Inc(ctx, tenant)
		m.quotePrice.Record(ctx, e.Price.InexactFloat64(), tenant)
	case *shipping.QuoteStatusChangedEvent:
		m.quoteTransitions.Inc(ctx, tenant,
			attribute.String("from", e.FromStatus.String()),
			attribute.String("to", e.ToStatus.String()),
		)
	}
	return nil
}

var _ shared.EventHandler = (*OrderMetrics)(nil)
