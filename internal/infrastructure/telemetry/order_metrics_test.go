package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestOrderMetrics(t *testing.T) (*OrderMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewOrderMetrics(provider.Meter(MeterName))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumFor(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	want := attribute.NewSet(attrs...)
	var total int64
	for _, dp := range sum.DataPoints {
		matches := true
		for _, kv := range want.ToSlice() {
			v, found := dp.Attributes.Value(kv.Key)
			if !found || v != kv.Value {
				matches = false
				break
			}
		}
		if matches {
			total += dp.Value
		}
	}
	return total
}

func TestOrderMetrics_Handle(t *testing.T) {
	ctx := context.Background()
	m, reader := newTestOrderMetrics(t)
	tenantID := uuid.New()

	statusChanged := &order.OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(order.EventTypeOrderStatusChanged, order.AggregateTypeOrder, uuid.New(), tenantID),
		FromStatus:      order.OrderStatusProcessing,
		ToStatus:        order.OrderStatusShipped,
	}
	selected := &order.OrderShippingQuoteSelectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(order.EventTypeOrderShippingQuoteSelected, order.AggregateTypeOrder, uuid.New(), tenantID),
		ShippingCost:    decimal.NewFromInt(15),
	}
	submitted := &shipping.QuoteSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(shipping.EventTypeQuoteSubmitted, shipping.AggregateTypeShippingQuote, uuid.New(), tenantID),
		Price:           decimal.NewFromFloat(42.5),
	}
	quoteChanged := &shipping.QuoteStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(shipping.EventTypeQuoteStatusChanged, shipping.AggregateTypeShippingQuote, uuid.New(), tenantID),
		FromStatus:      shipping.QuoteStatusAccepted,
		ToStatus:        shipping.QuoteStatusRejected,
	}

	for _, e := range []shared.DomainEvent{statusChanged, statusChanged, selected, submitted, quoteChanged} {
		require.NoError(t, m.Handle(ctx, e))
	}

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumFor(t, got["marketplace.orders.status_transitions"],
		attribute.String("from", "processing"), attribute.String("to", "shipped")))
	assert.Equal(t, int64(1), sumFor(t, got["marketplace.shipping_quotes.selected"],
		attribute.Bool("reselection", false)))
	assert.Equal(t, int64(1), sumFor(t, got["marketplace.shipping_quotes.submitted"]))
	assert.Equal(t, int64(1), sumFor(t, got["marketplace.shipping_quotes.status_transitions"],
		attribute.String("to", "rejected")))

	hist, ok := got["marketplace.shipping_quotes.price"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, 42.5, hist.DataPoints[0].Sum)
}

func TestOrderMetrics_SubscribesToLifecycleEvents(t *testing.T) {
	m, _ := newTestOrderMetrics(t)
	types := m.EventTypes()
	assert.Contains(t, types, order.EventTypeOrderCreated)
	assert.Contains(t, types, order.EventTypeOrderCancelled)
	assert.Contains(t, types, shipping.EventTypeQuoteSubmitted)
}
