package order

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testAddress() ShippingAddress {
	return ShippingAddress{
		Name:    "Ada Buyer",
		Email:   "ada@example.com",
		Line1:   "12 Harbour Road",
		City:    "Mombasa",
		Country: "KE",
	}
}

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder(uuid.New(), "ORD-2026-00001", uuid.New(), uuid.New(), []ItemInput{
		{ProductID: uuid.New(), ProductName: "Linen Texture Roll", UnitPrice: decimal.NewFromInt(45), Quantity: 2},
		{ProductID: uuid.New(), ProductName: "Botanical Mural", UnitPrice: decimal.NewFromFloat(120.5), Quantity: 1},
	}, testAddress())
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func moveTo(t *testing.T, o *Order, path ...OrderStatus) {
	for _, st := range path {
		require.NoError(t, o.UpdateStatus(st, StatusUpdate{}))
	}
	o.ClearDomainEvents()
}

func assertTransitionError(t *testing.T, err error, from, to OrderStatus) {
	t.Helper()
	require.Error(t, err)
	var te *shared.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, string(from), te.From)
	assert.Equal(t, string(to), te.To)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
}

// ============================================
// Construction Tests
// ============================================

func TestNewOrder(t *testing.T) {
	o := createTestOrder(t)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, 3, o.Quantity)
	assert.True(t, decimal.NewFromFloat(210.5).Equal(o.TotalAmount))
	assert.True(t, o.ShippingCost.IsZero())
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, OrderStatusPending, o.StatusHistory[0].Status)
	assert.Equal(t, 1, o.Version)
	for _, item := range o.Items {
		assert.Equal(t, o.ID, item.OrderID)
	}
}

func TestNewOrder_RaisesCreatedEvent(t *testing.T) {
	o, err := NewOrder(uuid.New(), "ORD-2026-00002", uuid.New(), uuid.New(), []ItemInput{
		{ProductID: uuid.New(), ProductName: "Roll", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	}, testAddress())
	require.NoError(t, err)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeOrderCreated, created.EventType())
	assert.Equal(t, o.BuyerID, created.BuyerID)
}

func TestNewOrder_Validation(t *testing.T) {
	item := ItemInput{ProductID: uuid.New(), ProductName: "Roll", UnitPrice: decimal.NewFromInt(10), Quantity: 1}

	tests := []struct {
		name    string
		number  string
		buyer   uuid.UUID
		seller  uuid.UUID
		items   []ItemInput
		address ShippingAddress
		code    string
	}{
		{"empty number", "", uuid.New(), uuid.New(), []ItemInput{item}, testAddress(), "INVALID_ORDER_NUMBER"},
		{"nil buyer", "ORD-1", uuid.Nil, uuid.New(), []ItemInput{item}, testAddress(), "INVALID_BUYER"},
		{"nil seller", "ORD-1", uuid.New(), uuid.Nil, []ItemInput{item}, testAddress(), "INVALID_SELLER"},
		{"no items", "ORD-1", uuid.New(), uuid.New(), nil, testAddress(), "INVALID_ITEMS"},
		{"zero quantity", "ORD-1", uuid.New(), uuid.New(), []ItemInput{{ProductID: uuid.New(), ProductName: "Roll", UnitPrice: decimal.NewFromInt(1)}}, testAddress(), "INVALID_QUANTITY"},
		{"negative price", "ORD-1", uuid.New(), uuid.New(), []ItemInput{{ProductID: uuid.New(), ProductName: "Roll", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}}, testAddress(), "INVALID_PRICE"},
		{"missing address", "ORD-1", uuid.New(), uuid.New(), []ItemInput{item}, ShippingAddress{Name: "A"}, "INVALID_ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(uuid.New(), tt.number, tt.buyer, tt.seller, tt.items, tt.address)
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.code, domainErr.Code)
		})
	}
}

// ============================================
// Status Transition Tests
// ============================================

func TestOrder_UpdateStatus_HappyPath(t *testing.T) {
	o := createTestOrder(t)
	eta := time.Now().Add(72 * time.Hour)

	require.NoError(t, o.UpdateStatus(OrderStatusConfirmed, StatusUpdate{}))
	require.NoError(t, o.UpdateStatus(OrderStatusProcessing, StatusUpdate{}))
	require.NoError(t, o.UpdateStatus(OrderStatusShipped, StatusUpdate{Carrier: "DHL", EstimatedDelivery: &eta, Location: "Nairobi hub"}))
	require.NoError(t, o.UpdateStatus(OrderStatusOutForDelivery, StatusUpdate{}))
	require.NoError(t, o.UpdateStatus(OrderStatusDelivered, StatusUpdate{Note: "Left with reception"}))

	assert.Equal(t, OrderStatusDelivered, o.Status)
	assert.NotNil(t, o.ConfirmedAt)
	assert.NotNil(t, o.ShippedAt)
	assert.NotNil(t, o.DeliveredAt)
	assert.Equal(t, "DHL", o.Tracking.Carrier)
	assert.Equal(t, "Nairobi hub", o.Tracking.CurrentLocation)
	require.Len(t, o.StatusHistory, 6)
	assert.Equal(t, "Left with reception", o.StatusHistory[5].Note)

	changes := 0
	for _, e := range o.GetDomainEvents() {
		if e.EventType() == EventTypeOrderStatusChanged {
			changes++
		}
	}
	assert.Equal(t, 5, changes)
}

func TestOrder_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	o := createTestOrder(t)
	moveTo(t, o, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered)

	err := o.UpdateStatus(OrderStatusPending, StatusUpdate{})
	assertTransitionError(t, err, OrderStatusDelivered, OrderStatusPending)
	assert.Equal(t, OrderStatusDelivered, o.Status)
	assert.Empty(t, o.GetDomainEvents())
}

func TestOrder_UpdateStatus_SkippingStagesRejected(t *testing.T) {
	o := createTestOrder(t)
	err := o.UpdateStatus(OrderStatusDelivered, StatusUpdate{})
	assertTransitionError(t, err, OrderStatusPending, OrderStatusDelivered)
}

func TestOrder_UpdateStatus_InvalidStatus(t *testing.T) {
	o := createTestOrder(t)
	err := o.UpdateStatus(OrderStatus("teleported"), StatusUpdate{})
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}

func TestOrder_UpdateStatus_CarrierOnlyForShippingStatuses(t *testing.T) {
	o := createTestOrder(t)
	eta := time.Now().Add(48 * time.Hour)

	require.NoError(t, o.UpdateStatus(OrderStatusConfirmed, StatusUpdate{Carrier: "Ignored Express", EstimatedDelivery: &eta}))
	assert.Empty(t, o.Tracking.Carrier)
	assert.Nil(t, o.Tracking.EstimatedDelivery)

	require.NoError(t, o.UpdateStatus(OrderStatusShipped, StatusUpdate{Carrier: "G4S", EstimatedDelivery: &eta}))
	assert.Equal(t, "G4S", o.Tracking.Carrier)
	require.NotNil(t, o.Tracking.EstimatedDelivery)
	assert.True(t, eta.Equal(*o.Tracking.EstimatedDelivery))
}

func TestOrder_UpdateStatus_DeliveredKeepsTrackingNumber(t *testing.T) {
	o := createTestOrder(t)
	moveTo(t, o, OrderStatusConfirmed, OrderStatusProcessing)
	require.NoError(t, o.UpdateTracking(TrackingUpdate{TrackingNumber: "TRK-778812", Carrier: "Aramex"}))
	moveTo(t, o, OrderStatusShipped)

	require.NoError(t, o.UpdateStatus(OrderStatusDelivered, StatusUpdate{}))

	assert.Equal(t, OrderStatusDelivered, o.Status)
	assert.Equal(t, "TRK-778812", o.Tracking.TrackingNumber)
	assert.Equal(t, "Aramex", o.Tracking.Carrier)
}

func TestOrder_UpdateStatus_SameShippingStatusWithMetadata(t *testing.T) {
	o := createTestOrder(t)
	moveTo(t, o, OrderStatusConfirmed, OrderStatusShipped)

	require.NoError(t, o.UpdateStatus(OrderStatusShipped, StatusUpdate{Carrier: "FedEx"}))
	assert.Equal(t, "FedEx", o.Tracking.Carrier)
	require.Len(t, o.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeOrderTrackingUpdated, o.GetDomainEvents()[0].EventType())

	err := o.UpdateStatus(OrderStatusShipped, StatusUpdate{})
	assertTransitionError(t, err, OrderStatusShipped, OrderStatusShipped)
}

func TestOrder_UpdateStatus_CancelledRoutesToCancel(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.UpdateStatus(OrderStatusCancelled, StatusUpdate{}))
	assert.Equal(t, OrderStatusCancelled, o.Status)
	assert.Equal(t, "Cancelled by seller", o.CancelReason)
}

// ============================================
// Tracking Tests
// ============================================

func TestOrder_UpdateTracking_NeverErases(t *testing.T) {
	o := createTestOrder(t)
	moveTo(t, o, OrderStatusConfirmed)
	eta := time.Now().Add(24 * time.Hour)

	require.NoError(t, o.UpdateTracking(TrackingUpdate{TrackingNumber: "TRK-1", Carrier: "DHL", EstimatedDelivery: &eta}))
	require.NoError(t, o.UpdateTracking(TrackingUpdate{CurrentLocation: "Kampala"}))

	assert.Equal(t, "TRK-1", o.Tracking.TrackingNumber)
	assert.Equal(t, "DHL", o.Tracking.Carrier)
	assert.NotNil(t, o.Tracking.EstimatedDelivery)
	assert.Equal(t, "Kampala", o.Tracking.CurrentLocation)
}

func TestOrder_UpdateTracking_WithStatusMove(t *testing.T) {
	o := createTestOrder(t)
	moveTo(t, o, OrderStatusConfirmed, OrderStatusProcessing)
	shipped := OrderStatusShipped

	require.NoError(t, o.UpdateTracking(TrackingUpdate{TrackingNumber: "TRK-9", Status: &shipped, CurrentLocation: "Depot"}))
	assert.Equal(t, OrderStatusShipped, o.Status)
	assert.Equal(t, "TRK-9", o.Tracking.TrackingNumber)
	// one entry for the status move, none duplicated by the tracking merge
	last := o.StatusHistory[len(o.StatusHistory)-1]
	assert.Equal(t, OrderStatusShipped, last.Status)
	assert.Equal(t, "Depot", last.Location)
	assert.Len(t, o.StatusHistory, 4)
}

func TestOrder_UpdateTracking_IllegalStatusLeavesTrackingUntouched(t *testing.T) {
	o := createTestOrder(t)
	delivered := OrderStatusDelivered

	err := o.UpdateTracking(TrackingUpdate{TrackingNumber: "TRK-2", Status: &delivered})
	assertTransitionError(t, err, OrderStatusPending, OrderStatusDelivered)
	assert.Empty(t, o.Tracking.TrackingNumber)
}

func TestOrder_UpdateTracking_CancelledOrder(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.Cancel("changed my mind"))

	err := o.UpdateTracking(TrackingUpdate{TrackingNumber: "TRK-3"})
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

// ============================================
// Cancel Tests
// ============================================

func TestOrder_Cancel(t *testing.T) {
	t.Run("pending order", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Cancel("ordered the wrong colour"))
		assert.Equal(t, OrderStatusCancelled, o.Status)
		assert.NotNil(t, o.CancelledAt)
		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		cancelled := events[0].(*OrderCancelledEvent)
		assert.Equal(t, OrderStatusPending, cancelled.PreviousStatus)
	})

	t.Run("requires reason", func(t *testing.T) {
		o := createTestOrder(t)
		err := o.Cancel("  ")
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_REASON", domainErr.Code)
	})

	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		o := createTestOrder(t)
		moveTo(t, o, OrderStatusConfirmed, OrderStatusShipped)
		assertTransitionError(t, o.Cancel("too late"), OrderStatusShipped, OrderStatusCancelled)
	})
}

// ============================================
// Shipping Quote Tests
// ============================================

func TestOrder_ApplyShippingQuote(t *testing.T) {
	o := createTestOrder(t)
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, o.ApplyShippingQuote(first, decimal.NewFromInt(1500), 3))
	require.NotNil(t, o.SelectedQuoteID)
	assert.Equal(t, first, *o.SelectedQuoteID)
	assert.True(t, decimal.NewFromInt(1500).Equal(o.ShippingCost))
	require.NotNil(t, o.Tracking.EstimatedDelivery)

	require.NoError(t, o.ApplyShippingQuote(second, decimal.NewFromInt(900), 5))
	assert.Equal(t, second, *o.SelectedQuoteID)
	assert.True(t, decimal.NewFromInt(900).Equal(o.ShippingCost))
	assert.True(t, o.GrandTotal().Equal(o.TotalAmount.Add(decimal.NewFromInt(900))))

	events := o.GetDomainEvents()
	require.Len(t, events, 2)
	selected := events[1].(*OrderShippingQuoteSelectedEvent)
	require.NotNil(t, selected.PreviousQuoteID)
	assert.Equal(t, first, *selected.PreviousQuoteID)
}

func TestOrder_ApplyShippingQuote_ReselectionMovesEstimate(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.ApplyShippingQuote(uuid.New(), decimal.NewFromInt(10), 10))
	require.NotNil(t, o.Tracking.EstimatedDelivery)
	slow := *o.Tracking.EstimatedDelivery

	require.NoError(t, o.ApplyShippingQuote(uuid.New(), decimal.NewFromInt(20), 2))
	require.NotNil(t, o.Tracking.EstimatedDelivery)
	fast := *o.Tracking.EstimatedDelivery

	assert.True(t, fast.Before(slow), "estimate follows the newly selected quote")
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 2), fast, time.Minute)
	assert.True(t, decimal.NewFromInt(20).Equal(o.ShippingCost))
}

func TestOrder_ApplyShippingQuote_KeepsSellerEstimate(t *testing.T) {
	o := createTestOrder(t)
	sellerETA := time.Now().AddDate(0, 0, 30)
	o.Tracking.EstimatedDelivery = &sellerETA

	require.NoError(t, o.ApplyShippingQuote(uuid.New(), decimal.NewFromInt(10), 3))
	require.NotNil(t, o.Tracking.EstimatedDelivery)
	assert.True(t, sellerETA.Equal(*o.Tracking.EstimatedDelivery))
}

func TestOrder_ApplyShippingQuote_Idempotent(t *testing.T) {
	o := createTestOrder(t)
	q := uuid.New()
	require.NoError(t, o.ApplyShippingQuote(q, decimal.NewFromInt(10), 1))
	require.NoError(t, o.ApplyShippingQuote(q, decimal.NewFromInt(10), 1))
	assert.Len(t, o.GetDomainEvents(), 1)
}

func TestOrder_ApplyShippingQuote_AfterShipping(t *testing.T) {
	o := createTestOrder(t)
	moveTo(t, o, OrderStatusConfirmed, OrderStatusShipped)

	err := o.ApplyShippingQuote(uuid.New(), decimal.NewFromInt(10), 1)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

// ============================================
// Buyer Affordance Tests
// ============================================

func TestOrder_BuyerActions(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		actions []BuyerAction
	}{
		{OrderStatusPending, []BuyerAction{BuyerActionCancel}},
		{OrderStatusConfirmed, []BuyerAction{BuyerActionTrack}},
		{OrderStatusProcessing, []BuyerAction{BuyerActionTrack}},
		{OrderStatusShipped, []BuyerAction{BuyerActionTrack}},
		{OrderStatusOutForDelivery, []BuyerAction{BuyerActionTrack}},
		{OrderStatusDelivered, []BuyerAction{}},
		{OrderStatusCancelled, []BuyerAction{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			o := &Order{Status: tt.status}
			assert.Equal(t, tt.actions, o.BuyerActions())
		})
	}
}
