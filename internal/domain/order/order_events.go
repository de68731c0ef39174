package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated               = "OrderCreated"
	EventTypeOrderStatusChanged         = "OrderStatusChanged"
	EventTypeOrderTrackingUpdated       = "OrderTrackingUpdated"
	EventTypeOrderCancelled             = "OrderCancelled"
	EventTypeOrderShippingQuoteSelected = "OrderShippingQuoteSelected"
)

// OrderCreatedEvent is raised when a buyer checks out
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	SellerID    uuid.UUID       `json:"seller_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is raised on every successful status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID           uuid.UUID   `json:"order_id"`
	OrderNumber       string      `json:"order_number"`
	BuyerID           uuid.UUID   `json:"buyer_id"`
	SellerID          uuid.UUID   `json:"seller_id"`
	BuyerEmail        string      `json:"buyer_email,omitempty"`
	FromStatus        OrderStatus `json:"from_status"`
	ToStatus          OrderStatus `json:"to_status"`
	Carrier           string      `json:"carrier,omitempty"`
	TrackingNumber    string      `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
	SelectedQuoteID   *uuid.UUID  `json:"selected_quote_id,omitempty"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:           o.ID,
		OrderNumber:       o.OrderNumber,
		BuyerID:           o.BuyerID,
		SellerID:          o.SellerID,
		BuyerEmail:        o.ShippingAddress.Email,
		FromStatus:        from,
		ToStatus:          o.Status,
		Carrier:           o.Tracking.Carrier,
		TrackingNumber:    o.Tracking.TrackingNumber,
		EstimatedDelivery: o.Tracking.EstimatedDelivery,
		SelectedQuoteID:   o.SelectedQuoteID,
	}
}

// OrderTrackingUpdatedEvent is raised when tracking details change without a status move
type OrderTrackingUpdatedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID   `json:"order_id"`
	Status          OrderStatus `json:"status"`
	TrackingNumber  string      `json:"tracking_number,omitempty"`
	Carrier         string      `json:"carrier,omitempty"`
	CurrentLocation string      `json:"current_location,omitempty"`
}

// NewOrderTrackingUpdatedEvent creates a new OrderTrackingUpdatedEvent
func NewOrderTrackingUpdatedEvent(o *Order) *OrderTrackingUpdatedEvent {
	return &OrderTrackingUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderTrackingUpdated, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		Status:          o.Status,
		TrackingNumber:  o.Tracking.TrackingNumber,
		Carrier:         o.Tracking.Carrier,
		CurrentLocation: o.Tracking.CurrentLocation,
	}
}

// OrderCancelledEvent is raised when an order is cancelled by buyer or seller
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID   `json:"order_id"`
	OrderNumber    string      `json:"order_number"`
	BuyerID        uuid.UUID   `json:"buyer_id"`
	BuyerEmail     string      `json:"buyer_email,omitempty"`
	PreviousStatus OrderStatus `json:"previous_status"`
	Reason         string      `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, previous OrderStatus) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerID:         o.BuyerID,
		BuyerEmail:      o.ShippingAddress.Email,
		PreviousStatus:  previous,
		Reason:          o.CancelReason,
	}
}

// OrderShippingQuoteSelectedEvent is raised when the buyer picks or changes the shipping quote
type OrderShippingQuoteSelectedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	BuyerEmail      string          `json:"buyer_email,omitempty"`
	QuoteID         uuid.UUID       `json:"quote_id"`
	PreviousQuoteID *uuid.UUID      `json:"previous_quote_id,omitempty"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
}

// NewOrderShippingQuoteSelectedEvent creates a new OrderShippingQuoteSelectedEvent
func NewOrderShippingQuoteSelectedEvent(o *Order, previous *uuid.UUID) *OrderShippingQuoteSelectedEvent {
	return &OrderShippingQuoteSelectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShippingQuoteSelected, AggregateTypeOrder, o.ID, o.TenantID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		BuyerEmail:      o.ShippingAddress.Email,
		QuoteID:         *o.SelectedQuoteID,
		PreviousQuoteID: previous,
		ShippingCost:    o.ShippingCost,
	}
}
