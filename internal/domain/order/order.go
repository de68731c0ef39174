package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is a product line captured at checkout.
// Name and price are snapshots; the catalog may change afterwards.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

// ItemInput describes a line to place on a new order
type ItemInput struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// ShippingAddress is where the buyer wants the wallpaper delivered
type ShippingAddress struct {
	Name       string
	Phone      string
	Email      string
	Line1      string
	City       string
	PostalCode string
	Country    string
}

// Validate checks the address has enough to ship to
func (a ShippingAddress) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Recipient name is required")
	}
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Street address and city are required")
	}
	return nil
}

// TrackingInfo is the carrier-side state of a shipment
type TrackingInfo struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
	CurrentLocation   string
}

// IsEmpty reports whether nothing has been recorded yet
func (t TrackingInfo) IsEmpty() bool {
	return t.TrackingNumber == "" && t.Carrier == "" && t.EstimatedDelivery == nil && t.CurrentLocation == ""
}

// merge overlays the non-empty fields of src. Empty values never erase what is
// already recorded.
func (t TrackingInfo) merge(src TrackingInfo) (TrackingInfo, bool) {
	changed := false
	if v := strings.TrimSpace(src.TrackingNumber); v != "" && v != t.TrackingNumber {
		t.TrackingNumber = v
		changed = true
	}
	if v := strings.TrimSpace(src.Carrier); v != "" && v != t.Carrier {
		t.Carrier = v
		changed = true
	}
	if src.EstimatedDelivery != nil && (t.EstimatedDelivery == nil || !src.EstimatedDelivery.Equal(*t.EstimatedDelivery)) {
		eta := *src.EstimatedDelivery
		t.EstimatedDelivery = &eta
		changed = true
	}
	if v := strings.TrimSpace(src.CurrentLocation); v != "" && v != t.CurrentLocation {
		t.CurrentLocation = v
		changed = true
	}
	return t, changed
}

// StatusHistoryEntry records one status change, oldest first on the order
type StatusHistoryEntry struct {
	ID        uuid.UUID
	Status    OrderStatus
	Note      string
	Location  string
	Timestamp time.Time
}

// StatusUpdate carries the optional metadata of a seller status change.
// Carrier and EstimatedDelivery are only applied for shipping statuses.
type StatusUpdate struct {
	Carrier           string
	EstimatedDelivery *time.Time
	Note              string
	Location          string
}

func (u StatusUpdate) hasShippingMetadata() bool {
	return strings.TrimSpace(u.Carrier) != "" || u.EstimatedDelivery != nil
}

// TrackingUpdate is an admin or seller edit of tracking details, optionally
// combined with a status move.
type TrackingUpdate struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
	CurrentLocation   string
	Status            *OrderStatus
	Note              string
}

// BuyerAction is an affordance offered on the buyer's order list
type BuyerAction string

const (
	BuyerActionCancel BuyerAction = "cancel"
	BuyerActionTrack  BuyerAction = "track"
)

// Order is the marketplace order aggregate root.
// It is never deleted; it ends either delivered or cancelled.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber     string
	BuyerID         uuid.UUID
	SellerID        uuid.UUID
	Items           []OrderItem
	Quantity        int
	TotalAmount     decimal.Decimal
	ShippingCost    decimal.Decimal
	ShippingAddress ShippingAddress
	Status          OrderStatus
	Tracking        TrackingInfo
	StatusHistory   []StatusHistoryEntry
	SelectedQuoteID *uuid.UUID
	CancelReason    string
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// NewOrder places a new order in pending status
func NewOrder(tenantID uuid.UUID, orderNumber string, buyerID, sellerID uuid.UUID, items []ItemInput, address ShippingAddress) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must contain at least one item")
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		BuyerID:             buyerID,
		SellerID:            sellerID,
		Items:               make([]OrderItem, 0, len(items)),
		TotalAmount:         decimal.Zero,
		ShippingCost:        decimal.Zero,
		ShippingAddress:     address,
		Status:              OrderStatusPending,
		StatusHistory:       make([]StatusHistoryEntry, 0, len(Stages)),
	}

	for _, in := range items {
		if in.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if strings.TrimSpace(in.ProductName) == "" {
			return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
		}
		if in.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		if in.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		o.Items = append(o.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     o.ID,
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			UnitPrice:   in.UnitPrice,
			Quantity:    in.Quantity,
			Subtotal:    in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		})
	}
	o.recalculateTotals()
	o.appendHistory(OrderStatusPending, "Order placed", "", o.CreatedAt)

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// UpdateStatus moves the order through the declared transition table.
// Re-submitting the current shipping status is accepted when it carries new
// carrier or ETA metadata.
func (o *Order) UpdateStatus(newStatus OrderStatus, update StatusUpdate) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", newStatus))
	}

	if newStatus == OrderStatusCancelled {
		reason := strings.TrimSpace(update.Note)
		if reason == "" {
			reason = "Cancelled by seller"
		}
		return o.Cancel(reason)
	}

	if newStatus == o.Status {
		if !newStatus.IsShippingStatus() || !update.hasShippingMetadata() {
			return transitions.Check(o.Status, newStatus)
		}
		o.applyTracking(TrackingInfo{
			Carrier:           update.Carrier,
			EstimatedDelivery: update.EstimatedDelivery,
			CurrentLocation:   update.Location,
		}, update.Note, true)
		return nil
	}

	if err := transitions.Check(o.Status, newStatus); err != nil {
		return err
	}

	now := time.Now()
	previous := o.Status
	o.Status = newStatus
	o.stampStatus(newStatus, now)

	incoming := TrackingInfo{CurrentLocation: update.Location}
	if newStatus.IsShippingStatus() {
		incoming.Carrier = update.Carrier
		incoming.EstimatedDelivery = update.EstimatedDelivery
	}
	o.Tracking, _ = o.Tracking.merge(incoming)

	o.appendHistory(newStatus, update.Note, update.Location, now)
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// UpdateTracking applies an admin/seller tracking edit. When Status is set and
// differs from the current status the move goes through the transition table
// first, so a rejected move leaves tracking untouched.
func (o *Order) UpdateTracking(update TrackingUpdate) error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot update tracking of a cancelled order")
	}

	statusMoved := update.Status != nil && *update.Status != o.Status
	if statusMoved {
		if err := o.UpdateStatus(*update.Status, StatusUpdate{
			Note:     update.Note,
			Location: update.CurrentLocation,
		}); err != nil {
			return err
		}
	}

	o.applyTracking(TrackingInfo{
		TrackingNumber:    update.TrackingNumber,
		Carrier:           update.Carrier,
		EstimatedDelivery: update.EstimatedDelivery,
		CurrentLocation:   update.CurrentLocation,
	}, update.Note, !statusMoved)

	return nil
}

// Cancel cancels the order. Allowed until the parcel has left the seller.
func (o *Order) Cancel(reason string) error {
	if err := transitions.Check(o.Status, OrderStatusCancelled); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	previous := o.Status
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.appendHistory(OrderStatusCancelled, reason, "", now)

	o.AddDomainEvent(NewOrderCancelledEvent(o, previous))

	return nil
}

// ApplyShippingQuote records the buyer's chosen shipping quote. A later call
// replaces the earlier choice along with the delivery estimate it seeded.
// The first selection keeps an estimate the seller already entered.
func (o *Order) ApplyShippingQuote(quoteID uuid.UUID, price decimal.Decimal, estimatedDeliveryDays int) error {
	if !o.AcceptsShippingQuotes() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot select shipping for order in %s status", o.Status))
	}
	if quoteID == uuid.Nil {
		return shared.NewDomainError("INVALID_QUOTE", "Quote ID cannot be empty")
	}
	if o.SelectedQuoteID != nil && *o.SelectedQuoteID == quoteID {
		return nil
	}

	var previous *uuid.UUID
	if o.SelectedQuoteID != nil {
		prev := *o.SelectedQuoteID
		previous = &prev
	}

	now := time.Now()
	id := quoteID
	o.SelectedQuoteID = &id
	o.ShippingCost = price
	if estimatedDeliveryDays > 0 && (o.Tracking.EstimatedDelivery == nil || previous != nil) {
		eta := now.AddDate(0, 0, estimatedDeliveryDays)
		o.Tracking.EstimatedDelivery = &eta
	}
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderShippingQuoteSelectedEvent(o, previous))

	return nil
}

// AcceptsShippingQuotes reports whether quotes may still be submitted or selected
func (o *Order) AcceptsShippingQuotes() bool {
	switch o.Status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing:
		return true
	}
	return false
}

// BuyerActions returns the affordances a buyer gets for this order
func (o *Order) BuyerActions() []BuyerAction {
	actions := make([]BuyerAction, 0, 1)
	if o.Status == OrderStatusPending {
		actions = append(actions, BuyerActionCancel)
	}
	if o.Status.IsTrackable() {
		actions = append(actions, BuyerActionTrack)
	}
	return actions
}

// IsTrackable reports whether the buyer is offered tracking
func (o *Order) IsTrackable() bool {
	return o.Status.IsTrackable()
}

// Progress returns the tracker view for the order
func (o *Order) Progress() OrderProgress {
	return Progress(o.Status)
}

// IsCancelled returns true if order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// IsDelivered returns true if order has been delivered
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// IsTerminal returns true if the order can no longer change status
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// GrandTotal returns goods plus shipping
func (o *Order) GrandTotal() decimal.Decimal {
	return o.TotalAmount.Add(o.ShippingCost)
}

func (o *Order) applyTracking(src TrackingInfo, note string, recordHistory bool) {
	merged, changed := o.Tracking.merge(src)
	if !changed {
		return
	}
	now := time.Now()
	o.Tracking = merged
	o.UpdatedAt = now
	if recordHistory && (note != "" || src.CurrentLocation != "") {
		o.appendHistory(o.Status, note, src.CurrentLocation, now)
	}
	o.AddDomainEvent(NewOrderTrackingUpdatedEvent(o))
}

func (o *Order) stampStatus(status OrderStatus, at time.Time) {
	switch status {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &at
	case OrderStatusShipped:
		o.ShippedAt = &at
	case OrderStatusDelivered:
		o.DeliveredAt = &at
	}
}

func (o *Order) appendHistory(status OrderStatus, note, location string, at time.Time) {
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		ID:        uuid.New(),
		Status:    status,
		Note:      strings.TrimSpace(note),
		Location:  strings.TrimSpace(location),
		Timestamp: at,
	})
}

func (o *Order) recalculateTotals() {
	total := decimal.Zero
	qty := 0
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
		qty += item.Quantity
	}
	o.TotalAmount = total
	o.Quantity = qty
}
