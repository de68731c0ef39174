package order

import (
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle status of a marketplace order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Stages is the fixed progress sequence shown to buyers.
// Cancelled is a side state and never appears here.
var Stages = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// ShippingStatuses are the statuses that accept carrier and ETA metadata
var ShippingStatuses = []OrderStatus{
	OrderStatusShipped,
	OrderStatusOutForDelivery,
}

// trackableStatuses are the statuses for which buyers are offered tracking
var trackableStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
}

// transitions declares every legal status move
var transitions = shared.NewTransitionTable(AggregateTypeOrder, map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusOutForDelivery, OrderStatusDelivered},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
})

// ParseOrderStatus normalizes and validates a raw status string
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+raw)
	}
	return s, nil
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the declared transition table
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return transitions.Allows(s, target)
}

// NextStatuses lists the statuses reachable from s in one step
func (s OrderStatus) NextStatuses() []OrderStatus {
	return transitions.Next(s)
}

// IsTerminal returns true for delivered and cancelled. Unknown values are not terminal.
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && transitions.IsTerminal(s)
}

// IsShippingStatus reports whether carrier/ETA metadata applies to s
func (s OrderStatus) IsShippingStatus() bool {
	for _, st := range ShippingStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsTrackable reports whether buyers are offered tracking at status s
func (s OrderStatus) IsTrackable() bool {
	for _, st := range trackableStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// StageIndex returns the position of status in Stages, or -1 for cancelled
// and unrecognized values.
func StageIndex(status OrderStatus) int {
	for i, st := range Stages {
		if st == status {
			return i
		}
	}
	return -1
}

// ProgressStep is one stage of the tracker. Completed covers every stage up to
// and including the current one; Current marks only the current stage.
type ProgressStep struct {
	Status    OrderStatus
	Completed bool
	Current   bool
}

// OrderProgress is the tracker view of an order's status
type OrderProgress struct {
	CurrentIndex int
	Cancelled    bool
	Steps        []ProgressStep
}

// Progress computes the tracker steps for a status
func Progress(status OrderStatus) OrderProgress {
	idx := StageIndex(status)
	steps := make([]ProgressStep, len(Stages))
	for i, st := range Stages {
		steps[i] = ProgressStep{
			Status:    st,
			Completed: idx >= 0 && i <= idx,
			Current:   i == idx,
		}
	}
	return OrderProgress{
		CurrentIndex: idx,
		Cancelled:    status == OrderStatusCancelled,
		Steps:        steps,
	}
}
