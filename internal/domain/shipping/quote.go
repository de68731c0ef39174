package shipping

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the status of a shipping quote
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCompleted QuoteStatus = "completed"
)

// MaxQuoteNotesLength caps free-text notes on a quote
const MaxQuoteNotesLength = 1000

var quoteTransitions = shared.NewTransitionTable(AggregateTypeShippingQuote, map[QuoteStatus][]QuoteStatus{
	QuoteStatusPending:  {QuoteStatusAccepted, QuoteStatusRejected},
	QuoteStatusAccepted: {QuoteStatusCompleted, QuoteStatusRejected},
})

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the declared quote transition table
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	return quoteTransitions.Allows(s, target)
}

// ShippingQuote is a price/time offer a shipping company makes against an order
type ShippingQuote struct {
	shared.TenantAggregateRoot
	OrderID               uuid.UUID
	ShippingCompanyID     uuid.UUID
	Price                 decimal.Decimal
	EstimatedDeliveryDays int
	Notes                 string
	Status                QuoteStatus
	RejectionReason       string
	AcceptedAt            *time.Time
	CompletedAt           *time.Time
}

// NewShippingQuote creates a pending quote
func NewShippingQuote(tenantID, orderID, companyID uuid.UUID, price decimal.Decimal, estimatedDeliveryDays int, notes string) (*ShippingQuote, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPPING_COMPANY", "Shipping company is required")
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Quote price must be positive")
	}
	if estimatedDeliveryDays < 1 {
		return nil, shared.NewDomainError("INVALID_DELIVERY_DAYS", "Estimated delivery days must be at least 1")
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxQuoteNotesLength {
		return nil, shared.NewDomainError("INVALID_NOTES", fmt.Sprintf("Notes cannot exceed %d characters", MaxQuoteNotesLength))
	}

	q := &ShippingQuote{
		TenantAggregateRoot:   shared.NewTenantAggregateRoot(tenantID),
		OrderID:               orderID,
		ShippingCompanyID:     companyID,
		Price:                 price,
		EstimatedDeliveryDays: estimatedDeliveryDays,
		Notes:                 notes,
		Status:                QuoteStatusPending,
	}

	q.AddDomainEvent(NewQuoteSubmittedEvent(q))

	return q, nil
}

// Accept marks the quote as the order's selected shipping
func (q *ShippingQuote) Accept() error {
	if err := quoteTransitions.Check(q.Status, QuoteStatusAccepted); err != nil {
		return err
	}
	now := time.Now()
	q.Status = QuoteStatusAccepted
	q.AcceptedAt = &now
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, QuoteStatusPending))
	return nil
}

// Reject declines the quote. An accepted quote can be rejected when a newer
// selection supersedes it.
func (q *ShippingQuote) Reject(reason string) error {
	previous := q.Status
	if err := quoteTransitions.Check(q.Status, QuoteStatusRejected); err != nil {
		return err
	}
	now := time.Now()
	q.Status = QuoteStatusRejected
	q.RejectionReason = strings.TrimSpace(reason)
	q.AcceptedAt = nil
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, previous))
	return nil
}

// Complete marks the accepted quote as fulfilled
func (q *ShippingQuote) Complete() error {
	if err := quoteTransitions.Check(q.Status, QuoteStatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	q.Status = QuoteStatusCompleted
	q.CompletedAt = &now
	q.UpdatedAt = now

	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, QuoteStatusAccepted))
	return nil
}

// IsSelected reports whether the quote is, or was, the order's chosen shipping
func (q *ShippingQuote) IsSelected() bool {
	return q.Status == QuoteStatusAccepted || q.Status == QuoteStatusCompleted
}

// IsPending returns true while the quote awaits a decision
func (q *ShippingQuote) IsPending() bool {
	return q.Status == QuoteStatusPending
}
