package shipping

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeShippingQuote   = "ShippingQuote"
	AggregateTypeShippingCompany = "ShippingCompany"
)

// Event type constants
const (
	EventTypeQuoteSubmitted       = "ShippingQuoteSubmitted"
	EventTypeQuoteStatusChanged   = "ShippingQuoteStatusChanged"
	EventTypeCompanyRegistered    = "ShippingCompanyRegistered"
	EventTypeCompanyStatusChanged = "ShippingCompanyStatusChanged"
)

// QuoteSubmittedEvent is raised when a shipping company submits a quote
type QuoteSubmittedEvent struct {
	shared.BaseDomainEvent
	QuoteID               uuid.UUID       `json:"quote_id"`
	OrderID               uuid.UUID       `json:"order_id"`
	ShippingCompanyID     uuid.UUID       `json:"shipping_company_id"`
	Price                 decimal.Decimal `json:"price"`
	EstimatedDeliveryDays int             `json:"estimated_delivery_days"`
}

// NewQuoteSubmittedEvent creates a new QuoteSubmittedEvent
func NewQuoteSubmittedEvent(q *ShippingQuote) *QuoteSubmittedEvent {
	return &QuoteSubmittedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeQuoteSubmitted, AggregateTypeShippingQuote, q.ID, q.TenantID),
		QuoteID:               q.ID,
		OrderID:               q.OrderID,
		ShippingCompanyID:     q.ShippingCompanyID,
		Price:                 q.Price,
		EstimatedDeliveryDays: q.EstimatedDeliveryDays,
	}
}

// QuoteStatusChangedEvent is raised on every quote transition
type QuoteStatusChangedEvent struct {
	shared.BaseDomainEvent
	QuoteID           uuid.UUID   `json:"quote_id"`
	OrderID           uuid.UUID   `json:"order_id"`
	ShippingCompanyID uuid.UUID   `json:"shipping_company_id"`
	FromStatus        QuoteStatus `json:"from_status"`
	ToStatus          QuoteStatus `json:"to_status"`
}

// NewQuoteStatusChangedEvent creates a new QuoteStatusChangedEvent
func NewQuoteStatusChangedEvent(q *ShippingQuote, from QuoteStatus) *QuoteStatusChangedEvent {
	return &QuoteStatusChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeQuoteStatusChanged, AggregateTypeShippingQuote, q.ID, q.TenantID),
		QuoteID:           q.ID,
		OrderID:           q.OrderID,
		ShippingCompanyID: q.ShippingCompanyID,
		FromStatus:        from,
		ToStatus:          q.Status,
	}
}

// CompanyRegisteredEvent is raised when a shipping company signs up
type CompanyRegisteredEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// NewCompanyRegisteredEvent creates a new CompanyRegisteredEvent
func NewCompanyRegisteredEvent(c *ShippingCompany) *CompanyRegisteredEvent {
	return &CompanyRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyRegistered, AggregateTypeShippingCompany, c.ID, c.TenantID),
		CompanyID:       c.ID,
		Name:            c.Name,
	}
}

// CompanyStatusChangedEvent is raised when an admin verifies, rejects or suspends a company
type CompanyStatusChangedEvent struct {
	shared.BaseDomainEvent
	CompanyID  uuid.UUID     `json:"company_id"`
	FromStatus CompanyStatus `json:"from_status"`
	ToStatus   CompanyStatus `json:"to_status"`
	Reason     string        `json:"reason,omitempty"`
}

// NewCompanyStatusChangedEvent creates a new CompanyStatusChangedEvent
func NewCompanyStatusChangedEvent(c *ShippingCompany, from CompanyStatus) *CompanyStatusChangedEvent {
	return &CompanyStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyStatusChanged, AggregateTypeShippingCompany, c.ID, c.TenantID),
		CompanyID:       c.ID,
		FromStatus:      from,
		ToStatus:        c.Status,
		Reason:          c.StatusReason,
	}
}
