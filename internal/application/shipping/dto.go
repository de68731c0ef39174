package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// ==================== Quote DTOs ====================

// SubmitQuoteInput is what a shipping company sends to quote on an order
type SubmitQuoteInput struct {
	OrderID               uuid.UUID       `json:"orderId" binding:"required"`
	Price                 decimal.Decimal `json:"price" binding:"required"`
	EstimatedDeliveryDays int             `json:"estimatedDeliveryDays" binding:"required,min=1,max=365"`
	Notes                 string          `json:"notes" binding:"max=1000"`
}

// SelectQuoteInput picks one quote for an order
type SelectQuoteInput struct {
	QuoteID uuid.UUID `json:"quoteId" binding:"required"`
}

// QuoteResponse represents a shipping quote in API responses
type QuoteResponse struct {
	ID                    uuid.UUID       `json:"id"`
	OrderID               uuid.UUID       `json:"orderId"`
	ShippingCompanyID     uuid.UUID       `json:"shippingCompanyId"`
	Price                 decimal.Decimal `json:"price"`
	EstimatedDeliveryDays int             `json:"estimatedDeliveryDays"`
	Notes                 string          `json:"notes,omitempty"`
	Status                string          `json:"status"`
	Selected              bool            `json:"selected"`
	RejectionReason       string          `json:"rejectionReason,omitempty"`
	AcceptedAt            *time.Time      `json:"acceptedAt,omitempty"`
	CompletedAt           *time.Time      `json:"completedAt,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
	Version               int             `json:"version"`
}

// SelectQuoteResponse reports the outcome of a selection
type SelectQuoteResponse struct {
	Selected     QuoteResponse   `json:"selected"`
	Superseded   *QuoteResponse  `json:"superseded,omitempty"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	OrderVersion int             `json:"orderVersion"`
}

// ToQuoteResponse converts a domain quote to a response
func ToQuoteResponse(q *shipping.ShippingQuote) QuoteResponse {
	return QuoteResponse{
		ID:                    q.ID,
		OrderID:               q.OrderID,
		ShippingCompanyID:     q.ShippingCompanyID,
		Price:                 q.Price,
		EstimatedDeliveryDays: q.EstimatedDeliveryDays,
		Notes:                 q.Notes,
		Status:                string(q.Status),
		Selected:              q.IsSelected(),
		RejectionReason:       q.RejectionReason,
		AcceptedAt:            q.AcceptedAt,
		CompletedAt:           q.CompletedAt,
		CreatedAt:             q.CreatedAt,
		UpdatedAt:             q.UpdatedAt,
		Version:               q.Version,
	}
}

// ToQuoteResponses converts a slice of quotes
func ToQuoteResponses(quotes []shipping.ShippingQuote) []QuoteResponse {
	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}
	return responses
}

// ==================== Company DTOs ====================

// RegisterCompanyInput registers the caller's shipping company
type RegisterCompanyInput struct {
	Name               string   `json:"name" binding:"required,min=1,max=200"`
	Email              string   `json:"email" binding:"omitempty,email"`
	Phone              string   `json:"phone" binding:"omitempty,max=50"`
	ContactPerson      string   `json:"contactPerson" binding:"max=100"`
	RegistrationNumber string   `json:"registrationNumber" binding:"max=100"`
	Address            string   `json:"address" binding:"max=500"`
	Description        string   `json:"description" binding:"max=2000"`
	Website            string   `json:"website" binding:"omitempty,url"`
	ServiceAreas       []string `json:"serviceAreas"`
}

// ChangeCompanyStatusInput is an admin verification decision
type ChangeCompanyStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending_verification verified rejected suspended"`
	Reason string `json:"reason" binding:"max=500"`
}

// CompanyListFilter narrows the admin company list
type CompanyListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending_verification verified rejected suspended"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// CompanyStatsResponse carries delivery performance
type CompanyStatsResponse struct {
	CompletedDeliveries int             `json:"completedDeliveries"`
	RatingCount         int             `json:"ratingCount"`
	AverageRating       decimal.Decimal `json:"averageRating"`
}

// CompanyResponse represents a shipping company in API responses
type CompanyResponse struct {
	ID                 uuid.UUID            `json:"id"`
	UserID             uuid.UUID            `json:"userId"`
	Name               string               `json:"name"`
	Email              string               `json:"email,omitempty"`
	Phone              string               `json:"phone,omitempty"`
	ContactPerson      string               `json:"contactPerson,omitempty"`
	RegistrationNumber string               `json:"registrationNumber,omitempty"`
	Address            string               `json:"address,omitempty"`
	Description        string               `json:"description,omitempty"`
	Website            string               `json:"website,omitempty"`
	ServiceAreas       []string             `json:"serviceAreas"`
	Status             string               `json:"status"`
	StatusReason       string               `json:"statusReason,omitempty"`
	Stats              CompanyStatsResponse `json:"stats"`
	VerifiedAt         *time.Time           `json:"verifiedAt,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	Version            int                  `json:"version"`
}

// ToCompanyResponse converts a domain company to a response
func ToCompanyResponse(c *shipping.ShippingCompany) CompanyResponse {
	areas := c.ServiceAreas
	if areas == nil {
		areas = []string{}
	}
	return CompanyResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		Name:               c.Name,
		Email:              c.Contact.Email,
		Phone:              c.Contact.Phone,
		ContactPerson:      c.Contact.ContactPerson,
		RegistrationNumber: c.Company.RegistrationNumber,
		Address:            c.Company.Address,
		Description:        c.Company.Description,
		Website:            c.Company.Website,
		ServiceAreas:       areas,
		Status:             string(c.Status),
		StatusReason:       c.StatusReason,
		Stats: CompanyStatsResponse{
			CompletedDeliveries: c.Stats.CompletedDeliveries,
			RatingCount:         c.Stats.RatingCount,
			AverageRating:       c.Stats.AverageRating(),
		},
		VerifiedAt: c.VerifiedAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Version:    c.Version,
	}
}

// ToCompanyResponses converts a slice of companies
func ToCompanyResponses(companies []shipping.ShippingCompany) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}
