package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ShippingQuoteRepository defines the persistence contract for quotes
type ShippingQuoteRepository interface {
	// FindByID finds a quote within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ShippingQuote, error)

	// FindByOrder returns every quote of an order in submission order
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]ShippingQuote, error)

	// FindByCompany lists a company's quotes, newest first
	FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]ShippingQuote, int64, error)

	// ExistsPendingForCompany reports whether the company already has a pending quote on the order
	ExistsPendingForCompany(ctx context.Context, tenantID, orderID, companyID uuid.UUID) (bool, error)

	// Save creates or updates a quote
	Save(ctx context.Context, quote *ShippingQuote) error

	// SaveAll saves several quotes atomically
	SaveAll(ctx context.Context, quotes []*ShippingQuote) error
}

// ShippingCompanyRepository defines the persistence contract for shipping companies
type ShippingCompanyRepository interface {
	// FindByID finds a company within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ShippingCompany, error)

	// FindByUserID finds the company owned by a user account
	FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*ShippingCompany, error)

	// FindAll lists companies; Status narrows by CompanyStatus
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ShippingCompany, int64, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *ShippingCompany) error

	// SaveWithLock saves only if the stored version still matches
	SaveWithLock(ctx context.Context, company *ShippingCompany) error
}
