package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderRepository defines the persistence contract for orders
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByBuyer lists a buyer's orders, newest first, with the total count
	FindByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// FindBySeller lists a seller's orders, newest first, with the total count
	FindBySeller(ctx context.Context, tenantID, sellerID uuid.UUID, filter shared.Filter) ([]Order, int64, error)

	// Save creates or updates an order with its items and history
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves only if the stored version still matches order.Version,
	// returning shared.ErrConcurrencyConflict otherwise
	SaveWithLock(ctx context.Context, order *Order) error

	// GenerateOrderNumber returns the next ORD-YYYY-NNNNN number for a tenant
	GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
