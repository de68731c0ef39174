package persistence

import (
	"context"

	appshipping "github.com/marketplace/backend/internal/application/shipping"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shipping"
	"gorm.io/gorm"
)

// GormTransactionScope runs quote selection writes in a single GORM transaction
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a transaction; any error rolls everything back
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshipping.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) QuoteRepo() shipping.ShippingQuoteRepository {
	return NewGormShippingQuoteRepository(r.tx)
}

var _ appshipping.TransactionScope = (*GormTransactionScope)(nil)
