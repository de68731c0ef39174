package shipping

import (
	"context"

	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shipping"
)

// TransactionScope provides transactional access to the order and quote repositories.
// Selecting a quote touches every quote of the order and the order itself, so both
// writes must commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories sharing one transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.OrderRepository
	// QuoteRepo returns the shipping quote repository scoped to the current transaction
	QuoteRepo() shipping.ShippingQuoteRepository
}

// NoOpTransactionScope runs the function against plain repositories.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	orderRepo order.OrderRepository
	quoteRepo shipping.ShippingQuoteRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(orderRepo order.OrderRepository, quoteRepo shipping.ShippingQuoteRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{orderRepo: orderRepo, quoteRepo: quoteRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository {
	return s.orderRepo
}

// QuoteRepo returns the shipping quote repository.
func (s *NoOpTransactionScope) QuoteRepo() shipping.ShippingQuoteRepository {
	return s.quoteRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
