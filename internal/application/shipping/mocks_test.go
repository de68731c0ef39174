package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	args := m.Called(ctx, tenantID, buyerID, filter)
	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindBySeller(ctx context.Context, tenantID, sellerID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	args := m.Called(ctx, tenantID, sellerID, filter)
	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockQuoteRepository is a mock implementation of shipping.ShippingQuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shipping.ShippingQuote, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingQuote), args.Error(1)
}

func (m *MockQuoteRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]shipping.ShippingQuote, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Get(0).([]shipping.ShippingQuote), args.Error(1)
}

func (m *MockQuoteRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]shipping.ShippingQuote, int64, error) {
	args := m.Called(ctx, tenantID, companyID, filter)
	return args.Get(0).([]shipping.ShippingQuote), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteRepository) ExistsPendingForCompany(ctx context.Context, tenantID, orderID, companyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, orderID, companyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, quote *shipping.ShippingQuote) error {
	return m.Called(ctx, quote).Error(0)
}

func (m *MockQuoteRepository) SaveAll(ctx context.Context, quotes []*shipping.ShippingQuote) error {
	return m.Called(ctx, quotes).Error(0)
}

// MockCompanyRepository is a mock implementation of shipping.ShippingCompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shipping.ShippingCompany, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingCompany), args.Error(1)
}

func (m *MockCompanyRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*shipping.ShippingCompany, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.ShippingCompany), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]shipping.ShippingCompany, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]shipping.ShippingCompany), args.Get(1).(int64), args.Error(2)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *shipping.ShippingCompany) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepository) SaveWithLock(ctx context.Context, company *shipping.ShippingCompany) error {
	return m.Called(ctx, company).Error(0)
}
