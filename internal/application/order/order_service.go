package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/event"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
)

// OrderService handles buyer-facing order operations
type OrderService struct {
	orderRepo   order.OrderRepository
	quoteRepo   shipping.ShippingQuoteRepository
	companyRepo shipping.ShippingCompanyRepository
	dispatcher  *event.Dispatcher
	tracking    *TrackingService
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	quoteRepo shipping.ShippingQuoteRepository,
	companyRepo shipping.ShippingCompanyRepository,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		quoteRepo:   quoteRepo,
		companyRepo: companyRepo,
	}
}

// SetDispatcher sets the event dispatcher
func (s *OrderService) SetDispatcher(d *event.Dispatcher) {
	s.dispatcher = d
}

// SetTrackingService lets order writes invalidate cached tracking views
func (s *OrderService) SetTrackingService(t *TrackingService) {
	s.tracking = t
}

// CreateOrder places a pending order for the calling buyer
func (s *OrderService) CreateOrder(ctx context.Context, session identity.Session, input CreateOrderInput) (*OrderResponse, error) {
	if !session.IsBuyer() {
		return nil, shared.ErrForbidden
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx, session.TenantID)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemInput, len(input.Items))
	for i, it := range input.Items {
		items[i] = order.ItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		}
	}
	a := input.ShippingAddress
	o, err := order.NewOrder(session.TenantID, orderNumber, session.UserID, input.SellerID, items, order.ShippingAddress{
		Name:       a.Name,
		Phone:      a.Phone,
		Email:      a.Email,
		Line1:      a.Line1,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, o)

	response := ToOrderResponse(o)
	return &response, nil
}

// GetOrder returns an order to its buyer, its seller, an admin, or a
// verified shipping company that may quote on it or already has
func (s *OrderService) GetOrder(ctx context.Context, session identity.Session, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, orderID)
	if err != nil {
		return nil, err
	}

	allowed := session.CanActAsBuyer(o.BuyerID) || session.CanActAsSeller(o.SellerID)
	if !allowed && session.IsShippingCompany() {
		allowed, err = s.companyMayView(ctx, session, o)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ListBuyerOrders returns the buyer's order page with empty-state copy and per-order actions
func (s *OrderService) ListBuyerOrders(ctx context.Context, session identity.Session, query OrderListFilter) (*BuyerOrderListView, error) {
	if !session.IsBuyer() {
		return nil, shared.ErrForbidden
	}
	filter, err := query.ToFilter()
	if err != nil {
		return nil, err
	}

	orders, total, err := s.orderRepo.FindByBuyer(ctx, session.TenantID, session.UserID, filter)
	if err != nil {
		return nil, err
	}

	view := &BuyerOrderListView{
		Orders:   make([]BuyerOrderCard, len(orders)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for i := range orders {
		view.Orders[i] = ToBuyerOrderCard(&orders[i])
	}
	if total == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyOrdersMessage
		view.CallToAction = EmptyOrdersCTA
	}
	return view, nil
}

// CancelOrder cancels the buyer's own order while it is still pending
func (s *OrderService) CancelOrder(ctx context.Context, session identity.Session, orderID uuid.UUID, input CancelOrderInput) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !session.CanActAsBuyer(o.BuyerID) {
		return nil, shared.ErrForbidden
	}
	// buyers only get the cancel action on pending orders
	if !session.IsAdmin() && o.Status != order.OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}

	reason := input.Reason
	if reason == "" {
		reason = "Cancelled by buyer"
	}
	if err := o.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, o)
	if s.tracking != nil {
		s.tracking.Invalidate(ctx, session.TenantID, o.ID)
	}

	response := ToOrderResponse(o)
	return &response, nil
}

func (s *OrderService) companyMayView(ctx context.Context, session identity.Session, o *order.Order) (bool, error) {
	company, err := s.companyRepo.FindByUserID(ctx, session.TenantID, session.UserID)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if company.CanQuote() && o.AcceptsShippingQuotes() {
		return true, nil
	}

	quotes, err := s.quoteRepo.FindByOrder(ctx, session.TenantID, o.ID)
	if err != nil {
		return false, err
	}
	for _, q := range quotes {
		if q.ShippingCompanyID == company.ID {
			return true, nil
		}
	}
	return false, nil
}
