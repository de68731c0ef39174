package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/event"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
)

// SellerOrderService handles the seller's order desk
type SellerOrderService struct {
	orderRepo  order.OrderRepository
	dispatcher *event.Dispatcher
	tracking   *TrackingService
}

// NewSellerOrderService creates a new SellerOrderService
func NewSellerOrderService(orderRepo order.OrderRepository) *SellerOrderService {
	return &SellerOrderService{orderRepo: orderRepo}
}

// SetDispatcher sets the event dispatcher
func (s *SellerOrderService) SetDispatcher(d *event.Dispatcher) {
	s.dispatcher = d
}

// SetTrackingService lets status writes invalidate cached tracking views
func (s *SellerOrderService) SetTrackingService(t *TrackingService) {
	s.tracking = t
}

// ListSellerOrders lists the calling seller's orders
func (s *SellerOrderService) ListSellerOrders(ctx context.Context, session identity.Session, query OrderListFilter) (*SellerOrderList, error) {
	if !session.IsSeller() {
		return nil, shared.ErrForbidden
	}
	filter, err := query.ToFilter()
	if err != nil {
		return nil, err
	}
	return s.list(ctx, session.TenantID, session.UserID, filter)
}

// UpdateOrderStatus moves an order through the status table. Carrier and
// estimated delivery only apply when the new status is a shipping status and
// an existing tracking number is always kept. The seller's first order page
// is returned so the caller can redraw the whole list.
func (s *SellerOrderService) UpdateOrderStatus(ctx context.Context, session identity.Session, orderID uuid.UUID, input UpdateOrderStatusInput) (_ *UpdateOrderStatusResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "seller_order", "update_status",
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrToStatus, input.OrderStatus,
		telemetry.SpanAttrSessionAs, session.Role,
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if !session.IsSeller() && !session.IsAdmin() {
		return nil, shared.ErrForbidden
	}
	newStatus, err := order.ParseOrderStatus(input.OrderStatus)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !session.CanActAsSeller(o.SellerID) {
		return nil, shared.ErrForbidden
	}

	if err := o.UpdateStatus(newStatus, order.StatusUpdate{
		Carrier:           input.Carrier,
		EstimatedDelivery: input.EstimatedDelivery,
		Note:              input.Note,
		Location:          input.Location,
	}); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, o)
	if s.tracking != nil {
		s.tracking.Invalidate(ctx, session.TenantID, o.ID)
	}

	refreshed, err := s.list(ctx, session.TenantID, o.SellerID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return &UpdateOrderStatusResult{
		Order:  ToOrderResponse(o),
		Orders: *refreshed,
	}, nil
}

func (s *SellerOrderService) list(ctx context.Context, tenantID, sellerID uuid.UUID, filter shared.Filter) (*SellerOrderList, error) {
	orders, total, err := s.orderRepo.FindBySeller(ctx, tenantID, sellerID, filter)
	if err != nil {
		return nil, err
	}
	return &SellerOrderList{
		Orders:   ToOrderResponses(orders),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
