package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/event"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TrackingService serves and edits order tracking. Reads go through the
// tracking cache; cache failures are logged and fall back to the database.
type TrackingService struct {
	orderRepo  order.OrderRepository
	cache      TrackingCache
	dispatcher *event.Dispatcher
	logger     *zap.Logger
}

// NewTrackingService creates a new TrackingService. cache may be nil.
func NewTrackingService(orderRepo order.OrderRepository, cache TrackingCache, logger *zap.Logger) *TrackingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackingService{
		orderRepo: orderRepo,
		cache:     cache,
		logger:    logger,
	}
}

// SetDispatcher sets the event dispatcher
func (s *TrackingService) SetDispatcher(d *event.Dispatcher) {
	s.dispatcher = d
}

// GetTracking returns the tracker view for the order's buyer, seller or an admin
func (s *TrackingService) GetTracking(ctx context.Context, session identity.Session, orderID uuid.UUID) (*TrackingView, error) {
	if view := s.cached(ctx, session.TenantID, orderID); view != nil {
		if !canViewTracking(session, view.BuyerID, view.SellerID) {
			return nil, shared.ErrForbidden
		}
		return view, nil
	}

	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !canViewTracking(session, o.BuyerID, o.SellerID) {
		return nil, shared.ErrForbidden
	}

	view := ToTrackingView(o)
	if s.cache != nil {
		if err := s.cache.Set(ctx, session.TenantID, orderID, view); err != nil {
			s.logger.Warn("tracking cache write failed", zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}
	return view, nil
}

// UpdateTracking applies an admin or owning-seller tracking edit. Empty fields
// keep their stored values, so a tracking number is never erased.
func (s *TrackingService) UpdateTracking(ctx context.Context, session identity.Session, orderID uuid.UUID, input UpdateTrackingInput) (*TrackingView, error) {
	if !session.IsAdmin() && !session.IsSeller() {
		return nil, shared.ErrForbidden
	}

	update := order.TrackingUpdate{
		TrackingNumber:    input.TrackingNumber,
		Carrier:           input.Carrier,
		EstimatedDelivery: input.EstimatedDelivery,
		CurrentLocation:   input.CurrentLocation,
		Note:              input.Note,
	}
	if input.OrderStatus != nil && *input.OrderStatus != "" {
		status, err := order.ParseOrderStatus(*input.OrderStatus)
		if err != nil {
			return nil, err
		}
		update.Status = &status
	}

	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, orderID)
	if err != nil {
		return nil, err
	}
	if !session.CanActAsSeller(o.SellerID) {
		return nil, shared.ErrForbidden
	}

	if err := o.UpdateTracking(update); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, o)
	s.Invalidate(ctx, session.TenantID, orderID)

	return ToTrackingView(o), nil
}

// Invalidate drops the cached tracking view of an order
func (s *TrackingService) Invalidate(ctx context.Context, tenantID, orderID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, tenantID, orderID); err != nil {
		s.logger.Warn("tracking cache invalidation failed", zap.String("order_id", orderID.String()), zap.Error(err))
	}
}

func (s *TrackingService) cached(ctx context.Context, tenantID, orderID uuid.UUID) *TrackingView {
	if s.cache == nil {
		return nil
	}
	view, err := s.cache.Get(ctx, tenantID, orderID)
	if err != nil {
		s.logger.Warn("tracking cache read failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil
	}
	return view
}

func canViewTracking(session identity.Session, buyerID, sellerID uuid.UUID) bool {
	return session.CanActAsBuyer(buyerID) || session.CanActAsSeller(sellerID)
}
