package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTrackingService_GetTracking(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	buyer := session(tenantID, identity.RoleBuyer)

	t.Run("cache hit skips the database", func(t *testing.T) {
		o := newTestOrder(t, tenantID, buyer.UserID, uuid.New())
		cache := new(MockTrackingCache)
		cache.On("Get", ctx, tenantID, o.ID).Return(ToTrackingView(o), nil)
		repo := new(MockOrderRepository)

		view, err := NewTrackingService(repo, cache, zap.NewNop()).GetTracking(ctx, buyer, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.ID, view.OrderID)
		repo.AssertNotCalled(t, "FindByIDForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache hit still checks access", func(t *testing.T) {
		o := newTestOrder(t, tenantID, uuid.New(), uuid.New())
		cache := new(MockTrackingCache)
		cache.On("Get", ctx, tenantID, o.ID).Return(ToTrackingView(o), nil)

		_, err := NewTrackingService(new(MockOrderRepository), cache, zap.NewNop()).GetTracking(ctx, buyer, o.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("miss loads and fills the cache", func(t *testing.T) {
		o := newTestOrder(t, tenantID, buyer.UserID, uuid.New())
		moveTo(t, o, order.OrderStatusConfirmed, order.OrderStatusShipped)
		cache := new(MockTrackingCache)
		cache.On("Get", ctx, tenantID, o.ID).Return(nil, nil)
		cache.On("Set", ctx, tenantID, o.ID, mock.AnythingOfType("*order.TrackingView")).Return(nil)
		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)

		view, err := NewTrackingService(repo, cache, zap.NewNop()).GetTracking(ctx, buyer, o.ID)

		require.NoError(t, err)
		assert.Equal(t, "shipped", view.OrderStatus)
		assert.Equal(t, 3, view.StageIndex)
		require.Len(t, view.Steps, 6)
		assert.Equal(t, StepCompleted, view.Steps[2].State)
		assert.Equal(t, StepCurrent, view.Steps[3].State)
		assert.Equal(t, "Shipped", view.Steps[3].Label)
		assert.Equal(t, StepUpcoming, view.Steps[4].State)
		assert.Len(t, view.StatusHistory, 3)
		cache.AssertExpectations(t)
	})

	t.Run("cancelled order has every step upcoming", func(t *testing.T) {
		o := newTestOrder(t, tenantID, buyer.UserID, uuid.New())
		require.NoError(t, o.Cancel("no longer needed"))
		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)

		view, err := NewTrackingService(repo, nil, nil).GetTracking(ctx, buyer, o.ID)

		require.NoError(t, err)
		assert.True(t, view.Cancelled)
		assert.Equal(t, -1, view.StageIndex)
		for _, s := range view.Steps {
			assert.Equal(t, StepUpcoming, s.State)
		}
	})

	t.Run("cache errors fall back to the database", func(t *testing.T) {
		o := newTestOrder(t, tenantID, buyer.UserID, uuid.New())
		cache := new(MockTrackingCache)
		cache.On("Get", ctx, tenantID, o.ID).Return(nil, errors.New("redis: connection refused"))
		cache.On("Set", ctx, tenantID, o.ID, mock.Anything).Return(errors.New("redis: connection refused"))
		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)
		core, logs := observer.New(zap.WarnLevel)

		view, err := NewTrackingService(repo, cache, zap.New(core)).GetTracking(ctx, buyer, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.ID, view.OrderID)
		assert.Equal(t, 2, logs.Len())
	})
}

func TestTrackingService_UpdateTracking(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	seller := session(tenantID, identity.RoleSeller)

	t.Run("seller edit keeps the tracking number", func(t *testing.T) {
		o := newTestOrder(t, tenantID, uuid.New(), seller.UserID)
		moveTo(t, o, order.OrderStatusConfirmed, order.OrderStatusShipped)
		require.NoError(t, o.UpdateTracking(order.TrackingUpdate{TrackingNumber: "TRK-1", Carrier: "DHL"}))

		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)
		repo.On("SaveWithLock", ctx, o).Return(nil)
		cache := new(MockTrackingCache)
		cache.On("Delete", ctx, tenantID, o.ID).Return(nil)
		status := "out_for_delivery"

		view, err := NewTrackingService(repo, cache, zap.NewNop()).UpdateTracking(ctx, seller, o.ID, UpdateTrackingInput{
			CurrentLocation: "Accra hub",
			OrderStatus:     &status,
		})

		require.NoError(t, err)
		assert.Equal(t, "out_for_delivery", view.OrderStatus)
		assert.Equal(t, "TRK-1", view.TrackingInfo.TrackingNumber)
		assert.Equal(t, "DHL", view.TrackingInfo.Carrier)
		assert.Equal(t, "Accra hub", view.TrackingInfo.CurrentLocation)
		cache.AssertExpectations(t)
	})

	t.Run("admin may set the ETA", func(t *testing.T) {
		o := newTestOrder(t, tenantID, uuid.New(), seller.UserID)
		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)
		repo.On("SaveWithLock", ctx, o).Return(nil)
		eta := time.Now().Add(72 * time.Hour)

		view, err := NewTrackingService(repo, nil, nil).UpdateTracking(ctx, session(tenantID, identity.RoleAdmin), o.ID, UpdateTrackingInput{EstimatedDelivery: &eta})

		require.NoError(t, err)
		require.NotNil(t, view.TrackingInfo.EstimatedDelivery)
		assert.WithinDuration(t, eta, *view.TrackingInfo.EstimatedDelivery, time.Second)
	})

	t.Run("other sellers are forbidden", func(t *testing.T) {
		o := newTestOrder(t, tenantID, uuid.New(), uuid.New())
		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)

		_, err := NewTrackingService(repo, nil, nil).UpdateTracking(ctx, seller, o.ID, UpdateTrackingInput{TrackingNumber: "X"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("buyers are forbidden", func(t *testing.T) {
		_, err := NewTrackingService(new(MockOrderRepository), nil, nil).UpdateTracking(ctx, session(tenantID, identity.RoleBuyer), uuid.New(), UpdateTrackingInput{})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("illegal status move is a transition error", func(t *testing.T) {
		o := newTestOrder(t, tenantID, uuid.New(), seller.UserID)
		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, o.ID).Return(o, nil)
		status := "delivered"

		_, err := NewTrackingService(repo, nil, nil).UpdateTracking(ctx, seller, o.ID, UpdateTrackingInput{OrderStatus: &status})

		var te *shared.TransitionError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "pending", te.From)
		assert.Equal(t, "delivered", te.To)
	})
}
