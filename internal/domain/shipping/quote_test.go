package shipping

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuote(t *testing.T, orderID uuid.UUID) *ShippingQuote {
	q, err := NewShippingQuote(uuid.New(), orderID, uuid.New(), decimal.NewFromInt(1500), 3, "Fragile handling included")
	require.NoError(t, err)
	q.ClearDomainEvents()
	return q
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// Quote Construction Tests
// ============================================

func TestNewShippingQuote(t *testing.T) {
	orderID := uuid.New()
	q, err := NewShippingQuote(uuid.New(), orderID, uuid.New(), decimal.NewFromInt(1500), 3, "  notes  ")
	require.NoError(t, err)

	assert.Equal(t, orderID, q.OrderID)
	assert.Equal(t, QuoteStatusPending, q.Status)
	assert.True(t, decimal.NewFromInt(1500).Equal(q.Price))
	assert.Equal(t, 3, q.EstimatedDeliveryDays)
	assert.Equal(t, "notes", q.Notes)
	require.Len(t, q.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeQuoteSubmitted, q.GetDomainEvents()[0].EventType())
}

func TestNewShippingQuote_Validation(t *testing.T) {
	tests := []struct {
		name    string
		orderID uuid.UUID
		company uuid.UUID
		price   decimal.Decimal
		days    int
		notes   string
		code    string
	}{
		{"missing order", uuid.Nil, uuid.New(), decimal.NewFromInt(1), 1, "", "INVALID_ORDER"},
		{"missing company", uuid.New(), uuid.Nil, decimal.NewFromInt(1), 1, "", "INVALID_SHIPPING_COMPANY"},
		{"zero price", uuid.New(), uuid.New(), decimal.Zero, 1, "", "INVALID_PRICE"},
		{"negative price", uuid.New(), uuid.New(), decimal.NewFromInt(-5), 1, "", "INVALID_PRICE"},
		{"zero days", uuid.New(), uuid.New(), decimal.NewFromInt(1), 0, "", "INVALID_DELIVERY_DAYS"},
		{"long notes", uuid.New(), uuid.New(), decimal.NewFromInt(1), 1, strings.Repeat("x", MaxQuoteNotesLength+1), "INVALID_NOTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShippingQuote(uuid.New(), tt.orderID, tt.company, tt.price, tt.days, tt.notes)
			requireCode(t, err, tt.code)
		})
	}
}

// ============================================
// Quote State Machine Tests
// ============================================

func TestQuoteStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to QuoteStatus
		allowed  bool
	}{
		{QuoteStatusPending, QuoteStatusAccepted, true},
		{QuoteStatusPending, QuoteStatusRejected, true},
		{QuoteStatusPending, QuoteStatusCompleted, false},
		{QuoteStatusAccepted, QuoteStatusCompleted, true},
		{QuoteStatusAccepted, QuoteStatusRejected, true},
		{QuoteStatusAccepted, QuoteStatusPending, false},
		{QuoteStatusRejected, QuoteStatusAccepted, false},
		{QuoteStatusCompleted, QuoteStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestShippingQuote_Lifecycle(t *testing.T) {
	q := newTestQuote(t, uuid.New())

	require.NoError(t, q.Accept())
	assert.True(t, q.IsSelected())
	assert.NotNil(t, q.AcceptedAt)

	require.NoError(t, q.Complete())
	assert.Equal(t, QuoteStatusCompleted, q.Status)
	assert.True(t, q.IsSelected())
	assert.NotNil(t, q.CompletedAt)
	assert.Len(t, q.GetDomainEvents(), 2)
}

func TestShippingQuote_CompletePendingRejected(t *testing.T) {
	q := newTestQuote(t, uuid.New())
	err := q.Complete()
	var te *shared.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, AggregateTypeShippingQuote, te.Aggregate)
	assert.Equal(t, QuoteStatusPending, q.Status)
}

func TestShippingQuote_Reject(t *testing.T) {
	q := newTestQuote(t, uuid.New())
	require.NoError(t, q.Reject("too slow"))
	assert.Equal(t, QuoteStatusRejected, q.Status)
	assert.Equal(t, "too slow", q.RejectionReason)
	requireCode(t, q.Accept(), "INVALID_TRANSITION")
}

// ============================================
// Selection Tests
// ============================================

func TestSelectQuote_AcceptsChosenOnly(t *testing.T) {
	orderID := uuid.New()
	a := newTestQuote(t, orderID)
	b := newTestQuote(t, orderID)
	c := newTestQuote(t, orderID)

	result, err := SelectQuote(orderID, b.ID, []*ShippingQuote{a, b, c})
	require.NoError(t, err)

	assert.Equal(t, b, result.Selected)
	assert.Nil(t, result.Superseded)
	assert.False(t, result.Unchanged)
	assert.Equal(t, []*ShippingQuote{b}, result.Changed)
	assert.Equal(t, QuoteStatusPending, a.Status)
	assert.Equal(t, QuoteStatusAccepted, b.Status)
	assert.Equal(t, QuoteStatusPending, c.Status)
}

func TestSelectQuote_SecondSelectionSupersedesFirst(t *testing.T) {
	orderID := uuid.New()
	a := newTestQuote(t, orderID)
	b := newTestQuote(t, orderID)
	quotes := []*ShippingQuote{a, b}

	_, err := SelectQuote(orderID, a.ID, quotes)
	require.NoError(t, err)

	result, err := SelectQuote(orderID, b.ID, quotes)
	require.NoError(t, err)
	assert.Equal(t, a, result.Superseded)
	assert.Equal(t, []*ShippingQuote{a, b}, result.Changed)

	accepted := 0
	for _, q := range quotes {
		if q.Status == QuoteStatusAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, QuoteStatusRejected, a.Status)
	assert.Equal(t, SupersededReason, a.RejectionReason)
}

func TestSelectQuote_ReselectingAcceptedIsNoop(t *testing.T) {
	orderID := uuid.New()
	a := newTestQuote(t, orderID)
	require.NoError(t, a.Accept())
	a.ClearDomainEvents()

	result, err := SelectQuote(orderID, a.ID, []*ShippingQuote{a})
	require.NoError(t, err)
	assert.True(t, result.Unchanged)
	assert.Empty(t, result.Changed)
	assert.Empty(t, a.GetDomainEvents())
}

func TestSelectQuote_Errors(t *testing.T) {
	orderID := uuid.New()

	t.Run("unknown quote", func(t *testing.T) {
		_, err := SelectQuote(orderID, uuid.New(), []*ShippingQuote{newTestQuote(t, orderID)})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("quote of another order", func(t *testing.T) {
		foreign := newTestQuote(t, uuid.New())
		_, err := SelectQuote(orderID, foreign.ID, []*ShippingQuote{foreign})
		requireCode(t, err, "INVALID_INPUT")
	})

	t.Run("completed shipping blocks reselection", func(t *testing.T) {
		done := newTestQuote(t, orderID)
		require.NoError(t, done.Accept())
		require.NoError(t, done.Complete())
		other := newTestQuote(t, orderID)

		_, err := SelectQuote(orderID, other.ID, []*ShippingQuote{done, other})
		requireCode(t, err, "INVALID_STATE")
		assert.Equal(t, QuoteStatusPending, other.Status)
	})

	t.Run("rejected quote", func(t *testing.T) {
		q := newTestQuote(t, orderID)
		require.NoError(t, q.Reject("no"))
		_, err := SelectQuote(orderID, q.ID, []*ShippingQuote{q})
		requireCode(t, err, "INVALID_STATE")
	})
}
