package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appshipping "github.com/marketplace/backend/internal/application/shipping"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuote(t *testing.T, tenantID, orderID, companyID uuid.UUID, price int64) *shipping.ShippingQuote {
	t.Helper()
	q, err := shipping.NewShippingQuote(tenantID, orderID, companyID, decimal.NewFromInt(price), 3, "")
	require.NoError(t, err)
	return q
}

func TestGormShippingQuoteRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormShippingQuoteRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	orderID := uuid.New()
	companyA := uuid.New()
	companyB := uuid.New()

	first := newTestQuote(t, tenantID, orderID, companyA, 30)
	second := newTestQuote(t, tenantID, orderID, companyB, 20)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	t.Run("FindByOrder keeps submission order", func(t *testing.T) {
		quotes, err := repo.FindByOrder(ctx, tenantID, orderID)
		require.NoError(t, err)
		require.Len(t, quotes, 2)
		assert.Equal(t, first.ID, quotes[0].ID)
		assert.Equal(t, second.ID, quotes[1].ID)
	})

	t.Run("ExistsPendingForCompany", func(t *testing.T) {
		exists, err := repo.ExistsPendingForCompany(ctx, tenantID, orderID, companyA)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsPendingForCompany(ctx, tenantID, uuid.New(), companyA)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("SaveAll persists a supersede atomically", func(t *testing.T) {
		quotes, err := repo.FindByOrder(ctx, tenantID, orderID)
		require.NoError(t, err)
		ptrs := []*shipping.ShippingQuote{&quotes[0], &quotes[1]}

		result, err := shipping.SelectQuote(orderID, first.ID, ptrs)
		require.NoError(t, err)
		require.NoError(t, repo.SaveAll(ctx, result.Changed))

		result, err = shipping.SelectQuote(orderID, second.ID, ptrs)
		require.NoError(t, err)
		require.NoError(t, repo.SaveAll(ctx, result.Changed))

		reloaded, err := repo.FindByOrder(ctx, tenantID, orderID)
		require.NoError(t, err)
		assert.Equal(t, shipping.QuoteStatusRejected, reloaded[0].Status)
		assert.Equal(t, shipping.QuoteStatusAccepted, reloaded[1].Status)
	})

	t.Run("FindByCompany", func(t *testing.T) {
		quotes, total, err := repo.FindByCompany(ctx, tenantID, companyB, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, second.ID, quotes[0].ID)
	})

	t.Run("FindByID respects tenant", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New(), first.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormShippingCompanyRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormShippingCompanyRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	company, err := shipping.NewShippingCompany(tenantID, userID, "Swift Couriers",
		shipping.ContactInfo{Email: "ops@swift.example"}, shipping.CompanyInfo{}, []string{"Accra"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, company))

	t.Run("FindByUserID", func(t *testing.T) {
		found, err := repo.FindByUserID(ctx, tenantID, userID)
		require.NoError(t, err)
		assert.Equal(t, company.ID, found.ID)
		assert.Equal(t, []string{"Accra"}, found.ServiceAreas)
	})

	t.Run("one company per account", func(t *testing.T) {
		dup, err := shipping.NewShippingCompany(tenantID, userID, "Other", shipping.ContactInfo{Phone: "1"}, shipping.CompanyInfo{}, nil)
		require.NoError(t, err)
		err = repo.Save(ctx, dup)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("SaveWithLock and stale writes", func(t *testing.T) {
		a, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)
		b, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)

		require.NoError(t, a.ChangeStatus(shipping.CompanyStatusVerified, ""))
		require.NoError(t, repo.SaveWithLock(ctx, a))

		require.NoError(t, b.ChangeStatus(shipping.CompanyStatusRejected, "incomplete documents"))
		assert.ErrorIs(t, repo.SaveWithLock(ctx, b), shared.ErrConcurrencyConflict)

		reloaded, err := repo.FindByID(ctx, tenantID, company.ID)
		require.NoError(t, err)
		assert.Equal(t, shipping.CompanyStatusVerified, reloaded.Status)
		assert.True(t, reloaded.CanQuote())
	})

	t.Run("FindAll filters by status", func(t *testing.T) {
		other, err := shipping.NewShippingCompany(tenantID, uuid.New(), "Slow Freight", shipping.ContactInfo{Phone: "2"}, shipping.CompanyInfo{}, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		all, total, err := repo.FindAll(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, all, 2)

		filter := shared.DefaultFilter()
		filter.Status = string(shipping.CompanyStatusPendingVerification)
		pending, total, err := repo.FindAll(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Slow Freight", pending[0].Name)
	})
}

func TestGormPaymentPreferenceRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormPaymentPreferenceRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()
	sellerID := uuid.New()

	_, err := repo.FindBySeller(ctx, tenantID, sellerID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	prefs, err := seller.NewPaymentPreferences(tenantID, sellerID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, prefs))

	require.NoError(t, prefs.Toggle(seller.PaymentMethodMobileMoney))
	require.NoError(t, repo.Save(ctx, prefs))

	found, err := repo.FindBySeller(ctx, tenantID, sellerID)
	require.NoError(t, err)
	assert.Equal(t, []seller.PaymentMethod{seller.PaymentMethodBankTransfer, seller.PaymentMethodMobileMoney}, found.Methods)

	found.Methods = nil
	assert.ErrorIs(t, repo.Save(ctx, found), seller.ErrLastPaymentMethod)
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := newSQLiteDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	tenantID := uuid.New()

	o := newTestOrder(t, tenantID, uuid.New(), uuid.New(), "ORD-2026-00001")
	require.NoError(t, NewGormOrderRepository(db).Save(ctx, o))
	quote := newTestQuote(t, tenantID, o.ID, uuid.New(), 15)

	boom := errors.New("boom")
	err := scope.Execute(ctx, func(repos appshipping.TransactionalRepositories) error {
		if err := repos.QuoteRepo().Save(ctx, quote); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	quotes, err := NewGormShippingQuoteRepository(db).FindByOrder(ctx, tenantID, o.ID)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	err = scope.Execute(ctx, func(repos appshipping.TransactionalRepositories) error {
		if err := repos.QuoteRepo().Save(ctx, quote); err != nil {
			return err
		}
		loaded, err := repos.OrderRepo().FindByID(ctx, o.ID)
		if err != nil {
			return err
		}
		if err := loaded.ApplyShippingQuote(quote.ID, quote.Price, quote.EstimatedDeliveryDays); err != nil {
			return err
		}
		return repos.OrderRepo().SaveWithLock(ctx, loaded)
	})
	require.NoError(t, err)

	reloaded, err := NewGormOrderRepository(db).FindByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.SelectedQuoteID)
	assert.Equal(t, quote.ID, *reloaded.SelectedQuoteID)
	assert.True(t, reloaded.ShippingCost.Equal(decimal.NewFromInt(15)))
}

func TestGormShippingQuoteRepository_SaveAll_LosingSelectionConflicts(t *testing.T) {
	db := newSQLiteDB(t)
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX uq_shipping_quotes_one_accepted
		ON shipping_quotes (order_id) WHERE status IN ('accepted', 'completed')`).Error)
	repo := NewGormShippingQuoteRepository(db)
	ctx := context.Background()
	tenantID, orderID := uuid.New(), uuid.New()

	cheap := newTestQuote(t, tenantID, orderID, uuid.New(), 10)
	fast := newTestQuote(t, tenantID, orderID, uuid.New(), 25)
	fast.CreatedAt = cheap.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Save(ctx, cheap))
	require.NoError(t, repo.Save(ctx, fast))

	// both selections read the quotes before either commits
	load := func() []*shipping.ShippingQuote {
		stored, err := repo.FindByOrder(ctx, tenantID, orderID)
		require.NoError(t, err)
		quotes := make([]*shipping.ShippingQuote, len(stored))
		for i := range stored {
			quotes[i] = &stored[i]
		}
		return quotes
	}
	winnerView, loserView := load(), load()

	winner, err := shipping.SelectQuote(orderID, cheap.ID, winnerView)
	require.NoError(t, err)
	loser, err := shipping.SelectQuote(orderID, fast.ID, loserView)
	require.NoError(t, err)

	require.NoError(t, repo.SaveAll(ctx, winner.Changed))
	err = repo.SaveAll(ctx, loser.Changed)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	quotes, err := repo.FindByOrder(ctx, tenantID, orderID)
	require.NoError(t, err)
	var accepted []uuid.UUID
	for _, q := range quotes {
		if q.IsSelected() {
			accepted = append(accepted, q.ID)
		}
	}
	assert.Equal(t, []uuid.UUID{cheap.ID}, accepted)
}
