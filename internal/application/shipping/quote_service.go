package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/event"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
)

var (
	ErrCompanyNotRegistered = shared.NewDomainError("FORBIDDEN", "Register a shipping company before quoting")
	ErrCompanyNotVerified   = shared.NewDomainError("FORBIDDEN", "Shipping company is not verified")
	ErrDuplicateQuote       = shared.NewDomainError("ALREADY_EXISTS", "A pending quote from this company already exists for the order")
)

// QuoteInvalidator drops cached tracking views after an order write
type QuoteInvalidator interface {
	Invalidate(ctx context.Context, tenantID, orderID uuid.UUID)
}

// QuoteService handles shipping quote use cases
type QuoteService struct {
	orderRepo   order.OrderRepository
	quoteRepo   shipping.ShippingQuoteRepository
	companyRepo shipping.ShippingCompanyRepository
	txScope     TransactionScope
	dispatcher  *event.Dispatcher
	invalidator QuoteInvalidator
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	orderRepo order.OrderRepository,
	quoteRepo shipping.ShippingQuoteRepository,
	companyRepo shipping.ShippingCompanyRepository,
	txScope TransactionScope,
) *QuoteService {
	return &QuoteService{
		orderRepo:   orderRepo,
		quoteRepo:   quoteRepo,
		companyRepo: companyRepo,
		txScope:     txScope,
	}
}

// SetDispatcher sets the event dispatcher for cross-context integration
func (s *QuoteService) SetDispatcher(d *event.Dispatcher) {
	s.dispatcher = d
}

// SetInvalidator sets the tracking cache invalidator
func (s *QuoteService) SetInvalidator(inv QuoteInvalidator) {
	s.invalidator = inv
}

// SubmitQuote records a pending quote from the caller's verified company
func (s *QuoteService) SubmitQuote(ctx context.Context, session identity.Session, input SubmitQuoteInput) (*QuoteResponse, error) {
	if !session.IsShippingCompany() {
		return nil, shared.ErrForbidden
	}
	if input.OrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID is required")
	}

	company, err := s.callerCompany(ctx, session)
	if err != nil {
		return nil, err
	}
	if !company.CanQuote() {
		return nil, ErrCompanyNotVerified
	}

	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.AcceptsShippingQuotes() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order no longer accepts shipping quotes")
	}

	exists, err := s.quoteRepo.ExistsPendingForCompany(ctx, session.TenantID, o.ID, company.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateQuote
	}

	quote, err := shipping.NewShippingQuote(session.TenantID, o.ID, company.ID, input.Price, input.EstimatedDeliveryDays, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// ListQuotes returns every quote on an order in submission order
func (s *QuoteService) ListQuotes(ctx context.Context, session identity.Session, orderID uuid.UUID) ([]QuoteResponse, error) {
	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, orderID)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.FindByOrder(ctx, session.TenantID, o.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case session.IsAdmin(), session.CanActAsBuyer(o.BuyerID), session.CanActAsSeller(o.SellerID):
		return ToQuoteResponses(quotes), nil
	case session.IsShippingCompany():
		// a company only sees its own bids
		company, err := s.callerCompany(ctx, session)
		if err != nil {
			return nil, err
		}
		own := make([]shipping.ShippingQuote, 0, 1)
		for _, q := range quotes {
			if q.ShippingCompanyID == company.ID {
				own = append(own, q)
			}
		}
		return ToQuoteResponses(own), nil
	}
	return nil, shared.ErrForbidden
}

// SelectQuote accepts a quote for the order, superseding any earlier choice.
// Quotes and order are written in one transaction and the order write is
// version-guarded, so a concurrent selection loses with CONCURRENCY_CONFLICT.
func (s *QuoteService) SelectQuote(ctx context.Context, session identity.Session, orderID uuid.UUID, input SelectQuoteInput) (_ *SelectQuoteResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "shipping_quote", "select",
		telemetry.SpanAttrOrderID, orderID,
		telemetry.SpanAttrQuoteID, input.QuoteID,
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if input.QuoteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quote ID is required")
	}

	var (
		o      *order.Order
		result *shipping.SelectionResult
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		o, err = repos.OrderRepo().FindByIDForTenant(ctx, session.TenantID, orderID)
		if err != nil {
			return err
		}
		if !session.CanActAsBuyer(o.BuyerID) {
			return shared.ErrForbidden
		}

		stored, err := repos.QuoteRepo().FindByOrder(ctx, session.TenantID, o.ID)
		if err != nil {
			return err
		}
		quotes := make([]*shipping.ShippingQuote, len(stored))
		for i := range stored {
			quotes[i] = &stored[i]
		}

		result, err = shipping.SelectQuote(o.ID, input.QuoteID, quotes)
		if err != nil {
			return err
		}
		if result.Unchanged {
			return nil
		}

		if err := o.ApplyShippingQuote(result.Selected.ID, result.Selected.Price, result.Selected.EstimatedDeliveryDays); err != nil {
			return err
		}
		if err := repos.QuoteRepo().SaveAll(ctx, result.Changed); err != nil {
			return err
		}
		return repos.OrderRepo().SaveWithLock(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	if !result.Unchanged {
		aggregates := []shared.AggregateRoot{o}
		for _, q := range result.Changed {
			aggregates = append(aggregates, q)
		}
		s.dispatcher.Dispatch(ctx, aggregates...)
		if s.invalidator != nil {
			s.invalidator.Invalidate(ctx, session.TenantID, o.ID)
		}
	}

	response := &SelectQuoteResponse{
		Selected:     ToQuoteResponse(result.Selected),
		ShippingCost: o.ShippingCost,
		OrderVersion: o.Version,
	}
	if result.Superseded != nil {
		superseded := ToQuoteResponse(result.Superseded)
		response.Superseded = &superseded
	}
	return response, nil
}

// CompleteQuote closes the caller's accepted quote once the order is delivered
func (s *QuoteService) CompleteQuote(ctx context.Context, session identity.Session, quoteID uuid.UUID) (*QuoteResponse, error) {
	if !session.IsShippingCompany() && !session.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	quote, err := s.quoteRepo.FindByID(ctx, session.TenantID, quoteID)
	if err != nil {
		return nil, err
	}
	if session.IsShippingCompany() {
		company, err := s.callerCompany(ctx, session)
		if err != nil {
			return nil, err
		}
		if quote.ShippingCompanyID != company.ID {
			return nil, shared.ErrForbidden
		}
	}

	o, err := s.orderRepo.FindByIDForTenant(ctx, session.TenantID, quote.OrderID)
	if err != nil {
		return nil, err
	}
	if !o.IsDelivered() {
		return nil, shared.NewDomainError("INVALID_STATE", "Shipping can only be completed after delivery")
	}

	if err := quote.Complete(); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// ListCompanyQuotes lists the caller company's quotes, newest first
func (s *QuoteService) ListCompanyQuotes(ctx context.Context, session identity.Session, filter shared.Filter) ([]QuoteResponse, int64, error) {
	if !session.IsShippingCompany() {
		return nil, 0, shared.ErrForbidden
	}
	company, err := s.callerCompany(ctx, session)
	if err != nil {
		return nil, 0, err
	}

	quotes, total, err := s.quoteRepo.FindByCompany(ctx, session.TenantID, company.ID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToQuoteResponses(quotes), total, nil
}

func (s *QuoteService) callerCompany(ctx context.Context, session identity.Session) (*shipping.ShippingCompany, error) {
	company, err := s.companyRepo.FindByUserID(ctx, session.TenantID, session.UserID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrCompanyNotRegistered
	}
	return company, err
}
