package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/application/event"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
)

// CompanyService handles shipping company registration and verification
type CompanyService struct {
	companyRepo shipping.ShippingCompanyRepository
	dispatcher  *event.Dispatcher
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo shipping.ShippingCompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// SetDispatcher sets the event dispatcher
func (s *CompanyService) SetDispatcher(d *event.Dispatcher) {
	s.dispatcher = d
}

// Register creates the caller's company in pending_verification
func (s *CompanyService) Register(ctx context.Context, session identity.Session, input RegisterCompanyInput) (*CompanyResponse, error) {
	if !session.IsShippingCompany() {
		return nil, shared.ErrForbidden
	}

	_, err := s.companyRepo.FindByUserID(ctx, session.TenantID, session.UserID)
	switch {
	case err == nil:
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This account already has a shipping company")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	company, err := shipping.NewShippingCompany(session.TenantID, session.UserID, input.Name,
		shipping.ContactInfo{
			Email:         input.Email,
			Phone:         input.Phone,
			ContactPerson: input.ContactPerson,
		},
		shipping.CompanyInfo{
			RegistrationNumber: input.RegistrationNumber,
			Address:            input.Address,
			Description:        input.Description,
			Website:            input.Website,
		},
		input.ServiceAreas,
	)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// Get returns a company by ID
func (s *CompanyService) Get(ctx context.Context, session identity.Session, companyID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, session.TenantID, companyID)
	if err != nil {
		return nil, err
	}
	response := ToCompanyResponse(company)
	return &response, nil
}

// List returns companies for admin review
func (s *CompanyService) List(ctx context.Context, session identity.Session, filter CompanyListFilter) ([]CompanyResponse, int64, error) {
	if !session.IsAdmin() {
		return nil, 0, shared.ErrForbidden
	}

	f := shared.DefaultFilter()
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := shipping.CompanyStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown shipping company status: "+filter.Status)
		}
		f.Status = string(status)
	}

	companies, total, err := s.companyRepo.FindAll(ctx, session.TenantID, f)
	if err != nil {
		return nil, 0, err
	}
	return ToCompanyResponses(companies), total, nil
}

// ChangeStatus applies an admin verification decision
func (s *CompanyService) ChangeStatus(ctx context.Context, session identity.Session, companyID uuid.UUID, input ChangeCompanyStatusInput) (*CompanyResponse, error) {
	if !session.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	company, err := s.companyRepo.FindByID(ctx, session.TenantID, companyID)
	if err != nil {
		return nil, err
	}
	if err := company.ChangeStatus(shipping.CompanyStatus(input.Status), input.Reason); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SaveWithLock(ctx, company); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}
