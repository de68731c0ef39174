package seller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
)

// PaymentPreferencesResponse lists the methods a seller accepts
type PaymentPreferencesResponse struct {
	SellerID  uuid.UUID  `json:"sellerId"`
	Methods   []string   `json:"methods"`
	Available []string   `json:"available"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// ToggleMethodInput flips one payment method on or off
type ToggleMethodInput struct {
	Method string `json:"method" binding:"required,payment_method"`
}

// ReplaceMethodsInput sets the complete method list
type ReplaceMethodsInput struct {
	Methods []string `json:"methods" binding:"required,min=1,dive,payment_method"`
}

// PaymentPreferenceService manages the seller's accepted payment methods
type PaymentPreferenceService struct {
	repo seller.PaymentPreferenceRepository
}

// NewPaymentPreferenceService creates a new PaymentPreferenceService
func NewPaymentPreferenceService(repo seller.PaymentPreferenceRepository) *PaymentPreferenceService {
	return &PaymentPreferenceService{repo: repo}
}

// Get returns the stored preferences, or the default list for a seller who never saved any
func (s *PaymentPreferenceService) Get(ctx context.Context, session identity.Session) (*PaymentPreferencesResponse, error) {
	prefs, stored, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	return toResponse(prefs, stored), nil
}

// Toggle enables or disables one method. Disabling the last one fails with LAST_PAYMENT_METHOD.
func (s *PaymentPreferenceService) Toggle(ctx context.Context, session identity.Session, input ToggleMethodInput) (*PaymentPreferencesResponse, error) {
	method, err := seller.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, err
	}
	prefs, _, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := prefs.Toggle(method); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return toResponse(prefs, true), nil
}

// Replace overwrites the method list
func (s *PaymentPreferenceService) Replace(ctx context.Context, session identity.Session, input ReplaceMethodsInput) (*PaymentPreferencesResponse, error) {
	methods := make([]seller.PaymentMethod, 0, len(input.Methods))
	for _, raw := range input.Methods {
		m, err := seller.ParsePaymentMethod(raw)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	prefs, _, err := s.load(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := prefs.Replace(methods); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return toResponse(prefs, true), nil
}

func (s *PaymentPreferenceService) load(ctx context.Context, session identity.Session) (*seller.PaymentPreferences, bool, error) {
	if !session.IsSeller() {
		return nil, false, shared.ErrForbidden
	}
	prefs, err := s.repo.FindBySeller(ctx, session.TenantID, session.UserID)
	if err == nil {
		return prefs, true, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}
	prefs, err = seller.NewPaymentPreferences(session.TenantID, session.UserID)
	if err != nil {
		return nil, false, err
	}
	return prefs, false, nil
}

func toResponse(p *seller.PaymentPreferences, stored bool) *PaymentPreferencesResponse {
	resp := &PaymentPreferencesResponse{
		SellerID:  p.SellerID,
		Methods:   make([]string, len(p.Methods)),
		Available: make([]string, len(seller.AllPaymentMethods)),
	}
	for i, m := range p.Methods {
		resp.Methods[i] = m.String()
	}
	for i, m := range seller.AllPaymentMethods {
		resp.Available[i] = m.String()
	}
	if stored {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
