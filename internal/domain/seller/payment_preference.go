package seller

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// PaymentMethod is a way a seller accepts payouts from buyers
type PaymentMethod string

const (
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney    PaymentMethod = "mobile_money"
	PaymentMethodPayPal         PaymentMethod = "paypal"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodCard           PaymentMethod = "card"
)

// AllPaymentMethods lists every supported method in display order
var AllPaymentMethods = []PaymentMethod{
	PaymentMethodBankTransfer,
	PaymentMethodMobileMoney,
	PaymentMethodPayPal,
	PaymentMethodCashOnDelivery,
	PaymentMethodCard,
}

// DefaultPaymentMethod is what a seller starts with
const DefaultPaymentMethod = PaymentMethodBankTransfer

// ErrLastPaymentMethod is returned when an edit would leave no payment method
var ErrLastPaymentMethod = shared.NewDomainError("LAST_PAYMENT_METHOD", "At least one payment method must remain enabled")

// IsValid checks if the method is supported
func (m PaymentMethod) IsValid() bool {
	for _, known := range AllPaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod normalizes and validates a raw method name
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method: "+raw)
	}
	return m, nil
}

// PaymentPreferences are the payment methods a seller accepts.
// The list is never empty.
type PaymentPreferences struct {
	shared.TenantAggregateRoot
	SellerID uuid.UUID
	Methods  []PaymentMethod
}

// NewPaymentPreferences creates preferences holding the default method
func NewPaymentPreferences(tenantID, sellerID uuid.UUID) (*PaymentPreferences, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	return &PaymentPreferences{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SellerID:            sellerID,
		Methods:             []PaymentMethod{DefaultPaymentMethod},
	}, nil
}

// Has reports whether the method is enabled
func (p *PaymentPreferences) Has(method PaymentMethod) bool {
	for _, m := range p.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Toggle enables a disabled method or disables an enabled one.
// Disabling the last remaining method fails with ErrLastPaymentMethod.
func (p *PaymentPreferences) Toggle(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method: "+string(method))
	}

	if !p.Has(method) {
		p.Methods = append(p.Methods, method)
		p.sort()
		p.UpdatedAt = time.Now()
		return nil
	}

	if len(p.Methods) == 1 {
		return ErrLastPaymentMethod
	}
	kept := make([]PaymentMethod, 0, len(p.Methods)-1)
	for _, m := range p.Methods {
		if m != method {
			kept = append(kept, m)
		}
	}
	p.Methods = kept
	p.UpdatedAt = time.Now()
	return nil
}

// Replace sets the full list of methods
func (p *PaymentPreferences) Replace(methods []PaymentMethod) error {
	if len(methods) == 0 {
		return ErrLastPaymentMethod
	}
	seen := make(map[PaymentMethod]struct{}, len(methods))
	for _, m := range methods {
		if !m.IsValid() {
			return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method: "+string(m))
		}
		if _, dup := seen[m]; dup {
			return shared.NewDomainError("DUPLICATE_PAYMENT_METHOD", "Payment method listed twice: "+string(m))
		}
		seen[m] = struct{}{}
	}
	p.Methods = append([]PaymentMethod(nil), methods...)
	p.sort()
	p.UpdatedAt = time.Now()
	return nil
}

// sort keeps Methods in AllPaymentMethods order
func (p *PaymentPreferences) sort() {
	ordered := make([]PaymentMethod, 0, len(p.Methods))
	for _, known := range AllPaymentMethods {
		if p.Has(known) {
			ordered = append(ordered, known)
		}
	}
	p.Methods = ordered
}
