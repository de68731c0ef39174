package seller

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrefs(t *testing.T) *PaymentPreferences {
	p, err := NewPaymentPreferences(uuid.New(), uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewPaymentPreferences(t *testing.T) {
	p := newPrefs(t)
	assert.Equal(t, []PaymentMethod{PaymentMethodBankTransfer}, p.Methods)

	_, err := NewPaymentPreferences(uuid.New(), uuid.Nil)
	require.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" PayPal ")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodPayPal, m)

	_, err = ParsePaymentMethod("barter")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
}

func TestPaymentPreferences_Toggle(t *testing.T) {
	p := newPrefs(t)

	require.NoError(t, p.Toggle(PaymentMethodCard))
	require.NoError(t, p.Toggle(PaymentMethodMobileMoney))
	assert.Equal(t, []PaymentMethod{PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCard}, p.Methods)

	require.NoError(t, p.Toggle(PaymentMethodBankTransfer))
	require.NoError(t, p.Toggle(PaymentMethodCard))
	assert.Equal(t, []PaymentMethod{PaymentMethodMobileMoney}, p.Methods)
}

func TestPaymentPreferences_ToggleLastMethodRejected(t *testing.T) {
	p := newPrefs(t)

	err := p.Toggle(PaymentMethodBankTransfer)
	assert.ErrorIs(t, err, ErrLastPaymentMethod)
	assert.Equal(t, []PaymentMethod{PaymentMethodBankTransfer}, p.Methods)
}

func TestPaymentPreferences_Replace(t *testing.T) {
	p := newPrefs(t)

	require.NoError(t, p.Replace([]PaymentMethod{PaymentMethodCard, PaymentMethodPayPal}))
	assert.Equal(t, []PaymentMethod{PaymentMethodPayPal, PaymentMethodCard}, p.Methods)

	assert.ErrorIs(t, p.Replace(nil), ErrLastPaymentMethod)
	assert.Equal(t, []PaymentMethod{PaymentMethodPayPal, PaymentMethodCard}, p.Methods)

	err := p.Replace([]PaymentMethod{PaymentMethodCard, PaymentMethodCard})
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "DUPLICATE_PAYMENT_METHOD", domainErr.Code)

	err = p.Replace([]PaymentMethod{"gold"})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
}
