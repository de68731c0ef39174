package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          testSecret,
		Issuer:          "marketplace-test",
		TokenExpiration: 15 * time.Minute,
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Role:     identity.RoleSeller,
		Name:     "Amara",
	}
}

func TestNewJWTService_DefaultExpiration(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: testSecret})
	assert.Equal(t, 24*time.Hour, svc.expiration)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, expiresAt, err := svc.GenerateToken(input)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	session, err := svc.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, input.TenantID, session.TenantID)
	assert.Equal(t, input.UserID, session.UserID)
	assert.Equal(t, identity.RoleSeller, session.Role)
	assert.Equal(t, "Amara", session.DisplayName)
}

func TestJWTService_GenerateToken_Validation(t *testing.T) {
	svc := newTestJWTService()

	tests := []struct {
		name   string
		mutate func(*GenerateTokenInput)
		want   error
	}{
		{"missing tenant", func(in *GenerateTokenInput) { in.TenantID = uuid.Nil }, ErrMissingTenantID},
		{"missing user", func(in *GenerateTokenInput) { in.UserID = uuid.Nil }, ErrMissingUserID},
		{"unknown role", func(in *GenerateTokenInput) { in.Role = "courier" }, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := newTestInput()
			tt.mutate(&input)
			_, _, err := svc.GenerateToken(input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	t.Run("expired token", func(t *testing.T) {
		token, _, err := svc.GenerateToken(input)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(time.Hour) }
		defer func() { svc.now = time.Now }()

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(time.Hour) }
		token, _, err := svc.GenerateToken(input)
		svc.now = time.Now
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars", Issuer: "marketplace-test"})
		token, _, err := other.GenerateToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: testSecret, Issuer: "someone-else"})
		token, _, err := other.GenerateToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm is rejected", func(t *testing.T) {
		claims := &Claims{TenantID: input.TenantID.String(), UserID: input.UserID.String(), Role: "admin"}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_Session(t *testing.T) {
	valid := Claims{TenantID: uuid.NewString(), UserID: uuid.NewString(), Role: "shipping_company", Name: "FastFreight"}

	session, err := valid.Session()
	require.NoError(t, err)
	assert.True(t, session.IsShippingCompany())

	bad := valid
	bad.TenantID = "nope"
	_, err = bad.Session()
	assert.ErrorIs(t, err, ErrMissingTenantID)

	bad = valid
	bad.UserID = ""
	_, err = bad.Session()
	assert.ErrorIs(t, err, ErrMissingUserID)

	bad = valid
	bad.Role = "courier"
	_, err = bad.Session()
	assert.ErrorIs(t, err, ErrInvalidRole)
}
