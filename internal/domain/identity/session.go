package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Role is the marketplace persona a session acts as
type Role string

const (
	RoleBuyer           Role = "buyer"
	RoleSeller          Role = "seller"
	RoleAdmin           Role = "admin"
	RoleShippingCompany Role = "shipping_company"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin, RoleShippingCompany:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Session is the verified caller of a request. It is built once from credentials
// at the HTTP edge and handed to every use case explicitly.
type Session struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	Role        Role
	DisplayName string
}

// NewSession validates and builds a Session
func NewSession(tenantID, userID uuid.UUID, role Role, displayName string) (Session, error) {
	if tenantID == uuid.Nil {
		return Session{}, shared.NewDomainError("UNAUTHORIZED", "Session has no tenant")
	}
	if userID == uuid.Nil {
		return Session{}, shared.NewDomainError("UNAUTHORIZED", "Session has no user")
	}
	if !role.IsValid() {
		return Session{}, shared.NewDomainError("UNAUTHORIZED", "Session role is not recognized")
	}
	return Session{
		TenantID:    tenantID,
		UserID:      userID,
		Role:        role,
		DisplayName: displayName,
	}, nil
}

func (s Session) IsAdmin() bool           { return s.Role == RoleAdmin }
func (s Session) IsSeller() bool          { return s.Role == RoleSeller }
func (s Session) IsBuyer() bool           { return s.Role == RoleBuyer }
func (s Session) IsShippingCompany() bool { return s.Role == RoleShippingCompany }

// CanActAsSeller reports whether the session may operate on the given seller's data
func (s Session) CanActAsSeller(sellerID uuid.UUID) bool {
	return s.IsAdmin() || (s.IsSeller() && s.UserID == sellerID)
}

// CanActAsBuyer reports whether the session may operate on the given buyer's data
func (s Session) CanActAsBuyer(buyerID uuid.UUID) bool {
	return s.IsAdmin() || (s.IsBuyer() && s.UserID == buyerID)
}

// RequireRole returns ErrForbidden unless the session holds one of the roles.
// Admin always passes.
func (s Session) RequireRole(roles ...Role) error {
	if s.IsAdmin() {
		return nil
	}
	for _, r := range roles {
		if s.Role == r {
			return nil
		}
	}
	return shared.ErrForbidden
}

type sessionKey struct{}

// WithSession stores the session on a context
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored on a context, if any
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
