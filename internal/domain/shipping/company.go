package shipping

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CompanyStatus represents the verification status of a shipping company
type CompanyStatus string

const (
	CompanyStatusPendingVerification CompanyStatus = "pending_verification"
	CompanyStatusVerified            CompanyStatus = "verified"
	CompanyStatusRejected            CompanyStatus = "rejected"
	CompanyStatusSuspended           CompanyStatus = "suspended"
)

var companyTransitions = shared.NewTransitionTable(AggregateTypeShippingCompany, map[CompanyStatus][]CompanyStatus{
	CompanyStatusPendingVerification: {CompanyStatusVerified, CompanyStatusRejected},
	CompanyStatusVerified:            {CompanyStatusSuspended},
	CompanyStatusSuspended:           {CompanyStatusVerified},
	CompanyStatusRejected:            {CompanyStatusPendingVerification},
})

// IsValid checks if the status is a valid CompanyStatus
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusPendingVerification, CompanyStatusVerified, CompanyStatusRejected, CompanyStatusSuspended:
		return true
	}
	return false
}

// String returns the string representation of CompanyStatus
func (s CompanyStatus) String() string {
	return string(s)
}

// CanTransitionTo checks the declared company transition table
func (s CompanyStatus) CanTransitionTo(target CompanyStatus) bool {
	return companyTransitions.Allows(s, target)
}

// ContactInfo is how the marketplace reaches a shipping company
type ContactInfo struct {
	Email         string
	Phone         string
	ContactPerson string
}

// CompanyInfo is the registration profile of a shipping company
type CompanyInfo struct {
	RegistrationNumber string
	Address            string
	Description        string
	Website            string
}

// CompanyStats accumulates delivery performance
type CompanyStats struct {
	CompletedDeliveries int
	RatingTotal         int
	RatingCount         int
}

// AverageRating returns the mean rating rounded to two places, zero when unrated
func (s CompanyStats) AverageRating() decimal.Decimal {
	if s.RatingCount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.RatingTotal)).
		Div(decimal.NewFromInt(int64(s.RatingCount))).
		Round(2)
}

// ShippingCompany is a carrier business that quotes on marketplace orders
type ShippingCompany struct {
	shared.TenantAggregateRoot
	UserID       uuid.UUID
	Name         string
	Contact      ContactInfo
	Company      CompanyInfo
	ServiceAreas []string
	Status       CompanyStatus
	StatusReason string
	Stats        CompanyStats
	VerifiedAt   *time.Time
}

// NewShippingCompany registers a company awaiting verification
func NewShippingCompany(tenantID, userID uuid.UUID, name string, contact ContactInfo, info CompanyInfo, serviceAreas []string) (*ShippingCompany, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Owner user ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	if strings.TrimSpace(contact.Email) == "" && strings.TrimSpace(contact.Phone) == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "An email or phone contact is required")
	}

	c := &ShippingCompany{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Name:                name,
		Contact:             contact,
		Company:             info,
		ServiceAreas:        normalizeAreas(serviceAreas),
		Status:              CompanyStatusPendingVerification,
	}

	c.AddDomainEvent(NewCompanyRegisteredEvent(c))

	return c, nil
}

// ChangeStatus moves the company through its verification lifecycle
func (c *ShippingCompany) ChangeStatus(target CompanyStatus, reason string) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown shipping company status: "+string(target))
	}
	if err := companyTransitions.Check(c.Status, target); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if (target == CompanyStatusRejected || target == CompanyStatusSuspended) && reason == "" {
		return shared.NewDomainError("INVALID_REASON", "A reason is required to reject or suspend a company")
	}

	now := time.Now()
	previous := c.Status
	c.Status = target
	c.StatusReason = reason
	if target == CompanyStatusVerified {
		c.VerifiedAt = &now
	}
	c.UpdatedAt = now

	c.AddDomainEvent(NewCompanyStatusChangedEvent(c, previous))
	return nil
}

// UpdateServiceAreas replaces the regions the company serves
func (c *ShippingCompany) UpdateServiceAreas(areas []string) {
	c.ServiceAreas = normalizeAreas(areas)
	c.UpdatedAt = time.Now()
}

// RecordDelivery counts a completed delivery with an optional 1..5 rating
func (c *ShippingCompany) RecordDelivery(rating int) error {
	if rating != 0 && (rating < 1 || rating > 5) {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	c.Stats.CompletedDeliveries++
	if rating > 0 {
		c.Stats.RatingTotal += rating
		c.Stats.RatingCount++
	}
	c.UpdatedAt = time.Now()
	return nil
}

// CanQuote reports whether the company may submit quotes
func (c *ShippingCompany) CanQuote() bool {
	return c.Status == CompanyStatusVerified
}

// Serves reports whether the company covers the given area. A company with no
// declared areas serves everywhere.
func (c *ShippingCompany) Serves(area string) bool {
	if len(c.ServiceAreas) == 0 {
		return true
	}
	area = strings.ToLower(strings.TrimSpace(area))
	for _, a := range c.ServiceAreas {
		if strings.ToLower(a) == area {
			return true
		}
	}
	return false
}

func normalizeAreas(areas []string) []string {
	out := make([]string, 0, len(areas))
	seen := make(map[string]struct{}, len(areas))
	for _, a := range areas {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
