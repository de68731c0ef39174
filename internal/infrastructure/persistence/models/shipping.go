package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// ShippingQuoteModel is the persistence model for the ShippingQuote aggregate
type ShippingQuoteModel struct {
	TenantAggregateModel
	OrderID               uuid.UUID            `gorm:"type:uuid;not null;index"`
	ShippingCompanyID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Price                 decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	EstimatedDeliveryDays int                  `gorm:"not null"`
	Notes                 string               `gorm:"type:text"`
	Status                shipping.QuoteStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason       string               `gorm:"type:varchar(500)"`
	AcceptedAt            *time.Time
	CompletedAt           *time.Time
}

// TableName returns the table name for GORM
func (ShippingQuoteModel) TableName() string {
	return "shipping_quotes"
}

// ToDomain converts the persistence model to a domain ShippingQuote
func (m *ShippingQuoteModel) ToDomain() *shipping.ShippingQuote {
	return &shipping.ShippingQuote{
		TenantAggregateRoot:   m.ToDomainTenantAggregateRoot(),
		OrderID:               m.OrderID,
		ShippingCompanyID:     m.ShippingCompanyID,
		Price:                 m.Price,
		EstimatedDeliveryDays: m.EstimatedDeliveryDays,
		Notes:                 m.Notes,
		Status:                m.Status,
		RejectionReason:       m.RejectionReason,
		AcceptedAt:            m.AcceptedAt,
		CompletedAt:           m.CompletedAt,
	}
}

// ShippingQuoteModelFromDomain creates a persistence model from a domain quote
func ShippingQuoteModelFromDomain(q *shipping.ShippingQuote) *ShippingQuoteModel {
	m := &ShippingQuoteModel{
		OrderID:               q.OrderID,
		ShippingCompanyID:     q.ShippingCompanyID,
		Price:                 q.Price,
		EstimatedDeliveryDays: q.EstimatedDeliveryDays,
		Notes:                 q.Notes,
		Status:                q.Status,
		RejectionReason:       q.RejectionReason,
		AcceptedAt:            q.AcceptedAt,
		CompletedAt:           q.CompletedAt,
	}
	m.FromDomainTenantAggregateRoot(q.TenantAggregateRoot)
	return m
}

// ShippingCompanyModel is the persistence model for the ShippingCompany aggregate
type ShippingCompanyModel struct {
	TenantAggregateModel
	UserID              uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex"`
	Name                string                 `gorm:"type:varchar(200);not null"`
	ContactEmail        string                 `gorm:"type:varchar(200)"`
	ContactPhone        string                 `gorm:"type:varchar(50)"`
	ContactPerson       string                 `gorm:"type:varchar(200)"`
	RegistrationNumber  string                 `gorm:"type:varchar(100)"`
	Address             string                 `gorm:"type:varchar(500)"`
	Description         string                 `gorm:"type:text"`
	Website             string                 `gorm:"type:varchar(300)"`
	ServiceAreas        []string               `gorm:"type:text;serializer:json"`
	Status              shipping.CompanyStatus `gorm:"type:varchar(30);not null;default:'pending_verification';index"`
	StatusReason        string                 `gorm:"type:varchar(500)"`
	CompletedDeliveries int                    `gorm:"not null;default:0"`
	RatingTotal         int                    `gorm:"not null;default:0"`
	RatingCount         int                    `gorm:"not null;default:0"`
	VerifiedAt          *time.Time
}

// TableName returns the table name for GORM
func (ShippingCompanyModel) TableName() string {
	return "shipping_companies"
}

// ToDomain converts the persistence model to a domain ShippingCompany
func (m *ShippingCompanyModel) ToDomain() *shipping.ShippingCompany {
	return &shipping.ShippingCompany{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		UserID:              m.UserID,
		Name:                m.Name,
		Contact: shipping.ContactInfo{
			Email:         m.ContactEmail,
			Phone:         m.ContactPhone,
			ContactPerson: m.ContactPerson,
		},
		Company: shipping.CompanyInfo{
			RegistrationNumber: m.RegistrationNumber,
			Address:            m.Address,
			Description:        m.Description,
			Website:            m.Website,
		},
		ServiceAreas: m.ServiceAreas,
		Status:       m.Status,
		StatusReason: m.StatusReason,
		Stats: shipping.CompanyStats{
			CompletedDeliveries: m.CompletedDeliveries,
			RatingTotal:         m.RatingTotal,
			RatingCount:         m.RatingCount,
		},
		VerifiedAt: m.VerifiedAt,
	}
}

// ShippingCompanyModelFromDomain creates a persistence model from a domain company
func ShippingCompanyModelFromDomain(c *shipping.ShippingCompany) *ShippingCompanyModel {
	m := &ShippingCompanyModel{
		UserID:              c.UserID,
		Name:                c.Name,
		ContactEmail:        c.Contact.Email,
		ContactPhone:        c.Contact.Phone,
		ContactPerson:       c.Contact.ContactPerson,
		RegistrationNumber:  c.Company.RegistrationNumber,
		Address:             c.Company.Address,
		Description:         c.Company.Description,
		Website:             c.Company.Website,
		ServiceAreas:        c.ServiceAreas,
		Status:              c.Status,
		StatusReason:        c.StatusReason,
		CompletedDeliveries: c.Stats.CompletedDeliveries,
		RatingTotal:         c.Stats.RatingTotal,
		RatingCount:         c.Stats.RatingCount,
		VerifiedAt:          c.VerifiedAt,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}
