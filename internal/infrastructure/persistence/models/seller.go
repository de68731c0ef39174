package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/seller"
)

// PaymentPreferenceModel stores a seller's accepted payment methods
type PaymentPreferenceModel struct {
	TenantAggregateModel
	SellerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Methods  []string  `gorm:"type:text;not null;serializer:json"`
}

// TableName returns the table name for GORM
func (PaymentPreferenceModel) TableName() string {
	return "seller_payment_preferences"
}

// ToDomain converts the persistence model to domain PaymentPreferences
func (m *PaymentPreferenceModel) ToDomain() *seller.PaymentPreferences {
	methods := make([]seller.PaymentMethod, len(m.Methods))
	for i, method := range m.Methods {
		methods[i] = seller.PaymentMethod(method)
	}
	return &seller.PaymentPreferences{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		SellerID:            m.SellerID,
		Methods:             methods,
	}
}

// PaymentPreferenceModelFromDomain creates a persistence model from domain preferences
func PaymentPreferenceModelFromDomain(p *seller.PaymentPreferences) *PaymentPreferenceModel {
	m := &PaymentPreferenceModel{
		SellerID: p.SellerID,
		Methods:  make([]string, len(p.Methods)),
	}
	for i, method := range p.Methods {
		m.Methods[i] = string(method)
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}
