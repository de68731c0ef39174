package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentPreferenceRepository implements seller.PaymentPreferenceRepository using GORM
type GormPaymentPreferenceRepository struct {
	db *gorm.DB
}

// NewGormPaymentPreferenceRepository creates a new GormPaymentPreferenceRepository
func NewGormPaymentPreferenceRepository(db *gorm.DB) *GormPaymentPreferenceRepository {
	return &GormPaymentPreferenceRepository{db: db}
}

// FindBySeller returns the seller's stored preferences
func (r *GormPaymentPreferenceRepository) FindBySeller(ctx context.Context, tenantID, sellerID uuid.UUID) (*seller.PaymentPreferences, error) {
	var m models.PaymentPreferenceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND seller_id = ?", tenantID, sellerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// Save upserts the preferences keyed by seller
func (r *GormPaymentPreferenceRepository) Save(ctx context.Context, prefs *seller.PaymentPreferences) error {
	if len(prefs.Methods) == 0 {
		return seller.ErrLastPaymentMethod
	}
	m := models.PaymentPreferenceModelFromDomain(prefs)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seller_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"methods", "updated_at"}),
		}).
		Create(m).Error
}

var _ seller.PaymentPreferenceRepository = (*GormPaymentPreferenceRepository)(nil)
