package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShippingCompanyRepository implements shipping.ShippingCompanyRepository using GORM
type GormShippingCompanyRepository struct {
	db *gorm.DB
}

// NewGormShippingCompanyRepository creates a new GormShippingCompanyRepository
func NewGormShippingCompanyRepository(db *gorm.DB) *GormShippingCompanyRepository {
	return &GormShippingCompanyRepository{db: db}
}

// FindByID finds a company within a tenant
func (r *GormShippingCompanyRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shipping.ShippingCompany, error) {
	return r.findOne(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

// FindByUserID finds the company owned by a user
func (r *GormShippingCompanyRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*shipping.ShippingCompany, error) {
	return r.findOne(ctx, "tenant_id = ? AND user_id = ?", tenantID, userID)
}

func (r *GormShippingCompanyRepository) findOne(ctx context.Context, where string, args ...any) (*shipping.ShippingCompany, error) {
	var m models.ShippingCompanyModel
	if err := r.db.WithContext(ctx).Where(where, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists companies, optionally narrowed by status and a name search
func (r *GormShippingCompanyRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]shipping.ShippingCompany, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("tenant_id = ?", tenantID)
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ShippingCompanyModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ShippingCompanyModel
	if err := paginate(r.db.WithContext(ctx).Scopes(scope), filter, CompanySortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	companies := make([]shipping.ShippingCompany, len(rows))
	for i := range rows {
		companies[i] = *rows[i].ToDomain()
	}
	return companies, total, nil
}

// Save creates or updates a company
func (r *GormShippingCompanyRepository) Save(ctx context.Context, company *shipping.ShippingCompany) error {
	err := r.db.WithContext(ctx).Save(models.ShippingCompanyModelFromDomain(company)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError("ALREADY_EXISTS", "This account already has a shipping company")
	}
	return err
}

// SaveWithLock saves with optimistic locking on the version column
func (r *GormShippingCompanyRepository) SaveWithLock(ctx context.Context, company *shipping.ShippingCompany) error {
	m := models.ShippingCompanyModelFromDomain(company)
	expected := m.Version
	m.Version = expected + 1
	m.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.ShippingCompanyModel{}).
		Where("id = ? AND version = ?", m.ID, expected).
		Select("*").
		Omit("id", "tenant_id", "user_id", "created_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.ShippingCompanyModel{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}

	company.Version = m.Version
	company.UpdatedAt = m.UpdatedAt
	return nil
}

var _ shipping.ShippingCompanyRepository = (*GormShippingCompanyRepository)(nil)
