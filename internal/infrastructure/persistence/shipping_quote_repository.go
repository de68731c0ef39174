package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShippingQuoteRepository implements shipping.ShippingQuoteRepository using GORM
type GormShippingQuoteRepository struct {
	db *gorm.DB
}

// NewGormShippingQuoteRepository creates a new GormShippingQuoteRepository
func NewGormShippingQuoteRepository(db *gorm.DB) *GormShippingQuoteRepository {
	return &GormShippingQuoteRepository{db: db}
}

// FindByID finds a quote within a tenant
func (r *GormShippingQuoteRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shipping.ShippingQuote, error) {
	var m models.ShippingQuoteModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByOrder returns the order's quotes in submission order
func (r *GormShippingQuoteRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]shipping.ShippingQuote, error) {
	var rows []models.ShippingQuoteModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return quotesToDomain(rows), nil
}

// FindByCompany lists a company's quotes
func (r *GormShippingQuoteRepository) FindByCompany(ctx context.Context, tenantID, companyID uuid.UUID, filter shared.Filter) ([]shipping.ShippingQuote, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("tenant_id = ? AND shipping_company_id = ?", tenantID, companyID)
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ShippingQuoteModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ShippingQuoteModel
	if err := paginate(r.db.WithContext(ctx).Scopes(scope), filter, QuoteSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return quotesToDomain(rows), total, nil
}

// ExistsPendingForCompany reports whether the company already has a pending quote on the order
func (r *GormShippingQuoteRepository) ExistsPendingForCompany(ctx context.Context, tenantID, orderID, companyID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShippingQuoteModel{}).
		Where("tenant_id = ? AND order_id = ? AND shipping_company_id = ? AND status = ?",
			tenantID, orderID, companyID, shipping.QuoteStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a quote
func (r *GormShippingQuoteRepository) Save(ctx context.Context, quote *shipping.ShippingQuote) error {
	return r.db.WithContext(ctx).Save(models.ShippingQuoteModelFromDomain(quote)).Error
}

// SaveAll saves the quotes in one transaction. Hitting the one-accepted-quote
// index means another selection committed first, which is reported as a
// concurrency conflict.
func (r *GormShippingQuoteRepository) SaveAll(ctx context.Context, quotes []*shipping.ShippingQuote) error {
	if len(quotes) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range quotes {
			if err := tx.Save(models.ShippingQuoteModelFromDomain(q)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConcurrencyConflict
	}
	return err
}

func quotesToDomain(rows []models.ShippingQuoteModel) []shipping.ShippingQuote {
	quotes := make([]shipping.ShippingQuote, len(rows))
	for i := range rows {
		quotes[i] = *rows[i].ToDomain()
	}
	return quotes
}

var _ shipping.ShippingQuoteRepository = (*GormShippingQuoteRepository)(nil)
