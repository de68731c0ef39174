package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		})
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var m models.OrderModel
	if err := r.withChildren(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	var m models.OrderModel
	if err := r.withChildren(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByBuyer lists a buyer's orders
func (r *GormOrderRepository) FindByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	return r.list(ctx, filter, "tenant_id = ? AND buyer_id = ?", tenantID, buyerID)
}

// FindBySeller lists a seller's orders
func (r *GormOrderRepository) FindBySeller(ctx context.Context, tenantID, sellerID uuid.UUID, filter shared.Filter) ([]order.Order, int64, error) {
	return r.list(ctx, filter, "tenant_id = ? AND seller_id = ?", tenantID, sellerID)
}

func (r *GormOrderRepository) list(ctx context.Context, filter shared.Filter, where string, args ...any) ([]order.Order, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where(where, args...)
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			db = db.Where("LOWER(order_number) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := paginate(r.withChildren(ctx).Scopes(scope), filter, OrderSortFields).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]order.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// Save creates or updates an order. Items are written once; history rows are
// append-only so existing ones are left untouched.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	m := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return err
		}
		return saveOrderChildren(tx, m)
	})
}

// SaveWithLock saves with optimistic locking on the version column
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	m := models.OrderModelFromDomain(o)
	expected := m.Version
	m.Version = expected + 1
	m.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", m.ID, expected).
			Updates(m.MutableColumns())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.OrderModel{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}
		return saveOrderChildren(tx, m)
	})
	if err != nil {
		return err
	}

	o.Version = m.Version
	o.UpdatedAt = m.UpdatedAt
	return nil
}

func saveOrderChildren(tx *gorm.DB, m *models.OrderModel) error {
	if len(m.Items) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m.Items).Error; err != nil {
			return err
		}
	}
	if len(m.StatusHistory) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&m.StatusHistory).Error; err != nil {
			return err
		}
	}
	return nil
}

// GenerateOrderNumber generates the next order number for a tenant.
// Format: ORD-YYYY-NNNNN (e.g., ORD-2026-00001)
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("ORD-%d-", time.Now().Year())

	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("tenant_id = ? AND order_number LIKE ?", tenantID, prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return "", err
	}

	next := 1
	if len(numbers) > 0 {
		var n int
		if _, scanErr := fmt.Sscanf(strings.TrimPrefix(numbers[0], prefix), "%d", &n); scanErr == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%05d", prefix, next), nil
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
