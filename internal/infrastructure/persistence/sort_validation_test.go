package persistence

import (
	"testing"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE orders;--", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "created_at"},
		{"whitelisted field", "total_amount", "total_amount"},
		{"unknown field returns default", "buyer_email", "created_at"},
		{"injection returns default", "status; DROP TABLE orders;--", "created_at"},
		{"case sensitive", "STATUS", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, OrderSortFields, "created_at"))
		})
	}
}

func TestPaginate(t *testing.T) {
	db := newSQLiteDB(t)

	render := func(filter shared.Filter) string {
		return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			var rows []models.ShippingQuoteModel
			return paginate(tx.Model(&models.ShippingQuoteModel{}), filter, QuoteSortFields).Find(&rows)
		})
	}

	t.Run("whitelisted field and direction", func(t *testing.T) {
		sql := render(shared.Filter{OrderBy: "price", OrderDir: "asc", Page: 2, PageSize: 10})
		assert.Contains(t, sql, "ORDER BY price ASC")
		assert.Contains(t, sql, "LIMIT 10 OFFSET 10")
	})

	t.Run("unknown field falls back to created_at", func(t *testing.T) {
		sql := render(shared.Filter{OrderBy: "total_amount", PageSize: 5})
		assert.Contains(t, sql, "ORDER BY created_at DESC")
	})

	t.Run("page size is capped", func(t *testing.T) {
		sql := render(shared.Filter{Page: 1, PageSize: 1000})
		assert.Contains(t, sql, "LIMIT 100")
	})

	t.Run("zero page size is unbounded", func(t *testing.T) {
		assert.NotContains(t, render(shared.Filter{}), "LIMIT")
	})
}
