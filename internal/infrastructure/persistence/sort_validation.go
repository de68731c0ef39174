package persistence

import (
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC, defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"status":        true,
	"total_amount":  true,
	"shipping_cost": true,
}

// QuoteSortFields contains allowed sort fields for shipping quotes
var QuoteSortFields = map[string]bool{
	"created_at":              true,
	"price":                   true,
	"estimated_delivery_days": true,
	"status":                  true,
}

// CompanySortFields contains allowed sort fields for shipping companies
var CompanySortFields = map[string]bool{
	"created_at":           true,
	"name":                 true,
	"status":               true,
	"completed_deliveries": true,
}

// paginate applies the filter's whitelisted ordering and page window
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if limit := filter.Limit(); limit > 0 {
		query = query.Offset(filter.Offset()).Limit(limit)
	}
	return query
}
