// Package models contains the GORM persistence models. Domain aggregates stay
// free of ORM tags; each model maps to and from its aggregate with
// ToDomain/FromDomain and is only used by the repositories.
//
//   - base.go: shared aggregate columns (id, tenant, version, timestamps)
//   - order.go: orders, order_items, order_status_history
//   - shipping.go: shipping_quotes, shipping_companies
//   - seller.go: seller_payment_preferences
package models
