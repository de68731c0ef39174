// Package api declares every HTTP endpoint once. The router registers routes
// from these values and the client package builds request URLs from them.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/marketplace/backend/internal/domain/identity"
)

// BasePath prefixes every endpoint path
const BasePath = "/api"

// Path parameter names
const (
	ParamOrderID   = "orderId"
	ParamQuoteID   = "quoteId"
	ParamCompanyID = "companyId"
)

// Endpoint is one API operation
type Endpoint struct {
	Name   string
	Method string
	// Path is relative to BasePath and uses gin ":param" segments
	Path string
	// Roles allowed to call the endpoint; admin is always allowed.
	// Empty means any authenticated session.
	Roles []identity.Role
}

// FullPath returns the route template including BasePath
func (e Endpoint) FullPath() string {
	return BasePath + e.Path
}

// URL fills the ":param" segments in order and returns the request path
func (e Endpoint) URL(params ...string) (string, error) {
	segments := strings.Split(e.FullPath(), "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(params) || params[next] == "" {
			return "", fmt.Errorf("endpoint %s: missing value for %s", e.Name, seg)
		}
		segments[i] = params[next]
		next++
	}
	if next != len(params) {
		return "", fmt.Errorf("endpoint %s: %d path params given, %d used", e.Name, len(params), next)
	}
	return strings.Join(segments, "/"), nil
}

func roles(r ...identity.Role) []identity.Role { return r }

// Buyer endpoints
var (
	CreateOrder = Endpoint{
		Name: "createOrder", Method: http.MethodPost, Path: "/orders",
		Roles: roles(identity.RoleBuyer),
	}
	ListBuyerOrders = Endpoint{
		Name: "listBuyerOrders", Method: http.MethodGet, Path: "/orders",
		Roles: roles(identity.RoleBuyer),
	}
	GetOrder = Endpoint{
		Name: "getOrder", Method: http.MethodGet, Path: "/orders/:orderId",
	}
	CancelOrder = Endpoint{
		Name: "cancelOrder", Method: http.MethodPost, Path: "/orders/:orderId/cancel",
		Roles: roles(identity.RoleBuyer),
	}
	GetTracking = Endpoint{
		Name: "getTracking", Method: http.MethodGet, Path: "/orders/:orderId/tracking",
		Roles: roles(identity.RoleBuyer, identity.RoleSeller),
	}
	ListOrderQuotes = Endpoint{
		Name: "listOrderQuotes", Method: http.MethodGet, Path: "/orders/:orderId/shipping-quotes",
		Roles: roles(identity.RoleBuyer, identity.RoleSeller, identity.RoleShippingCompany),
	}
	SelectQuote = Endpoint{
		Name: "selectQuote", Method: http.MethodPut, Path: "/orders/:orderId/shipping",
		Roles: roles(identity.RoleBuyer),
	}
)

// Shipping company endpoints
var (
	SubmitQuote = Endpoint{
		Name: "submitQuote", Method: http.MethodPost, Path: "/shipping-quotes",
		Roles: roles(identity.RoleShippingCompany),
	}
	ListCompanyQuotes = Endpoint{
		Name: "listCompanyQuotes", Method: http.MethodGet, Path: "/shipping-quotes/mine",
		Roles: roles(identity.RoleShippingCompany),
	}
	CompleteQuote = Endpoint{
		Name: "completeQuote", Method: http.MethodPut, Path: "/shipping-quotes/:quoteId/complete",
		Roles: roles(identity.RoleShippingCompany),
	}
	RegisterCompany = Endpoint{
		Name: "registerCompany", Method: http.MethodPost, Path: "/shipping-companies",
		Roles: roles(identity.RoleShippingCompany),
	}
	GetCompany = Endpoint{
		Name: "getCompany", Method: http.MethodGet, Path: "/shipping-companies/:companyId",
	}
)

// Seller endpoints
var (
	ListSellerOrders = Endpoint{
		Name: "listSellerOrders", Method: http.MethodGet, Path: "/seller/orders",
		Roles: roles(identity.RoleSeller),
	}
	UpdateOrderStatus = Endpoint{
		Name: "updateOrderStatus", Method: http.MethodPut, Path: "/seller/orders/:orderId/status",
		Roles: roles(identity.RoleSeller),
	}
	GetPaymentPreferences = Endpoint{
		Name: "getPaymentPreferences", Method: http.MethodGet, Path: "/seller/payment-preferences",
		Roles: roles(identity.RoleSeller),
	}
	TogglePaymentMethod = Endpoint{
		Name: "togglePaymentMethod", Method: http.MethodPost, Path: "/seller/payment-preferences/toggle",
		Roles: roles(identity.RoleSeller),
	}
	ReplacePaymentMethods = Endpoint{
		Name: "replacePaymentMethods", Method: http.MethodPut, Path: "/seller/payment-preferences",
		Roles: roles(identity.RoleSeller),
	}
)

// Admin endpoints
var (
	UpdateTracking = Endpoint{
		Name: "updateTracking", Method: http.MethodPut, Path: "/admin/orders/:orderId/tracking",
		Roles: roles(identity.RoleSeller),
	}
	ListCompanies = Endpoint{
		Name: "listCompanies", Method: http.MethodGet, Path: "/admin/shipping-companies",
		Roles: roles(identity.RoleAdmin),
	}
	ChangeCompanyStatus = Endpoint{
		Name: "changeCompanyStatus", Method: http.MethodPut, Path: "/admin/shipping-companies/:companyId/status",
		Roles: roles(identity.RoleAdmin),
	}
)

// All returns every endpoint in declaration order
func All() []Endpoint {
	return []Endpoint{
		CreateOrder, ListBuyerOrders, GetOrder, CancelOrder, GetTracking, ListOrderQuotes, SelectQuote,
		SubmitQuote, ListCompanyQuotes, CompleteQuote, RegisterCompany, GetCompany,
		ListSellerOrders, UpdateOrderStatus, GetPaymentPreferences, TogglePaymentMethod, ReplacePaymentMethods,
		UpdateTracking, ListCompanies, ChangeCompanyStatus,
	}
}
