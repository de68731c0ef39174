package client

import (
	"context"

	"github.com/google/uuid"
	apporder "github.com/marketplace/backend/internal/application/order"
	appseller "github.com/marketplace/backend/internal/application/seller"
	appshipping "github.com/marketplace/backend/internal/application/shipping"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// ==================== Orders ====================

func (c *Client) CreateOrder(ctx context.Context, input apporder.CreateOrderInput) (*apporder.OrderResponse, error) {
	return call[apporder.OrderResponse](ctx, c, api.CreateOrder, nil, nil, input)
}

func (c *Client) ListBuyerOrders(ctx context.Context, filter apporder.OrderListFilter) (*apporder.BuyerOrderListView, error) {
	q := pageQuery(filter.Search, filter.Status, filter.Page, filter.PageSize)
	return call[apporder.BuyerOrderListView](ctx, c, api.ListBuyerOrders, nil, q, nil)
}

func (c *Client) GetOrder(ctx context.Context, orderID uuid.UUID) (*apporder.OrderResponse, error) {
	return call[apporder.OrderResponse](ctx, c, api.GetOrder, []string{orderID.String()}, nil, nil)
}

func (c *Client) CancelOrder(ctx context.Context, orderID uuid.UUID, input apporder.CancelOrderInput) (*apporder.OrderResponse, error) {
	return call[apporder.OrderResponse](ctx, c, api.CancelOrder, []string{orderID.String()}, nil, input)
}

// ==================== Tracking ====================

func (c *Client) GetTracking(ctx context.Context, orderID uuid.UUID) (*apporder.TrackingView, error) {
	return call[apporder.TrackingView](ctx, c, api.GetTracking, []string{orderID.String()}, nil, nil)
}

func (c *Client) UpdateTracking(ctx context.Context, orderID uuid.UUID, input apporder.UpdateTrackingInput) (*apporder.TrackingView, error) {
	return call[apporder.TrackingView](ctx, c, api.UpdateTracking, []string{orderID.String()}, nil, input)
}

// ==================== Shipping quotes ====================

func (c *Client) ListOrderQuotes(ctx context.Context, orderID uuid.UUID) ([]appshipping.QuoteResponse, error) {
	quotes, err := call[[]appshipping.QuoteResponse](ctx, c, api.ListOrderQuotes, []string{orderID.String()}, nil, nil)
	if err != nil {
		return nil, err
	}
	return *quotes, nil
}

func (c *Client) SelectQuote(ctx context.Context, orderID uuid.UUID, quoteID uuid.UUID) (*appshipping.SelectQuoteResponse, error) {
	return call[appshipping.SelectQuoteResponse](ctx, c, api.SelectQuote, []string{orderID.String()}, nil,
		appshipping.SelectQuoteInput{QuoteID: quoteID})
}

func (c *Client) SubmitQuote(ctx context.Context, input appshipping.SubmitQuoteInput) (*appshipping.QuoteResponse, error) {
	return call[appshipping.QuoteResponse](ctx, c, api.SubmitQuote, nil, nil, input)
}

func (c *Client) ListCompanyQuotes(ctx context.Context, page, pageSize int) (*dto.Page[appshipping.QuoteResponse], error) {
	return call[dto.Page[appshipping.QuoteResponse]](ctx, c, api.ListCompanyQuotes, nil, pageQuery("", "", page, pageSize), nil)
}

func (c *Client) CompleteQuote(ctx context.Context, quoteID uuid.UUID) (*appshipping.QuoteResponse, error) {
	return call[appshipping.QuoteResponse](ctx, c, api.CompleteQuote, []string{quoteID.String()}, nil, nil)
}

// ==================== Shipping companies ====================

func (c *Client) RegisterCompany(ctx context.Context, input appshipping.RegisterCompanyInput) (*appshipping.CompanyResponse, error) {
	return call[appshipping.CompanyResponse](ctx, c, api.RegisterCompany, nil, nil, input)
}

func (c *Client) GetCompany(ctx context.Context, companyID uuid.UUID) (*appshipping.CompanyResponse, error) {
	return call[appshipping.CompanyResponse](ctx, c, api.GetCompany, []string{companyID.String()}, nil, nil)
}

func (c *Client) ListCompanies(ctx context.Context, filter appshipping.CompanyListFilter) (*dto.Page[appshipping.CompanyResponse], error) {
	q := pageQuery(filter.Search, filter.Status, filter.Page, filter.PageSize)
	return call[dto.Page[appshipping.CompanyResponse]](ctx, c, api.ListCompanies, nil, q, nil)
}

func (c *Client) ChangeCompanyStatus(ctx context.Context, companyID uuid.UUID, input appshipping.ChangeCompanyStatusInput) (*appshipping.CompanyResponse, error) {
	return call[appshipping.CompanyResponse](ctx, c, api.ChangeCompanyStatus, []string{companyID.String()}, nil, input)
}

// ==================== Seller ====================

func (c *Client) ListSellerOrders(ctx context.Context, filter apporder.OrderListFilter) (*apporder.SellerOrderList, error) {
	q := pageQuery(filter.Search, filter.Status, filter.Page, filter.PageSize)
	return call[apporder.SellerOrderList](ctx, c, api.ListSellerOrders, nil, q, nil)
}

// UpdateOrderStatus returns the updated order together with the seller's refreshed first page
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input apporder.UpdateOrderStatusInput) (*apporder.UpdateOrderStatusResult, error) {
	return call[apporder.UpdateOrderStatusResult](ctx, c, api.UpdateOrderStatus, []string{orderID.String()}, nil, input)
}

func (c *Client) GetPaymentPreferences(ctx context.Context) (*appseller.PaymentPreferencesResponse, error) {
	return call[appseller.PaymentPreferencesResponse](ctx, c, api.GetPaymentPreferences, nil, nil, nil)
}

func (c *Client) TogglePaymentMethod(ctx context.Context, method string) (*appseller.PaymentPreferencesResponse, error) {
	return call[appseller.PaymentPreferencesResponse](ctx, c, api.TogglePaymentMethod, nil, nil,
		appseller.ToggleMethodInput{Method: method})
}

func (c *Client) ReplacePaymentMethods(ctx context.Context, methods []string) (*appseller.PaymentPreferencesResponse, error) {
	return call[appseller.PaymentPreferencesResponse](ctx, c, api.ReplacePaymentMethods, nil, nil,
		appseller.ReplaceMethodsInput{Methods: methods})
}
