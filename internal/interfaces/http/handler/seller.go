package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/marketplace/backend/internal/application/order"
	appseller "github.com/marketplace/backend/internal/application/seller"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

// SellerHandler serves the seller dashboard: orders and payment preferences
type SellerHandler struct {
	BaseHandler
	orderService   *apporder.SellerOrderService
	paymentService *appseller.PaymentPreferenceService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(orderService *apporder.SellerOrderService, paymentService *appseller.PaymentPreferenceService) *SellerHandler {
	return &SellerHandler{orderService: orderService, paymentService: paymentService}
}

// Routes implements router.RouteRegistrar
func (h *SellerHandler) Routes() []router.Route {
	return []router.Route{
		{Endpoint: api.ListSellerOrders, Handler: h.ListOrders},
		{Endpoint: api.UpdateOrderStatus, Handler: h.UpdateOrderStatus},
		{Endpoint: api.GetPaymentPreferences, Handler: h.GetPaymentPreferences},
		{Endpoint: api.TogglePaymentMethod, Handler: h.TogglePaymentMethod},
		{Endpoint: api.ReplacePaymentMethods, Handler: h.ReplacePaymentMethods},
	}
}

// ListOrders godoc
// @Summary      List the seller's orders
// @Tags         seller
// @Produce      json
// @Param        search   query string false "Order number or product name"
// @Param        status   query string false "Order status"
// @Param        page     query int    false "Page"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} dto.Response{data=apporder.SellerOrderList}
// @Router       /seller/orders [get]
func (h *SellerHandler) ListOrders(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var filter apporder.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	list, err := h.orderService.ListSellerOrders(c.Request.Context(), session, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// UpdateOrderStatus godoc
// @Summary      Move an order to its next status
// @Description  Returns the updated order and the refreshed seller order list.
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body apporder.UpdateOrderStatusInput true "Status"
// @Success      200 {object} dto.Response{data=apporder.UpdateOrderStatusResult}
// @Router       /seller/orders/{orderId}/status [put]
func (h *SellerHandler) UpdateOrderStatus(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}
	var input apporder.UpdateOrderStatusInput
	if !h.bindJSON(c, &input) {
		return
	}

	result, err := h.orderService.UpdateOrderStatus(c.Request.Context(), session, orderID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetPaymentPreferences godoc
// @Summary      Accepted payment methods
// @Tags         seller
// @Produce      json
// @Success      200 {object} dto.Response{data=appseller.PaymentPreferencesResponse}
// @Router       /seller/payment-preferences [get]
func (h *SellerHandler) GetPaymentPreferences(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.Get(c.Request.Context(), session)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TogglePaymentMethod godoc
// @Summary      Turn one payment method on or off
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request body appseller.ToggleMethodInput true "Method"
// @Success      200 {object} dto.Response{data=appseller.PaymentPreferencesResponse}
// @Router       /seller/payment-preferences/toggle [post]
func (h *SellerHandler) TogglePaymentMethod(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var input appseller.ToggleMethodInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.paymentService.Toggle(c.Request.Context(), session, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReplacePaymentMethods godoc
// @Summary      Replace the accepted payment methods
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request body appseller.ReplaceMethodsInput true "Methods"
// @Success      200 {object} dto.Response{data=appseller.PaymentPreferencesResponse}
// @Router       /seller/payment-preferences [put]
func (h *SellerHandler) ReplacePaymentMethods(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var input appseller.ReplaceMethodsInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.paymentService.Replace(c.Request.Context(), session, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
