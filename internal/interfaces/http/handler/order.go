package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/marketplace/backend/internal/application/order"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

// OrderHandler serves the buyer order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *apporder.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporder.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Routes implements router.RouteRegistrar
func (h *OrderHandler) Routes() []router.Route {
	return []router.Route{
		{Endpoint: api.CreateOrder, Handler: h.CreateOrder},
		{Endpoint: api.ListBuyerOrders, Handler: h.ListBuyerOrders},
		{Endpoint: api.GetOrder, Handler: h.GetOrder},
		{Endpoint: api.CancelOrder, Handler: h.CancelOrder},
	}
}

// CreateOrder godoc
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body apporder.CreateOrderInput true "Order"
// @Success      201 {object} dto.Response{data=apporder.OrderResponse}
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var input apporder.CreateOrderInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.orderService.CreateOrder(c.Request.Context(), session, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListBuyerOrders godoc
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Param        search   query string false "Order number or product name"
// @Param        status   query string false "Order status"
// @Param        page     query int    false "Page"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} dto.Response{data=apporder.BuyerOrderListView}
// @Router       /orders [get]
func (h *OrderHandler) ListBuyerOrders(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var filter apporder.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	view, err := h.orderService.ListBuyerOrders(c.Request.Context(), session, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// GetOrder godoc
// @Summary      Order detail
// @Tags         orders
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response{data=apporder.OrderResponse}
// @Router       /orders/{orderId} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}

	resp, err := h.orderService.GetOrder(c.Request.Context(), session, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CancelOrder godoc
// @Summary      Cancel an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body apporder.CancelOrderInput false "Reason"
// @Success      200 {object} dto.Response{data=apporder.OrderResponse}
// @Router       /orders/{orderId}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}
	// the reason is optional, so is the body
	var input apporder.CancelOrderInput
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.orderService.CancelOrder(c.Request.Context(), session, orderID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
