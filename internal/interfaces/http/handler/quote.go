package handler

import (
	"github.com/gin-gonic/gin"
	appshipping "github.com/marketplace/backend/internal/application/shipping"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

// QuoteHandler serves shipping quotes for both sides of the auction
type QuoteHandler struct {
	BaseHandler
	quoteService *appshipping.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *appshipping.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Routes implements router.RouteRegistrar
func (h *QuoteHandler) Routes() []router.Route {
	return []router.Route{
		{Endpoint: api.ListOrderQuotes, Handler: h.ListOrderQuotes},
		{Endpoint: api.SelectQuote, Handler: h.SelectQuote},
		{Endpoint: api.SubmitQuote, Handler: h.SubmitQuote},
		{Endpoint: api.ListCompanyQuotes, Handler: h.ListCompanyQuotes},
		{Endpoint: api.CompleteQuote, Handler: h.CompleteQuote},
	}
}

// ListOrderQuotes godoc
// @Summary      Quotes on an order, in submission order
// @Tags         shipping
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response{data=[]appshipping.QuoteResponse}
// @Router       /orders/{orderId}/shipping-quotes [get]
func (h *QuoteHandler) ListOrderQuotes(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}

	quotes, err := h.quoteService.ListQuotes(c.Request.Context(), session, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if quotes == nil {
		quotes = []appshipping.QuoteResponse{}
	}
	h.Success(c, quotes)
}

// SelectQuote godoc
// @Summary      Choose the shipping quote for an order
// @Description  A stale order version yields 409 CONCURRENCY_CONFLICT.
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body appshipping.SelectQuoteInput true "Quote"
// @Success      200 {object} dto.Response{data=appshipping.SelectQuoteResponse}
// @Router       /orders/{orderId}/shipping [put]
func (h *QuoteHandler) SelectQuote(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}
	var input appshipping.SelectQuoteInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.quoteService.SelectQuote(c.Request.Context(), session, orderID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SubmitQuote godoc
// @Summary      Quote on an order
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        request body appshipping.SubmitQuoteInput true "Quote"
// @Success      201 {object} dto.Response{data=appshipping.QuoteResponse}
// @Router       /shipping-quotes [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	var input appshipping.SubmitQuoteInput
	if !h.bindJSON(c, &input) {
		return
	}

	resp, err := h.quoteService.SubmitQuote(c.Request.Context(), session, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCompanyQuotes godoc
// @Summary      The caller company's quotes
// @Tags         shipping
// @Produce      json
// @Param        page     query int false "Page"
// @Param        pageSize query int false "Page size"
// @Success      200 {object} dto.Response{data=dto.Page[appshipping.QuoteResponse]}
// @Router       /shipping-quotes/mine [get]
func (h *QuoteHandler) ListCompanyQuotes(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	filter, ok := h.pageFilter(c)
	if !ok {
		return
	}

	quotes, total, err := h.quoteService.ListCompanyQuotes(c.Request.Context(), session, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewPage(quotes, total, filter.Page, filter.PageSize))
}

// CompleteQuote godoc
// @Summary      Mark a delivered quote as completed
// @Tags         shipping
// @Produce      json
// @Param        quoteId path string true "Quote ID"
// @Success      200 {object} dto.Response{data=appshipping.QuoteResponse}
// @Router       /shipping-quotes/{quoteId}/complete [put]
func (h *QuoteHandler) CompleteQuote(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	quoteID, ok := h.pathUUID(c, api.ParamQuoteID)
	if !ok {
		return
	}

	resp, err := h.quoteService.CompleteQuote(c.Request.Context(), session, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
