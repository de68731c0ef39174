package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/marketplace/backend/internal/application/order"
	"github.com/marketplace/backend/internal/interfaces/http/api"
	"github.com/marketplace/backend/internal/interfaces/http/router"
)

// TrackingHandler serves order tracking
type TrackingHandler struct {
	BaseHandler
	trackingService *apporder.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler
func NewTrackingHandler(trackingService *apporder.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// Routes implements router.RouteRegistrar
func (h *TrackingHandler) Routes() []router.Route {
	return []router.Route{
		{Endpoint: api.GetTracking, Handler: h.GetTracking},
		{Endpoint: api.UpdateTracking, Handler: h.UpdateTracking},
	}
}

// GetTracking godoc
// @Summary      Order tracking timeline
// @Tags         tracking
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Success      200 {object} dto.Response{data=apporder.TrackingView}
// @Router       /orders/{orderId}/tracking [get]
func (h *TrackingHandler) GetTracking(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}

	view, err := h.trackingService.GetTracking(c.Request.Context(), session, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateTracking godoc
// @Summary      Edit tracking details
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Param        orderId path string true "Order ID"
// @Param        request body apporder.UpdateTrackingInput true "Tracking"
// @Success      200 {object} dto.Response{data=apporder.TrackingView}
// @Router       /admin/orders/{orderId}/tracking [put]
func (h *TrackingHandler) UpdateTracking(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	orderID, ok := h.pathUUID(c, api.ParamOrderID)
	if !ok {
		return
	}
	var input apporder.UpdateTrackingInput
	if !h.bindJSON(c, &input) {
		return
	}

	view, err := h.trackingService.UpdateTracking(c.Request.Context(), session, orderID, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
