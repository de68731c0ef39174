package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Empty-state copy for a buyer with no orders
const (
	EmptyOrdersMessage = "No orders yet"
	EmptyOrdersCTA     = "Start Shopping"
)

// Buyer action labels
const (
	ActionLabelCancel = "Cancel"
	ActionLabelTrack  = "Track Order"
)

// ==================== Requests ====================

// CreateOrderItemInput is one line of a checkout
type CreateOrderItemInput struct {
	ProductID   uuid.UUID       `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required,min=1,max=200"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
}

// AddressInput is where the order ships
type AddressInput struct {
	Name       string `json:"name" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"max=50"`
	Email      string `json:"email" binding:"omitempty,email"`
	Line1      string `json:"line1" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"max=20"`
	Country    string `json:"country" binding:"max=100"`
}

// CreateOrderInput places an order with one seller
type CreateOrderInput struct {
	SellerID        uuid.UUID              `json:"sellerId" binding:"required"`
	Items           []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress AddressInput           `json:"shippingAddress" binding:"required"`
}

// CancelOrderInput carries the buyer's reason
type CancelOrderInput struct {
	Reason string `json:"reason" binding:"max=500"`
}

// UpdateOrderStatusInput is the seller status form. Carrier and
// EstimatedDelivery only take effect for shipping statuses.
type UpdateOrderStatusInput struct {
	OrderStatus       string     `json:"orderStatus" binding:"required,order_status"`
	Carrier           string     `json:"carrier" binding:"max=100"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	Note              string     `json:"note" binding:"max=500"`
	Location          string     `json:"location" binding:"max=200"`
}

// UpdateTrackingInput is the admin/seller tracking edit
type UpdateTrackingInput struct {
	TrackingNumber    string     `json:"trackingNumber" binding:"max=100"`
	Carrier           string     `json:"carrier" binding:"max=100"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	CurrentLocation   string     `json:"currentLocation" binding:"max=200"`
	OrderStatus       *string    `json:"orderStatus" binding:"omitempty,order_status"`
	Note              string     `json:"note" binding:"max=500"`
}

// OrderListFilter narrows buyer and seller order lists
type OrderListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,order_status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ToFilter converts the query into a repository filter
func (f OrderListFilter) ToFilter() (shared.Filter, error) {
	filter := shared.DefaultFilter()
	filter.Search = f.Search
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Status != "" {
		status, err := order.ParseOrderStatus(f.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = string(status)
	}
	return filter, nil
}

// ==================== Responses ====================

// OrderItemResponse is one order line
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// AddressResponse is the shipping address
type AddressResponse struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// TrackingInfoResponse is the carrier-side state
type TrackingInfoResponse struct {
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	Carrier           string     `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	CurrentLocation   string     `json:"currentLocation,omitempty"`
}

// StatusHistoryResponse is one history entry
type StatusHistoryResponse struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderResponse is the full order representation
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	OrderNumber     string                  `json:"orderNumber"`
	BuyerID         uuid.UUID               `json:"buyerId"`
	SellerID        uuid.UUID               `json:"sellerId"`
	Items           []OrderItemResponse     `json:"items"`
	Quantity        int                     `json:"quantity"`
	TotalAmount     decimal.Decimal         `json:"totalAmount"`
	ShippingCost    decimal.Decimal         `json:"shippingCost"`
	GrandTotal      decimal.Decimal         `json:"grandTotal"`
	ShippingAddress AddressResponse         `json:"shippingAddress"`
	OrderStatus     string                  `json:"orderStatus"`
	StageIndex      int                     `json:"stageIndex"`
	TrackingInfo    TrackingInfoResponse    `json:"trackingInfo"`
	StatusHistory   []StatusHistoryResponse `json:"statusHistory"`
	SelectedQuoteID *uuid.UUID              `json:"selectedQuoteId,omitempty"`
	CancelReason    string                  `json:"cancelReason,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmedAt,omitempty"`
	ShippedAt       *time.Time              `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time              `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time              `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	Version         int                     `json:"version"`
}

// OrderAction is a button offered on a buyer order card
type OrderAction struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// BuyerOrderCard is an order with the buyer's affordances
type BuyerOrderCard struct {
	OrderResponse
	Actions []OrderAction `json:"actions"`
}

// BuyerOrderListView is the buyer's order page. When the buyer has no
// orders at all the empty-state copy is filled instead of Orders.
type BuyerOrderListView struct {
	Empty        bool             `json:"empty"`
	EmptyMessage string           `json:"emptyMessage,omitempty"`
	CallToAction string           `json:"callToAction,omitempty"`
	Orders       []BuyerOrderCard `json:"orders"`
	Total        int64            `json:"total"`
	Page         int              `json:"page"`
	PageSize     int              `json:"pageSize"`
}

// SellerOrderList is the seller's order page
type SellerOrderList struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// UpdateOrderStatusResult carries the updated order plus the refreshed list
type UpdateOrderStatusResult struct {
	Order  OrderResponse   `json:"order"`
	Orders SellerOrderList `json:"orders"`
}

// TrackingStep is one stage of the tracker
type TrackingStep struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	State  string `json:"state"`
}

// Step states
const (
	StepCompleted = "completed"
	StepCurrent   = "current"
	StepUpcoming  = "upcoming"
)

// TrackingView is the order tracking page
type TrackingView struct {
	OrderID       uuid.UUID               `json:"orderId"`
	OrderNumber   string                  `json:"orderNumber"`
	BuyerID       uuid.UUID               `json:"buyerId"`
	SellerID      uuid.UUID               `json:"sellerId"`
	OrderStatus   string                  `json:"orderStatus"`
	StageIndex    int                     `json:"stageIndex"`
	Cancelled     bool                    `json:"cancelled"`
	Steps         []TrackingStep          `json:"steps"`
	TrackingInfo  TrackingInfoResponse    `json:"trackingInfo"`
	StatusHistory []StatusHistoryResponse `json:"statusHistory"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// ==================== Converters ====================

var stageLabels = map[order.OrderStatus]string{
	order.OrderStatusPending:        "Pending",
	order.OrderStatusConfirmed:      "Confirmed",
	order.OrderStatusProcessing:     "Processing",
	order.OrderStatusShipped:        "Shipped",
	order.OrderStatusOutForDelivery: "Out for Delivery",
	order.OrderStatusDelivered:      "Delivered",
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		}
	}
	a := o.ShippingAddress
	return OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		BuyerID:      o.BuyerID,
		SellerID:     o.SellerID,
		Items:        items,
		Quantity:     o.Quantity,
		TotalAmount:  o.TotalAmount,
		ShippingCost: o.ShippingCost,
		GrandTotal:   o.GrandTotal(),
		ShippingAddress: AddressResponse{
			Name:       a.Name,
			Phone:      a.Phone,
			Email:      a.Email,
			Line1:      a.Line1,
			City:       a.City,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		},
		OrderStatus:     string(o.Status),
		StageIndex:      order.StageIndex(o.Status),
		TrackingInfo:    toTrackingInfo(o.Tracking),
		StatusHistory:   toHistory(o.StatusHistory),
		SelectedQuoteID: o.SelectedQuoteID,
		CancelReason:    o.CancelReason,
		ConfirmedAt:     o.ConfirmedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// ToBuyerOrderCard attaches the buyer actions to an order
func ToBuyerOrderCard(o *order.Order) BuyerOrderCard {
	actions := make([]OrderAction, 0, 1)
	for _, a := range o.BuyerActions() {
		switch a {
		case order.BuyerActionCancel:
			actions = append(actions, OrderAction{Action: string(a), Label: ActionLabelCancel})
		case order.BuyerActionTrack:
			actions = append(actions, OrderAction{Action: string(a), Label: ActionLabelTrack})
		}
	}
	return BuyerOrderCard{OrderResponse: ToOrderResponse(o), Actions: actions}
}

// ToTrackingView builds the tracker page for an order
func ToTrackingView(o *order.Order) *TrackingView {
	progress := o.Progress()
	steps := make([]TrackingStep, len(progress.Steps))
	for i, s := range progress.Steps {
		state := StepUpcoming
		switch {
		case s.Current:
			state = StepCurrent
		case s.Completed:
			state = StepCompleted
		}
		steps[i] = TrackingStep{Status: string(s.Status), Label: stageLabels[s.Status], State: state}
	}
	return &TrackingView{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		BuyerID:       o.BuyerID,
		SellerID:      o.SellerID,
		OrderStatus:   string(o.Status),
		StageIndex:    progress.CurrentIndex,
		Cancelled:     progress.Cancelled,
		Steps:         steps,
		TrackingInfo:  toTrackingInfo(o.Tracking),
		StatusHistory: toHistory(o.StatusHistory),
		UpdatedAt:     o.UpdatedAt,
	}
}

func toTrackingInfo(t order.TrackingInfo) TrackingInfoResponse {
	return TrackingInfoResponse{
		TrackingNumber:    t.TrackingNumber,
		Carrier:           t.Carrier,
		EstimatedDelivery: t.EstimatedDelivery,
		CurrentLocation:   t.CurrentLocation,
	}
}

func toHistory(entries []order.StatusHistoryEntry) []StatusHistoryResponse {
	history := make([]StatusHistoryResponse, len(entries))
	for i, e := range entries {
		history[i] = StatusHistoryResponse{
			Status:    string(e.Status),
			Note:      e.Note,
			Location:  e.Location,
			Timestamp: e.Timestamp,
		}
	}
	return history
}
