package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	TenantAggregateModel
	OrderNumber     string                `gorm:"type:varchar(50);not null;index"`
	BuyerID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID             `gorm:"type:uuid;not null;index"`
	Items           []OrderItemModel      `gorm:"foreignKey:OrderID;references:ID"`
	StatusHistory   []OrderStatusLogModel `gorm:"foreignKey:OrderID;references:ID"`
	Quantity        int                   `gorm:"not null;default:0"`
	TotalAmount     decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingCost    decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingAddress AddressColumns        `gorm:"embedded;embeddedPrefix:ship_"`
	Tracking        TrackingColumns       `gorm:"embedded;embeddedPrefix:tracking_"`
	Status          order.OrderStatus     `gorm:"type:varchar(30);not null;default:'pending';index"`
	SelectedQuoteID *uuid.UUID            `gorm:"type:uuid"`
	CancelReason    string                `gorm:"type:varchar(500)"`
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// AddressColumns is the flattened shipping address
type AddressColumns struct {
	Name       string `gorm:"type:varchar(200)"`
	Phone      string `gorm:"type:varchar(50)"`
	Email      string `gorm:"type:varchar(200)"`
	Line1      string `gorm:"type:varchar(300)"`
	City       string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20)"`
	Country    string `gorm:"type:varchar(100)"`
}

// TrackingColumns is the flattened tracking info
type TrackingColumns struct {
	Number            string `gorm:"type:varchar(100)"`
	Carrier           string `gorm:"type:varchar(100)"`
	EstimatedDelivery *time.Time
	CurrentLocation   string `gorm:"type:varchar(200)"`
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		BuyerID:             m.BuyerID,
		SellerID:            m.SellerID,
		Quantity:            m.Quantity,
		TotalAmount:         m.TotalAmount,
		ShippingCost:        m.ShippingCost,
		ShippingAddress: order.ShippingAddress{
			Name:       m.ShippingAddress.Name,
			Phone:      m.ShippingAddress.Phone,
			Email:      m.ShippingAddress.Email,
			Line1:      m.ShippingAddress.Line1,
			City:       m.ShippingAddress.City,
			PostalCode: m.ShippingAddress.PostalCode,
			Country:    m.ShippingAddress.Country,
		},
		Tracking: order.TrackingInfo{
			TrackingNumber:    m.Tracking.Number,
			Carrier:           m.Tracking.Carrier,
			EstimatedDelivery: m.Tracking.EstimatedDelivery,
			CurrentLocation:   m.Tracking.CurrentLocation,
		},
		Status:          m.Status,
		SelectedQuoteID: m.SelectedQuoteID,
		CancelReason:    m.CancelReason,
		ConfirmedAt:     m.ConfirmedAt,
		ShippedAt:       m.ShippedAt,
		DeliveredAt:     m.DeliveredAt,
		CancelledAt:     m.CancelledAt,
		Items:           make([]order.OrderItem, len(m.Items)),
		StatusHistory:   make([]order.StatusHistoryEntry, len(m.StatusHistory)),
	}
	for i := range m.Items {
		o.Items[i] = m.Items[i].ToDomain()
	}
	for i := range m.StatusHistory {
		o.StatusHistory[i] = m.StatusHistory[i].ToDomain()
	}
	return o
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.BuyerID = o.BuyerID
	m.SellerID = o.SellerID
	m.Quantity = o.Quantity
	m.TotalAmount = o.TotalAmount
	m.ShippingCost = o.ShippingCost
	m.ShippingAddress = AddressColumns{
		Name:       o.ShippingAddress.Name,
		Phone:      o.ShippingAddress.Phone,
		Email:      o.ShippingAddress.Email,
		Line1:      o.ShippingAddress.Line1,
		City:       o.ShippingAddress.City,
		PostalCode: o.ShippingAddress.PostalCode,
		Country:    o.ShippingAddress.Country,
	}
	m.Tracking = TrackingColumns{
		Number:            o.Tracking.TrackingNumber,
		Carrier:           o.Tracking.Carrier,
		EstimatedDelivery: o.Tracking.EstimatedDelivery,
		CurrentLocation:   o.Tracking.CurrentLocation,
	}
	m.Status = o.Status
	m.SelectedQuoteID = o.SelectedQuoteID
	m.CancelReason = o.CancelReason
	m.ConfirmedAt = o.ConfirmedAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		}
	}
	m.StatusHistory = make([]OrderStatusLogModel, len(o.StatusHistory))
	for i, entry := range o.StatusHistory {
		m.StatusHistory[i] = OrderStatusLogModel{
			ID:        entry.ID,
			OrderID:   o.ID,
			Seq:       i + 1,
			Status:    entry.Status,
			Note:      entry.Note,
			Location:  entry.Location,
			Timestamp: entry.Timestamp,
		}
	}
}

// MutableColumns lists the order columns an update may change.
// Items and history are written separately.
func (m *OrderModel) MutableColumns() map[string]any {
	return map[string]any{
		"updated_at":                  m.UpdatedAt,
		"version":                     m.Version,
		"quantity":                    m.Quantity,
		"total_amount":                m.TotalAmount,
		"shipping_cost":               m.ShippingCost,
		"status":                      m.Status,
		"tracking_number":             m.Tracking.Number,
		"tracking_carrier":            m.Tracking.Carrier,
		"tracking_estimated_delivery": m.Tracking.EstimatedDelivery,
		"tracking_current_location":   m.Tracking.CurrentLocation,
		"selected_quote_id":           m.SelectedQuoteID,
		"cancel_reason":               m.CancelReason,
		"confirmed_at":                m.ConfirmedAt,
		"shipped_at":                  m.ShippedAt,
		"delivered_at":                m.DeliveredAt,
		"cancelled_at":                m.CancelledAt,
	}
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for an order line
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		Subtotal:    m.Subtotal,
	}
}

// OrderStatusLogModel is one row of an order's status history.
// Seq keeps entries in append order when timestamps collide.
type OrderStatusLogModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	Seq       int               `gorm:"not null"`
	Status    order.OrderStatus `gorm:"type:varchar(30);not null"`
	Note      string            `gorm:"type:varchar(500)"`
	Location  string            `gorm:"type:varchar(200)"`
	Timestamp time.Time         `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderStatusLogModel) TableName() string {
	return "order_status_history"
}

// ToDomain converts the persistence model to a domain history entry
func (m *OrderStatusLogModel) ToDomain() order.StatusHistoryEntry {
	return order.StatusHistoryEntry{
		ID:        m.ID,
		Status:    m.Status,
		Note:      m.Note,
		Location:  m.Location,
		Timestamp: m.Timestamp,
	}
}
