package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

// OrderItem is a purchased line.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Image     string
	Quantity  int
	Price     decimal.Decimal
}

// ShippingInfo is the delivery address of an order.
type ShippingInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PhoneNo    string `json:"phoneNo"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentInfo is the opaque payment confirmation record.
type PaymentInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UserRef is the owner projection attached to fetched orders.
type UserRef struct {
	ID    int64
	Name  string
	Email string
}

// Order describes a purchase placed by a user.
type Order struct {
	ID            uuid.UUID
	UserID        int64
	User          *UserRef
	Items         []OrderItem
	Shipping      ShippingInfo
	Payment       PaymentInfo
	ItemsPrice    decimal.Decimal
	TaxPrice      decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
	Status        OrderStatus
	StockDeducted bool
	PaidAt        time.Time
	DeliveredAt   *time.Time
	CreatedAt     time.Time
}

// StockDeduction selects how a status update touches product stock.
type StockDeduction int

const (
	// DeductNone leaves stock untouched.
	DeductNone StockDeduction = iota
	// DeductOnce decrements stock unless the order already did so.
	DeductOnce
	// DeductAlways decrements stock on every update.
	DeductAlways
)

// StatusUpdate is the change applied atomically by the order store.
type StatusUpdate struct {
	OrderID     uuid.UUID
	Status      OrderStatus
	DeliveredAt *time.Time
	Deduct      StockDeduction
}
