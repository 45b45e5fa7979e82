package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderItem is a purchased line as exchanged with clients.
type OrderItem struct {
	Product  string          `json:"product"`
	Name     string          `json:"name"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateOrderRequest is the payload of POST /api/v1/order.
type CreateOrderRequest struct {
	OrderItems    []OrderItem        `json:"orderItems"`
	ShippingInfo  model.ShippingInfo `json:"shippingInfo"`
	PaymentInfo   model.PaymentInfo  `json:"paymentInfo"`
	ItemsPrice    decimal.Decimal    `json:"itemsPrice"`
	TaxPrice      decimal.Decimal    `json:"taxPrice"`
	ShippingPrice decimal.Decimal    `json:"shippingPrice"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
}

// ToModel converts the request. Malformed product ids are reported as an invalid order.
func (r CreateOrderRequest) ToModel() (model.Order, error) {
	items := make([]model.OrderItem, 0, len(r.OrderItems))
	for i, it := range r.OrderItems {
		id, err := uuid.Parse(it.Product)
		if err != nil {
			return model.Order{}, fmt.Errorf("%w: item %d: malformed product id", domainErrors.ErrInvalidOrder, i)
		}
		items = append(items, model.OrderItem{
			ProductID: id,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return model.Order{
		Items:         items,
		Shipping:      r.ShippingInfo,
		Payment:       r.PaymentInfo,
		ItemsPrice:    r.ItemsPrice,
		TaxPrice:      r.TaxPrice,
		ShippingPrice: r.ShippingPrice,
		TotalPrice:    r.TotalPrice,
	}, nil
}

// UpdateOrderRequest is the payload of PUT /api/v1/order/:id.
type UpdateOrderRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// OrderUser is the owner of an order. Name and email are present when expanded.
type OrderUser struct {
	ID    int64  `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Order is the public representation of an order.
type Order struct {
	ID            string             `json:"_id"`
	User          OrderUser          `json:"user"`
	OrderItems    []OrderItem        `json:"orderItems"`
	ShippingInfo  model.ShippingInfo `json:"shippingInfo"`
	PaymentInfo   model.PaymentInfo  `json:"paymentInfo"`
	ItemsPrice    decimal.Decimal    `json:"itemsPrice"`
	TaxPrice      decimal.Decimal    `json:"taxPrice"`
	ShippingPrice decimal.Decimal    `json:"shippingPrice"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
	OrderStatus   string             `json:"orderStatus"`
	PaidAt        time.Time          `json:"paidAt"`
	DeliveredAt   *time.Time         `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// OrderResponse wraps a single order.
type OrderResponse struct {
	Success bool  `json:"success"`
	Order   Order `json:"order"`
}

// OrdersResponse wraps a user's orders.
type OrdersResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
}

// AllOrdersResponse wraps every order with the sum of their totals.
type AllOrdersResponse struct {
	Success     bool            `json:"success"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Orders      []Order         `json:"orders"`
}

// NewOrder converts a domain order.
func NewOrder(o model.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			Product:  it.ProductID.String(),
			Name:     it.Name,
			Image:    it.Image,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	user := OrderUser{ID: o.UserID}
	if o.User != nil {
		user.Name = o.User.Name
		user.Email = o.User.Email
	}
	return Order{
		ID:            o.ID.String(),
		User:          user,
		OrderItems:    items,
		ShippingInfo:  o.Shipping,
		PaymentInfo:   o.Payment,
		ItemsPrice:    o.ItemsPrice,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		OrderStatus:   string(o.Status),
		PaidAt:        o.PaidAt,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
	}
}

// NewOrders converts a list, never returning nil.
func NewOrders(orders []model.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, NewOrder(o))
	}
	return result
}
