package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, order model.Order) (*model.Order, error)
	Order(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error)
	MyOrders(ctx context.Context, userID int64) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, decimal.Decimal, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

// ProductFacade serves catalog queries.
type ProductFacade interface {
	Products(ctx context.Context, category string) ([]model.Product, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	OrderFacade
	ProductFacade
}
