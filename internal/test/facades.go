package test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, int64, model.Order) (*model.Order, error)
	GetFn          func(context.Context, model.Actor, uuid.UUID) (*model.Order, error)
	MineFn         func(context.Context, int64) ([]model.Order, error)
	AllFn          func(context.Context) ([]model.Order, decimal.Decimal, error)
	UpdateStatusFn func(context.Context, uuid.UUID, model.OrderStatus) (*model.Order, error)
	DeleteFn       func(context.Context, uuid.UUID) error
}

// CreateOrder delegates to provided function or echoes the input.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID int64, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, order)
	}
	order.ID = uuid.New()
	order.UserID = userID
	order.Status = model.OrderStatusProcessing
	return &order, nil
}

// Order returns the configured order.
func (s OrderFacadeStub) Order(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, actor, id)
	}
	return &model.Order{ID: id, UserID: actor.UserID, Status: model.OrderStatusProcessing}, nil
}

// MyOrders returns predefined orders for given user.
func (s OrderFacadeStub) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.MineFn != nil {
		return s.MineFn(ctx, userID)
	}
	return []model.Order{{ID: uuid.New(), UserID: userID}}, nil
}

// AllOrders returns predefined orders and their total.
func (s OrderFacadeStub) AllOrders(ctx context.Context) ([]model.Order, decimal.Decimal, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx)
	}
	return nil, decimal.Zero, nil
}

// UpdateOrderStatus delegates to override or returns the updated order.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

// DeleteOrder delegates to override.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// ProductFacadeStub simulates catalog queries.
type ProductFacadeStub struct {
	ProductsFn func(context.Context, string) ([]model.Product, error)
}

// Products returns configured catalog listing.
func (s ProductFacadeStub) Products(ctx context.Context, category string) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, category)
	}
	return []model.Product{}, nil
}

// NotifierStub records notifications handed to it.
type NotifierStub struct {
	Err error

	mu   sync.Mutex
	sent []model.Notification
}

// Notify records n and returns the configured error.
func (s *NotifierStub) Notify(_ context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return s.Err
}

// Sent returns a copy of the recorded notifications.
func (s *NotifierStub) Sent() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Notification(nil), s.sent...)
}
