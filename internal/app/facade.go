package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade exposes use cases to the HTTP layer.
type StoreFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	products *usecase.ProductUseCase
	checks   []HealthChecker
}

func NewStoreFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, products *usecase.ProductUseCase, checks ...HealthChecker) *StoreFacade {
	return &StoreFacade{auth: auth, orders: orders, products: products, checks: checks}
}

func (f *StoreFacade) Register(ctx context.Context, name, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, name, email, password)
	return token, err
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) CreateOrder(ctx context.Context, userID int64, order model.Order) (*model.Order, error) {
	return f.orders.Create(ctx, userID, order)
}

func (f *StoreFacade) Order(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, actor, id)
}

func (f *StoreFacade) MyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListMine(ctx, userID)
}

func (f *StoreFacade) AllOrders(ctx context.Context) ([]model.Order, decimal.Decimal, error) {
	return f.orders.ListAll(ctx)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *StoreFacade) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return f.orders.Delete(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context, category string) ([]model.Product, error) {
	return f.products.List(ctx, category)
}

// HealthCheck runs every registered check and joins their errors.
func (f *StoreFacade) HealthCheck(ctx context.Context) error {
	var errs []error
	for _, c := range f.checks {
		if err := c.HealthCheck(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
