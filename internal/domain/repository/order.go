package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	// GetByID returns the order with its owner expanded.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// UpdateStatus applies the status change and optional stock decrement atomically.
	UpdateStatus(ctx context.Context, upd model.StatusUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
