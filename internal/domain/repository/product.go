package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository provides read access to the catalog.
type ProductRepository interface {
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
}
