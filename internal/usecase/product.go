package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// ProductCache stores catalog listings per category.
type ProductCache interface {
	Get(ctx context.Context, category string) ([]model.Product, bool, error)
	Set(ctx context.Context, category string, products []model.Product) error
}

// ProductUseCase serves catalog queries through a read-through cache.
type ProductUseCase struct {
	products repository.ProductRepository
	cache    ProductCache
	logger   *slog.Logger
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository, cache ProductCache, logger *slog.Logger) *ProductUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductUseCase{products: products, cache: cache, logger: logger}
}

// List returns products in category. Cache failures fall back to the store.
func (u *ProductUseCase) List(ctx context.Context, category string) ([]model.Product, error) {
	category = strings.ToLower(strings.TrimSpace(category))

	if u.cache != nil {
		cached, ok, err := u.cache.Get(ctx, category)
		if err != nil {
			u.logger.Warn("catalog cache read failed", slog.String("category", category), slog.Any("error", err))
		} else if ok {
			return cached, nil
		}
	}

	products, err := u.products.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, category, products); err != nil {
			u.logger.Warn("catalog cache write failed", slog.String("category", category), slog.Any("error", err))
		}
	}
	return products, nil
}
