package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ListByCategory returns products tagged with category, or all products for an empty category.
func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	const query = `SELECT id, name, price::text, stock, rating, images, categories
                   FROM products
                   WHERE $1 = '' OR $1 = ANY(categories)
                   ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Product{}
	for rows.Next() {
		var (
			p     model.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.Rating, &p.Images, &p.Categories); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("decode price: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
