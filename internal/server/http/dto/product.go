package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductImage wraps an image URL.
type ProductImage struct {
	Image string `json:"image"`
}

// Product is the public catalog representation.
type Product struct {
	ID         string          `json:"_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Rating     float64         `json:"rating"`
	Stock      int             `json:"stock"`
	Images     []ProductImage  `json:"images"`
	Categories []string        `json:"categories"`
}

// ProductsResponse lists catalog entries.
type ProductsResponse struct {
	Success  bool      `json:"success"`
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// NewProducts converts catalog entries, never returning nil.
func NewProducts(products []model.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		images := make([]ProductImage, 0, len(p.Images))
		for _, img := range p.Images {
			images = append(images, ProductImage{Image: img})
		}
		categories := p.Categories
		if categories == nil {
			categories = []string{}
		}
		result = append(result, Product{
			ID:         p.ID.String(),
			Name:       p.Name,
			Price:      p.Price,
			Rating:     p.Rating,
			Stock:      p.Stock,
			Images:     images,
			Categories: categories,
		})
	}
	return result
}
