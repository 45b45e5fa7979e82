package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryPopular is the category shown by the catalog carousel.
const CategoryPopular = "popular"

// Product is a catalog entry with stock on hand.
type Product struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Rating     float64         `json:"rating"`
	Images     []string        `json:"images"`
	Categories []string        `json:"categories"`
}
