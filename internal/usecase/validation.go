package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// ValidateOrder checks presence of the fields an order must carry.
func ValidateOrder(order model.Order) error {
	if len(order.Items) == 0 {
		return invalid("order must contain at least one item")
	}
	for i, item := range order.Items {
		switch {
		case item.ProductID == uuid.Nil:
			return invalid("item %d: product is required", i)
		case strings.TrimSpace(item.Name) == "":
			return invalid("item %d: name is required", i)
		case item.Quantity <= 0:
			return invalid("item %d: quantity must be positive", i)
		case item.Price.IsNegative():
			return invalid("item %d: price must not be negative", i)
		}
	}

	s := order.Shipping
	shipping := []struct{ field, value string }{
		{"address", s.Address},
		{"city", s.City},
		{"phoneNo", s.PhoneNo},
		{"postalCode", s.PostalCode},
		{"country", s.Country},
	}
	for _, f := range shipping {
		if strings.TrimSpace(f.value) == "" {
			return invalid("shipping %s is required", f.field)
		}
	}

	if strings.TrimSpace(order.Payment.ID) == "" {
		return invalid("payment id is required")
	}

	if order.ItemsPrice.IsNegative() || order.TaxPrice.IsNegative() ||
		order.ShippingPrice.IsNegative() || order.TotalPrice.IsNegative() {
		return invalid("prices must not be negative")
	}

	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrInvalidOrder, fmt.Sprintf(format, args...))
}
