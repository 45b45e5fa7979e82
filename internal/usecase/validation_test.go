package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestValidateOrder(t *testing.T) {
	if err := ValidateOrder(validOrder(uuid.New(), 1, "10")); err != nil {
		t.Fatalf("expected valid order, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*model.Order)
		want   string
	}{
		{"no items", func(o *model.Order) { o.Items = nil }, "at least one item"},
		{"no product", func(o *model.Order) { o.Items[0].ProductID = uuid.Nil }, "product is required"},
		{"no name", func(o *model.Order) { o.Items[0].Name = " " }, "name is required"},
		{"zero quantity", func(o *model.Order) { o.Items[0].Quantity = 0 }, "quantity must be positive"},
		{"negative price", func(o *model.Order) { o.Items[0].Price = decimal.NewFromInt(-1) }, "price must not be negative"},
		{"no address", func(o *model.Order) { o.Shipping.Address = "" }, "shipping address"},
		{"no city", func(o *model.Order) { o.Shipping.City = "" }, "shipping city"},
		{"no phone", func(o *model.Order) { o.Shipping.PhoneNo = "" }, "shipping phoneNo"},
		{"no postal code", func(o *model.Order) { o.Shipping.PostalCode = "" }, "shipping postalCode"},
		{"no country", func(o *model.Order) { o.Shipping.Country = "" }, "shipping country"},
		{"no payment", func(o *model.Order) { o.Payment.ID = "" }, "payment id"},
		{"negative total", func(o *model.Order) { o.TotalPrice = decimal.NewFromInt(-5) }, "prices must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := validOrder(uuid.New(), 1, "10")
			tc.mutate(&order)
			err := ValidateOrder(order)
			if !errors.Is(err, domainErrors.ErrInvalidOrder) {
				t.Fatalf("expected invalid order error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected message containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateOrderReportsFirstMissingShippingField(t *testing.T) {
	order := validOrder(uuid.New(), 1, "10")
	order.Shipping = model.ShippingInfo{}
	err := ValidateOrder(order)
	if err == nil || !strings.Contains(err.Error(), "shipping address") {
		t.Fatalf("expected address to be reported first, got %v", err)
	}
}
