package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		newAuthOptions,
		newOrderOptions,
		NewAuthUseCase,
		NewOrderUseCase,
		NewProductUseCase,
	),
)

func newAuthOptions(cfg *config.Config) AuthOptions {
	return AuthOptions{AdminEmails: cfg.AdminEmails}
}

func newOrderOptions(cfg *config.Config) OrderOptions {
	return OrderOptions{StockPolicy: cfg.StockPolicy, Signature: cfg.MailSignature}
}
