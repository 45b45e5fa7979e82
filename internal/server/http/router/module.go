package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/app"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(
	func(f *app.StoreFacade) Facade { return f },
	Setup,
)
