package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module provides password hashing and token signing configured from config.Config.
var Module = fx.Provide(
	func(cfg *config.Config) PasswordHasher { return NewBcryptHasher(cfg.BcryptCost) },
	func(cfg *config.Config) Strategy {
		return NewHMACStrategy(cfg.JWTSecret, Options{TTL: cfg.TokenTTL})
	},
)
