package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.ProductRepository { return f.Products() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

// registerLifecycle refuses to start against an unreachable database and
// closes the pool on stop.
func registerLifecycle(lc fx.Lifecycle, storage *Storage, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := storage.HealthCheck(ctx); err != nil {
				return fmt.Errorf("postgres unavailable: %w", err)
			}
			logger.Info("postgres ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
