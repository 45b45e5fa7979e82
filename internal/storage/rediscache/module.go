package rediscache

import (
	"context"
	"io"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/usecase"
)

// Module provides the catalog cache. Without a Redis address a NopCache is used.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Invoke(registerLifecycle),
)

type cacheParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newCache(p cacheParams) (usecase.ProductCache, error) {
	if p.Config.RedisAddr == "" {
		p.Logger.Info("catalog cache disabled: no redis address configured")
		return NopCache{}, nil
	}
	cache, err := New(p.Ctx, p.Config.RedisAddr, p.Config.CatalogCacheTTL, p.Logger)
	if err != nil {
		return nil, err
	}
	return cache, nil
}

func registerLifecycle(lc fx.Lifecycle, cache usecase.ProductCache) {
	closer, ok := cache.(io.Closer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closer.Close()
		},
	})
}
