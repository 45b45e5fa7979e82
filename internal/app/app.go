package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/adapter/mailer"
	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/storage/postgres"
	"github.com/polkiloo/storefront/internal/usecase"
	"github.com/polkiloo/storefront/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newStoreFacade,
		newHTTPServer,
		newMailDispatcher,
		func(d *worker.MailDispatcher) usecase.Notifier { return d },
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Orders   *usecase.OrderUseCase
	Products *usecase.ProductUseCase
	Storage  *postgres.Storage
	Cache    usecase.ProductCache
}

func newStoreFacade(p facadeParams) *StoreFacade {
	checks := []HealthChecker{p.Storage}
	if hc, ok := p.Cache.(HealthChecker); ok {
		checks = append(checks, hc)
	}
	return NewStoreFacade(p.Auth, p.Orders, p.Products, checks...)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Sender mailer.Sender
	Config *config.Config
	Logger *slog.Logger
}

func newMailDispatcher(p dispatcherParams) *worker.MailDispatcher {
	return worker.NewMailDispatcher(
		p.Sender,
		p.Config.MailWorkers,
		p.Config.MailQueueSize,
		p.Config.MailSendTimeout,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Ctx        context.Context
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.MailDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting storefront", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(p.Ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Dispatcher.Stop(shutdownCtx)

			stats := p.Dispatcher.Stats()
			p.Logger.Info("storefront stopped",
				slog.Int64("mail_sent", stats.Sent),
				slog.Int64("mail_failed", stats.Failed),
				slog.Int64("mail_dropped", stats.Dropped),
			)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	})
}
