package mailer

import (
	"context"
	"io"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module exposes the e-mail transport to the fx graph.
var Module = fx.Options(
	fx.Provide(newSender),
	fx.Invoke(registerLifecycle),
)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("mail transport: kafka not configured, logging requests")
		return NewLogSender(p.Logger), nil
	}
	return NewKafkaSender(p.Config.KafkaBrokers, p.Config.MailTopic)
}

func registerLifecycle(lc fx.Lifecycle, sender Sender) {
	closer, ok := sender.(io.Closer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closer.Close()
		},
	})
}
