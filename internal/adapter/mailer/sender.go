package mailer

import (
	"context"
	"log/slog"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Sender delivers a single e-mail request to its transport.
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// LogSender writes e-mail requests to the log instead of a broker.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send logs the request and never fails unless ctx is done.
func (s *LogSender) Send(ctx context.Context, n model.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Info("mail request",
		slog.String("order", n.OrderID.String()),
		slog.String("to", n.To),
		slog.String("subject", n.Subject),
	)
	return nil
}
