package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module loads configuration and logs the effective settings at startup.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(logSettings),
)

// logSettings reports which optional backends are enabled. Secrets are never logged.
func logSettings(cfg *Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("address", cfg.RunAddress),
		slog.String("stock_policy", cfg.StockPolicy),
		slog.Bool("catalog_cache", cfg.RedisAddr != ""),
		slog.Duration("catalog_cache_ttl", cfg.CatalogCacheTTL),
		slog.Int("kafka_brokers", len(cfg.KafkaBrokers)),
		slog.Int("mail_workers", cfg.MailWorkers),
		slog.Int("admins", len(cfg.AdminEmails)),
		slog.Duration("token_ttl", cfg.TokenTTL),
	)
}
