package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Stock decrement policies.
const (
	StockPolicyOnce  = "once"
	StockPolicyEvery = "every"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	ShutdownTimeout time.Duration
	LogLevel        string

	RedisAddr       string
	CatalogCacheTTL time.Duration

	KafkaBrokers    []string
	MailTopic       string
	MailWorkers     int
	MailQueueSize   int
	MailSendTimeout time.Duration
	MailSignature   string

	StockPolicy string
	AdminEmails []string
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultCatalogCacheTTL = time.Minute
	defaultMailTopic       = "storefront.mail"
	defaultMailWorkers     = 2
	defaultMailQueueSize   = 64
	defaultMailSendTimeout = 5 * time.Second
	defaultMailSignature   = "Storefront Team"
)

// EnvFile is merged into the process environment by Load when present.
// Variables already set in the environment take precedence.
const EnvFile = ".env"

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	if err := LoadEnvFile(EnvFile); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

// LoadEnvFile reads KEY=VALUE pairs from path. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		BcryptCost:      getInt(lookup, "BCRYPT_COST", 0),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		RedisAddr:       getString(lookup, "REDIS_ADDR", ""),
		CatalogCacheTTL: getDuration(lookup, "CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		MailTopic:       getString(lookup, "MAIL_TOPIC", defaultMailTopic),
		MailWorkers:     getInt(lookup, "MAIL_WORKERS", defaultMailWorkers),
		MailQueueSize:   getInt(lookup, "MAIL_QUEUE_SIZE", defaultMailQueueSize),
		MailSendTimeout: getDuration(lookup, "MAIL_SEND_TIMEOUT", defaultMailSendTimeout),
		MailSignature:   getString(lookup, "MAIL_SIGNATURE", defaultMailSignature),
		StockPolicy:     getString(lookup, "STOCK_POLICY", StockPolicyOnce),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		cacheTTLStr        = cfg.CatalogCacheTTL.String()
		tokenTTLStr        = cfg.TokenTTL.String()
		brokersStr         = getString(lookup, "KAFKA_BROKERS", "")
		adminsStr          = getString(lookup, "ADMIN_EMAILS", "")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address or URL for the catalog cache")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Catalog cache TTL")
	fs.StringVar(&brokersStr, "kafka", brokersStr, "Comma separated Kafka brokers for mail requests")
	fs.StringVar(&cfg.MailTopic, "mail-topic", cfg.MailTopic, "Kafka topic for mail requests")
	fs.IntVar(&cfg.MailWorkers, "mail-workers", cfg.MailWorkers, "Number of concurrent mail workers")
	fs.StringVar(&cfg.StockPolicy, "stock-policy", cfg.StockPolicy, "Stock decrement policy (once, every)")
	fs.StringVar(&adminsStr, "admins", adminsStr, "Comma separated admin emails")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.CatalogCacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.KafkaBrokers = splitList(brokersStr)
	cfg.AdminEmails = splitList(strings.ToLower(adminsStr))

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = defaultCatalogCacheTTL
	}

	if cfg.MailWorkers <= 0 {
		cfg.MailWorkers = defaultMailWorkers
	}

	if cfg.MailQueueSize <= 0 {
		cfg.MailQueueSize = defaultMailQueueSize
	}

	if cfg.MailSendTimeout <= 0 {
		cfg.MailSendTimeout = defaultMailSendTimeout
	}

	cfg.StockPolicy = strings.ToLower(strings.TrimSpace(cfg.StockPolicy))
	switch cfg.StockPolicy {
	case StockPolicyOnce, StockPolicyEvery:
	case "":
		cfg.StockPolicy = StockPolicyOnce
	default:
		return nil, fmt.Errorf("unknown stock policy %q", cfg.StockPolicy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
