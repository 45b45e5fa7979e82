package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const keyPrefix = "catalog:products:"

// redisClient is the subset of *redis.Client used by the cache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

var newRedisClient = func(opts *redis.Options) redisClient {
	return redis.NewClient(opts)
}

// CatalogCache keeps product listings per category in Redis.
type CatalogCache struct {
	client redisClient
	ttl    time.Duration
	logger *slog.Logger
}

// New connects to addr, which is either host:port or a redis:// URL.
func New(ctx context.Context, addr string, ttl time.Duration, logger *slog.Logger) (*CatalogCache, error) {
	opts, err := parseAddr(addr)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := newRedisClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &CatalogCache{client: client, ttl: ttl, logger: logger}, nil
}

func parseAddr(addr string) (*redis.Options, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr}, nil
}

// Key returns the cache key for category.
func Key(category string) string {
	if category == "" {
		return keyPrefix + "all"
	}
	return keyPrefix + category
}

// Get returns the cached listing. A miss is reported with ok == false.
func (c *CatalogCache) Get(ctx context.Context, category string) ([]model.Product, bool, error) {
	raw, err := c.client.Get(ctx, Key(category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	products := []model.Product{}
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("decode cached products: %w", err)
	}
	return products, true, nil
}

// Set stores the listing with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, category string, products []model.Product) error {
	if products == nil {
		products = []model.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(category), raw, c.ttl).Err()
}

// HealthCheck pings Redis.
func (c *CatalogCache) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *CatalogCache) Close() error {
	return c.client.Close()
}

// NopCache never stores anything. It is used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]model.Product, bool, error) { return nil, false, nil }

func (NopCache) Set(context.Context, string, []model.Product) error { return nil }

func (NopCache) HealthCheck(context.Context) error { return nil }
