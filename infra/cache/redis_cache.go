package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/brokerage/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// RedisCache implements PriceCache using Redis. Prices are stored as
// decimal strings so no precision is lost on the round trip.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, prefix string, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

func (r *RedisCache) key(key string) string {
	return r.prefix + key
}

func (r *RedisCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return decimal.Zero, false, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return decimal.Zero, false, err
	}
	price, err := decimal.NewFromString(val)
	if err != nil {
		r.logger.Error("Redis cache parse error", "key", key, "error", err)
		return decimal.Zero, false, err
	}
	r.logger.Debug("Redis cache hit", "key", key, "price", price)
	return price, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, price decimal.Decimal, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), price.String(), ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "price", price, "ttl", ttl)
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}

var _ cache.PriceCache = (*RedisCache)(nil)
