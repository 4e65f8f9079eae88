package infra

import (
	"context"
	"fmt"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient parses the configured URL, applies pool and timeout
// settings and pings the server.
func NewRedisClient(ctx context.Context, cnf *config.Redis) (*redis.Client, error) {
	opts, err := redis.ParseURL(cnf.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cnf.PoolSize > 0 {
		opts.PoolSize = cnf.PoolSize
	}
	if cnf.DialTimeout > 0 {
		opts.DialTimeout = cnf.DialTimeout
	}
	if cnf.ReadTimeout > 0 {
		opts.ReadTimeout = cnf.ReadTimeout
	}
	if cnf.WriteTimeout > 0 {
		opts.WriteTimeout = cnf.WriteTimeout
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
