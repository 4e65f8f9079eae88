package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/brokerage/pkg/cache"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Cached serves prices from a cache and collapses concurrent misses for the
// same pair into a single upstream call.
type Cached struct {
	oracle provider.PriceOracle
	cache  cache.PriceCache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewCached(oracle provider.PriceOracle, c cache.PriceCache, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{oracle: oracle, cache: c, ttl: ttl, logger: logger}
}

func (c *Cached) Name() string { return c.oracle.Name() }

func (c *Cached) GetPrice(ctx context.Context, from, to money.Code) (decimal.Decimal, error) {
	key := PairKey(from, to)
	if price, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return price, nil
	} else if err != nil {
		c.logger.Warn("price cache read failed", "key", key, "error", err)
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		price, err := c.oracle.GetPrice(ctx, from, to)
		if err != nil {
			return decimal.Zero, err
		}
		if err := c.cache.Set(ctx, key, price, c.ttl); err != nil {
			c.logger.Warn("price cache write failed", "key", key, "error", err)
		}
		return price, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	if shared {
		c.logger.Debug("price lookup coalesced", "key", key)
	}
	return v.(decimal.Decimal), nil
}

var _ provider.PriceOracle = (*Cached)(nil)
