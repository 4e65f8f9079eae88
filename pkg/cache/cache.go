package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceCache stores quoted prices for a short time.
type PriceCache interface {
	// Get returns ok=false on a miss or an expired entry.
	Get(ctx context.Context, key string) (price decimal.Decimal, ok bool, err error)
	Set(ctx context.Context, key string, price decimal.Decimal, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
