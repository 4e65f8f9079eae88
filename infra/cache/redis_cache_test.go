//go:build integration

package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	client := testutils.NewRedisClient(t)
	c := NewRedisCache(client, "price:", slog.Default())
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "BTC:USD")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "BTC:USD", decimal.RequireFromString("64000.12345678"), time.Minute))
	got, ok, err := c.Get(ctx, "BTC:USD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "64000.12345678", got.String())

	raw, err := client.Get(ctx, "price:BTC:USD").Result()
	require.NoError(t, err)
	assert.Equal(t, "64000.12345678", raw)

	require.NoError(t, c.Delete(ctx, "BTC:USD"))
	_, ok, err = c.Get(ctx, "BTC:USD")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Expiry(t *testing.T) {
	client := testutils.NewRedisClient(t)
	c := NewRedisCache(client, "price:", slog.Default())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ETH:USD", decimal.NewFromInt(3000), time.Second))
	require.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "ETH:USD")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
