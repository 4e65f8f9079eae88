package eventbus

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyTracker(t *testing.T) {
	t.Parallel()
	tracker := NewIdempotencyTracker()

	assert.False(t, tracker.Seen("k"))
	tracker.Store("k")
	assert.True(t, tracker.Seen("k"))
	tracker.Delete("k")
	assert.False(t, tracker.Seen("k"))
}

func TestByEventID(t *testing.T) {
	t.Parallel()
	e := events.TradeFailed{Meta: events.NewMeta(uuid.New()), TradeID: uuid.New()}
	assert.Equal(t, e.ID.String(), ByEventID(e))
	assert.Equal(t, e.ID.String(), ByEventID(&e))
	assert.Empty(t, ByEventID(events.TradeFailed{}))
}

func TestWithIdempotency(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx := context.Background()

	t.Run("runs without a key every time", func(t *testing.T) {
		t.Parallel()
		var calls int32
		wrapped := WithIdempotency(func(context.Context, events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}, NewIdempotencyTracker(), ByEventID, "test", logger)

		require.NoError(t, wrapped(ctx, events.TradeFailed{}))
		require.NoError(t, wrapped(ctx, events.TradeFailed{}))
		assert.Equal(t, int32(2), calls)
	})

	t.Run("skips redelivery", func(t *testing.T) {
		t.Parallel()
		var calls int32
		wrapped := WithIdempotency(func(context.Context, events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}, NewIdempotencyTracker(), ByEventID, "test", logger)

		e := events.TradeFailed{Meta: events.NewMeta(uuid.New())}
		require.NoError(t, wrapped(ctx, e))
		require.NoError(t, wrapped(ctx, e))
		assert.Equal(t, int32(1), calls)
	})

	t.Run("retries after failure", func(t *testing.T) {
		t.Parallel()
		var calls int32
		boom := errors.New("boom")
		wrapped := WithIdempotency(func(context.Context, events.Event) error {
			if atomic.AddInt32(&calls, 1) == 1 {
				return boom
			}
			return nil
		}, NewIdempotencyTracker(), ByEventID, "test", logger)

		e := events.TradeFailed{Meta: events.NewMeta(uuid.New())}
		assert.ErrorIs(t, wrapped(ctx, e), boom)
		require.NoError(t, wrapped(ctx, e))
		require.NoError(t, wrapped(ctx, e))
		assert.Equal(t, int32(2), calls)
	})

	t.Run("concurrent deliveries run once", func(t *testing.T) {
		t.Parallel()
		var calls int32
		tracker := NewIdempotencyTracker()
		wrapped := WithIdempotency(func(context.Context, events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}, tracker, ByEventID, "test", logger)

		e := events.TradeFailed{Meta: events.NewMeta(uuid.New())}
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, wrapped(ctx, e))
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), calls)
		assert.True(t, tracker.Seen(e.ID.String()))
	})
}
