package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/redis/go-redis/v9"
)

// RedisEventBus publishes events to Redis Streams, one stream per event
// type, consumed through a consumer group so each message is handled once
// per deployment. Failed messages are copied to a DLQ stream.
type RedisEventBus struct {
	client    *redis.Client
	stream    string
	group     string
	factories map[events.EventType]func() events.Event
	logger    *slog.Logger

	mu        sync.Mutex
	consumers map[events.EventType]bool
	handlers  map[events.EventType][]eventbus.HandlerFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithRedis creates a Redis-backed event bus on an existing client.
func NewWithRedis(
	client *redis.Client,
	stream, group string,
	logger *slog.Logger,
) (*RedisEventBus, error) {
	if client == nil || stream == "" || group == "" {
		return nil, fmt.Errorf("redis event bus: client, stream and group are required")
	}
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis event bus: connection failed: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:    client,
		stream:    stream,
		group:     group,
		factories: events.EventTypes,
		logger:    logger.With("bus", "redis"),
		consumers: make(map[events.EventType]bool),
		handlers:  make(map[events.EventType][]eventbus.HandlerFunc),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

func (b *RedisEventBus) streamFor(eventType events.EventType) string {
	return b.stream + ":" + strings.ToLower(eventType.String())
}

func (b *RedisEventBus) dlqFor(eventType events.EventType) string {
	return b.streamFor(eventType) + ":dlq"
}

// Emit appends the event to its stream.
func (b *RedisEventBus) Emit(ctx context.Context, event events.Event) error {
	raw, err := encode(event)
	if err != nil {
		return fmt.Errorf("redis event bus: %w", err)
	}
	stream := b.streamFor(events.EventType(event.Type()))
	if err := b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"event": string(raw)},
	}).Err(); err != nil {
		b.logger.Error("failed to emit event", "error", err, "type", event.Type())
		return fmt.Errorf("redis event bus: emit failed: %w", err)
	}
	b.logger.Debug("event emitted", "type", event.Type(), "stream", stream)
	return nil
}

// Register adds a handler and starts the stream consumer on first use.
func (b *RedisEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	if b.consumers[eventType] {
		return
	}
	b.consumers[eventType] = true

	stream := b.streamFor(eventType)
	err := b.client.XGroupCreateMkStream(b.ctx, stream, b.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		b.logger.Error("failed to create consumer group", "error", err, "stream", stream)
	}
	consumer := fmt.Sprintf("%s-%d", b.group, time.Now().UnixNano())
	b.logger.Info("registering consumer", "event_type", eventType, "consumer", consumer)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.consume(eventType, stream, consumer)
	}()
}

func (b *RedisEventBus) consume(eventType events.EventType, stream, consumer string) {
	for {
		res, err := b.client.XReadGroup(b.ctx, &redis.XReadGroupArgs{
			Group:    b.group,
			Consumer: consumer,
			Streams:  []string{stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()
		if b.ctx.Err() != nil {
			return
		}
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				b.logger.Error("error reading from stream", "error", err, "stream", stream)
				time.Sleep(time.Second)
			}
			continue
		}
		for _, s := range res {
			for _, msg := range s.Messages {
				b.handle(eventType, msg)
				if err := b.client.XAck(b.ctx, stream, b.group, msg.ID).Err(); err != nil {
					b.logger.Error("failed to acknowledge message", "error", err, "msg_id", msg.ID)
				}
			}
		}
	}
}

func (b *RedisEventBus) handle(eventType events.EventType, msg redis.XMessage) {
	raw, ok := msg.Values["event"].(string)
	if !ok {
		b.logger.Error("message without event field", "msg_id", msg.ID)
		return
	}
	evt, err := decode([]byte(raw), b.factories)
	if err != nil {
		b.logger.Error("undecodable message", "error", err, "msg_id", msg.ID)
		b.pushToDLQ(eventType, msg.Values)
		return
	}

	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	b.mu.Unlock()

	failed := false
	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("handler panic recovered", "panic", r, "event_type", eventType)
					failed = true
				}
			}()
			if err := handler(b.ctx, evt); err != nil {
				b.logger.Error("handler error", "error", err, "event_type", eventType)
				failed = true
			}
		}()
	}
	if failed {
		b.pushToDLQ(eventType, msg.Values)
	}
}

func (b *RedisEventBus) pushToDLQ(eventType events.EventType, values map[string]any) {
	dlq := b.dlqFor(eventType)
	if err := b.client.XAdd(b.ctx, &redis.XAddArgs{Stream: dlq, Values: values}).Err(); err != nil {
		b.logger.Error("failed to push to DLQ", "error", err, "stream", dlq)
		return
	}
	b.logger.Warn("event pushed to DLQ", "stream", dlq)
}

// RetryDLQ moves up to count dead messages of eventType back onto the live
// stream and returns how many were moved.
func (b *RedisEventBus) RetryDLQ(ctx context.Context, eventType events.EventType, count int64) (int, error) {
	dlq := b.dlqFor(eventType)
	msgs, err := b.client.XRangeN(ctx, dlq, "-", "+", count).Result()
	if err != nil {
		return 0, fmt.Errorf("redis event bus: read dlq: %w", err)
	}
	moved := 0
	for _, msg := range msgs {
		if err := b.client.XAdd(ctx, &redis.XAddArgs{
			Stream: b.streamFor(eventType),
			Values: msg.Values,
		}).Err(); err != nil {
			return moved, fmt.Errorf("redis event bus: republish: %w", err)
		}
		if err := b.client.XDel(ctx, dlq, msg.ID).Err(); err != nil {
			return moved, fmt.Errorf("redis event bus: trim dlq: %w", err)
		}
		moved++
	}
	return moved, nil
}

// Close stops the consumers. The client belongs to the caller.
func (b *RedisEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	return nil
}

var _ eventbus.Bus = (*RedisEventBus)(nil)
