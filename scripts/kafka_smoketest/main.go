// Command kafka_smoketest publishes one of every ledger event through the
// Kafka bus and waits until each is consumed back.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	infraeventbus "github.com/amirasaad/brokerage/infra/eventbus"
	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/google/uuid"
)

// RunSmokeTest round-trips every event type over the brokers in $BROKERS.
func RunSmokeTest(logger *slog.Logger) error {
	brokers := strings.TrimSpace(os.Getenv("BROKERS"))
	if brokers == "" {
		brokers = "localhost:9092"
	}
	groupID := strings.TrimSpace(os.Getenv("GROUP_ID"))
	if groupID == "" {
		groupID = "brokerage-smoke-" + uuid.NewString()[:8]
	}

	bus, err := infraeventbus.NewWithKafka([]string{brokers}, infraeventbus.KafkaConfig{
		GroupID:     groupID,
		TopicPrefix: "brokerage.smoke",
	}, logger)
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	types := events.All()
	var wg sync.WaitGroup
	wg.Add(len(types))
	for _, et := range types {
		var once sync.Once
		bus.Register(et, func(_ context.Context, e events.Event) error {
			once.Do(func() {
				logger.Info("consumed", "event_type", e.Type())
				wg.Done()
			})
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	for _, et := range types {
		e := events.EventTypes[et]()
		if err := bus.Emit(ctx, e); err != nil {
			return fmt.Errorf("emit %s: %w", et, err)
		}
		logger.Info("produced", "event_type", et)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.Info("kafka smoke test passed", "events", len(types))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out waiting for events: %w", ctx.Err())
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	if err := RunSmokeTest(logger); err != nil {
		logger.Error("kafka smoke test failed", "error", err)
		os.Exit(1)
	}
}
