package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/brokerage/infra"
	infra_cache "github.com/amirasaad/brokerage/infra/cache"
	infra_eventbus "github.com/amirasaad/brokerage/infra/eventbus"
	infra_metrics "github.com/amirasaad/brokerage/infra/metrics"
	"github.com/amirasaad/brokerage/infra/notify"
	infra_provider "github.com/amirasaad/brokerage/infra/provider"
	infra_repository "github.com/amirasaad/brokerage/infra/repository"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/cache"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/amirasaad/brokerage/pkg/metrics"
	"github.com/amirasaad/brokerage/pkg/service/notification"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies connects the database, the price oracle, the event
// bus and the notification sink described by cfg.
func InitializeDependencies(cfg *config.App) (deps *app.Deps, err error) {
	logger := setupLogger(cfg.Log)
	built := &app.Deps{Logger: logger, Metrics: metrics.NoOp{}}
	deps = built
	defer func() {
		if err != nil {
			_ = built.Close()
			deps = nil
		}
	}()

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		deps.Closers = append(deps.Closers, sqlDB.Close)
	}
	if cfg.DB.Migrate {
		if err = infra.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	deps.Uow = infra_repository.NewUoW(db)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		collector, registry, mErr := initMetrics(cfg.Metrics)
		if mErr != nil {
			return nil, mErr
		}
		deps.Metrics = collector
		deps.Gatherer = registry
	}

	redisClient := lazyRedis(cfg.Redis, deps, logger)

	priceCache := initPriceCache(cfg.PriceCache, redisClient, deps, logger)
	oracleCfg := cfg.Oracle
	if oracleCfg == nil {
		oracleCfg = &config.Oracle{Provider: "fake"}
	}
	oracle, err := infra_provider.New(oracleCfg, priceCache, cfg.PriceCache, deps.Metrics.RecordCircuitState, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize price oracle: %w", err)
	}
	deps.Oracle = oracle

	bus, err := initEventBus(cfg, redisClient, logger)
	if err != nil {
		return nil, err
	}
	if c, ok := bus.(interface{ Close() error }); ok {
		deps.Closers = append(deps.Closers, c.Close)
	}
	deps.EventBus = bus

	deps.Sender = initSender(cfg.Telegram, logger)
	return deps, nil
}

func initMetrics(cfg *config.Metrics) (*infra_metrics.PrometheusCollector, *prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := infra_metrics.NewPrometheusCollector(cfg.Namespace)
	if err := collector.Register(registry); err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	return collector, registry, nil
}

// lazyRedis connects on first use so deployments without redis never dial it.
func lazyRedis(cfg *config.Redis, deps *app.Deps, logger *slog.Logger) func() (*redis.Client, error) {
	var (
		client *redis.Client
		err    error
		done   bool
	)
	return func() (*redis.Client, error) {
		if done {
			return client, err
		}
		done = true
		if cfg == nil || cfg.URL == "" {
			err = fmt.Errorf("REDIS_URL is not set")
			return nil, err
		}
		client, err = infra.NewRedisClient(context.Background(), cfg)
		if err != nil {
			logger.Warn("Redis unavailable", "error", err)
			return nil, err
		}
		deps.Closers = append(deps.Closers, client.Close)
		return client, nil
	}
}

func initPriceCache(
	cfg *config.PriceCache,
	redisClient func() (*redis.Client, error),
	deps *app.Deps,
	logger *slog.Logger,
) cache.PriceCache {
	if cfg == nil || cfg.TTL <= 0 {
		return nil
	}
	if strings.EqualFold(cfg.Driver, "redis") {
		client, err := redisClient()
		if err == nil {
			logger.Info("Using redis price cache", "prefix", cfg.Prefix)
			return infra_cache.NewRedisCache(client, cfg.Prefix, logger)
		}
		logger.Warn("Falling back to in-memory price cache", "error", err)
	}
	mem := infra_cache.NewMemoryCache()
	deps.Closers = append(deps.Closers, func() error { mem.Close(); return nil })
	return mem
}

// initEventBus picks the bus named by EVENT_BUS_DRIVER. A configured but
// unreachable broker falls back to the in-process bus.
func initEventBus(
	cfg *config.App,
	redisClient func() (*redis.Client, error),
	logger *slog.Logger,
) (eventbus.Bus, error) {
	ebCfg := cfg.EventBus
	if ebCfg == nil {
		ebCfg = &config.EventBus{}
	}
	switch strings.ToLower(ebCfg.Driver) {
	case "", "memory":
		logger.Info("Using in-memory event bus")
		return infra_eventbus.NewWithMemoryAsync(logger), nil
	case "redis":
		if cfg.Redis == nil || cfg.Redis.URL == "" {
			return nil, fmt.Errorf("event bus driver redis requires REDIS_URL")
		}
		client, err := redisClient()
		if err != nil {
			logger.Warn("Falling back to in-memory event bus", "error", err)
			return infra_eventbus.NewWithMemoryAsync(logger), nil
		}
		bus, err := infra_eventbus.NewWithRedis(client, ebCfg.Stream, ebCfg.Group, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis event bus: %w", err)
		}
		return bus, nil
	case "kafka":
		if len(ebCfg.Brokers) == 0 {
			return nil, fmt.Errorf("event bus driver kafka requires EVENT_BUS_KAFKA_BROKERS")
		}
		bus, err := infra_eventbus.NewWithKafka(ebCfg.Brokers, infra_eventbus.KafkaConfig{
			GroupID:     ebCfg.Group,
			TopicPrefix: ebCfg.TopicPrefix,
		}, logger)
		if err != nil {
			logger.Warn("Falling back to in-memory event bus", "error", err)
			return infra_eventbus.NewWithMemoryAsync(logger), nil
		}
		return bus, nil
	default:
		return nil, fmt.Errorf("unknown event bus driver %q", ebCfg.Driver)
	}
}

func initSender(cfg *config.Telegram, logger *slog.Logger) notification.Sender {
	if cfg == nil || cfg.Token == "" || cfg.ChatID == 0 {
		return notify.NewLog(logger)
	}
	tg, err := notify.NewTelegram(cfg.Token, cfg.ChatID, logger)
	if err != nil {
		logger.Warn("Telegram notifications disabled", "error", err)
		return notify.NewLog(logger)
	}
	return tg
}
