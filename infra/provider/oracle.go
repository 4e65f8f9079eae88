package provider

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/brokerage/pkg/cache"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/provider"
)

// New builds the configured oracle chain: cache → resilience → HTTP provider.
// A nil cache skips the caching layer.
func New(
	cfg *config.Oracle,
	priceCache cache.PriceCache,
	cacheCfg *config.PriceCache,
	onBreakerChange func(name, state string),
	logger *slog.Logger,
) (provider.PriceOracle, error) {
	var base provider.PriceOracle
	switch strings.ToLower(cfg.Provider) {
	case "", "cryptocompare":
		base = NewCryptoCompare(cfg.BaseURL, cfg.ApiKey, cfg.Timeout, logger)
	case "exchangerate", "exchangerate-api":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("oracle provider %q requires ORACLE_API_KEY", cfg.Provider)
		}
		base = NewExchangeRateAPI(cfg.BaseURL, cfg.ApiKey, cfg.Timeout, logger)
	case "fake":
		base = NewFake()
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}

	rc := ResilientConfig{
		Timeout:        cfg.Timeout,
		RequestsPerSec: cfg.RequestsPerSec,
		Burst:          cfg.Burst,
		OnStateChange:  onBreakerChange,
	}
	if b := cfg.Breaker; b != nil {
		rc.Breaker = BreakerSettings{
			MaxRequests:      b.MaxRequests,
			Interval:         b.Interval,
			Timeout:          b.Timeout,
			FailureThreshold: b.FailureThreshold,
		}
	}
	var oracle provider.PriceOracle = NewResilient(base, rc, logger)
	if priceCache != nil && cacheCfg != nil && cacheCfg.TTL > 0 {
		oracle = NewCached(oracle, priceCache, cacheCfg.TTL, logger)
	}
	logger.Info("price oracle ready", "provider", base.Name(), "timeout", cfg.Timeout)
	return oracle, nil
}
