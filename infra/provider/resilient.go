package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// BreakerSettings configures the circuit breaker around an oracle.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// ResilientConfig bounds every call to the wrapped oracle.
type ResilientConfig struct {
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
	Breaker        BreakerSettings
	// OnStateChange is called with the new breaker state name.
	OnStateChange func(name, state string)
}

// Resilient wraps an oracle with a per-call timeout, an outbound rate limit
// and a circuit breaker. Every failure comes back wrapping
// domain.ErrOracleUnavailable.
type Resilient struct {
	oracle  provider.PriceOracle
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// NewResilient wraps oracle.
func NewResilient(oracle provider.PriceOracle, cfg ResilientConfig, logger *slog.Logger) *Resilient {
	logger = logger.With("provider", oracle.Name())
	threshold := cfg.Breaker.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:        oracle.Name(),
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("oracle circuit breaker state changed", "from", from.String(), "to", to.String())
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, to.String())
			}
		},
	}
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Resilient{
		oracle:  oracle,
		cb:      gobreaker.NewCircuitBreaker(settings),
		limiter: rate.NewLimiter(limit, burst),
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (r *Resilient) Name() string { return r.oracle.Name() }

// State exposes the breaker state for health checks.
func (r *Resilient) State() string { return r.cb.State().String() }

func (r *Resilient) GetPrice(ctx context.Context, from, to money.Code) (decimal.Decimal, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("%w: rate limited: %v", domain.ErrOracleUnavailable, err)
	}

	start := time.Now()
	result, err := r.cb.Execute(func() (any, error) {
		return r.oracle.GetPrice(ctx, from, to)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			r.logger.Warn("circuit breaker open - request rejected", "from", from, "to", to)
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			r.logger.Warn("oracle timeout", "from", from, "to", to, "timeout", r.timeout, "elapsed", time.Since(start))
		default:
			r.logger.Warn("oracle call failed", "from", from, "to", to, "error", err)
		}
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	return result.(decimal.Decimal), nil
}

var _ provider.PriceOracle = (*Resilient)(nil)
