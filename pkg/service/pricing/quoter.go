// Package pricing turns oracle quotes into valuations that never fail.
package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/metrics"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultPriced are the currencies valued through the oracle when none are configured.
var DefaultPriced = []string{"BTC", "ETH", "USDT", "USDC"}

// Quoter wraps the oracle with a deadline and a 1:1 fallback.
type Quoter struct {
	oracle  provider.PriceOracle
	priced  map[money.Code]struct{}
	timeout time.Duration
	metrics metrics.Recorder
	logger  *slog.Logger
}

// Option configures a Quoter.
type Option func(*Quoter)

// WithTimeout bounds each oracle call.
func WithTimeout(d time.Duration) Option {
	return func(q *Quoter) { q.timeout = d }
}

// WithPriced replaces the set of currencies valued through the oracle.
func WithPriced(codes []string) Option {
	return func(q *Quoter) {
		q.priced = make(map[money.Code]struct{}, len(codes))
		for _, c := range codes {
			if code, err := money.ParseCode(c); err == nil {
				q.priced[code] = struct{}{}
			}
		}
	}
}

// WithMetrics reports fallbacks.
func WithMetrics(r metrics.Recorder) Option {
	return func(q *Quoter) { q.metrics = r }
}

// New creates a Quoter. A nil oracle makes every lookup fall back.
func New(oracle provider.PriceOracle, logger *slog.Logger, opts ...Option) *Quoter {
	q := &Quoter{
		oracle:  oracle,
		timeout: 5 * time.Second,
		metrics: metrics.NoOp{},
		logger:  logger.With("component", "pricing"),
	}
	WithPriced(DefaultPriced)(q)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// IsPriced reports whether holdings in code are valued through the oracle.
func (q *Quoter) IsPriced(code money.Code) bool {
	_, ok := q.priced[money.Code(strings.ToUpper(code.String()))]
	return ok
}

// Rate returns the price of one unit of from in to. It never fails: the
// same currency is 1 and an oracle failure or timeout is logged and
// answered with 1.
func (q *Quoter) Rate(ctx context.Context, from, to money.Code) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if from.Equal(to) {
		return one
	}
	rate, err := q.lookup(ctx, from, to)
	if err != nil {
		q.logger.Warn("oracle unavailable, using 1:1 fallback",
			"from", from,
			"to", to,
			"error", err,
		)
		q.metrics.RecordOracleFallback(from.String(), to.String())
		return one
	}
	return rate
}

func (q *Quoter) lookup(ctx context.Context, from, to money.Code) (decimal.Decimal, error) {
	if q.oracle == nil {
		return decimal.Zero, fmt.Errorf("%w: no oracle configured", domain.ErrOracleUnavailable)
	}
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	rate, err := q.oracle.GetPrice(ctx, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s", domain.ErrOracleUnavailable, rate)
	}
	return rate, nil
}

// USDValue sums the available balances of every non-USD account in USD.
// Priced currencies go through Rate, anything else counts at face value.
// USD accounts are left out of the total.
func (q *Quoter) USDValue(ctx context.Context, accounts []*account.Account) decimal.Decimal {
	var (
		mu    sync.Mutex
		total = decimal.Zero
		g     errgroup.Group
	)
	g.SetLimit(4)
	for _, acc := range accounts {
		if acc.Currency.Equal(money.USD) || acc.Balance.IsZero() {
			continue
		}
		if !q.IsPriced(acc.Currency) {
			mu.Lock()
			total = total.Add(acc.Balance)
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			value := acc.Balance.Mul(q.Rate(ctx, acc.Currency, money.USD))
			mu.Lock()
			total = total.Add(value)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return total
}
