package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/shopspring/decimal"
)

// Fake is an in-process oracle with a fixed price table. Unknown pairs fail,
// which exercises the 1:1 fallback.
type Fake struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
	calls  int
}

// NewFake returns an oracle seeded with a few USD prices.
func NewFake() *Fake {
	f := &Fake{prices: make(map[string]decimal.Decimal)}
	f.SetPrice(money.BTC, money.USD, decimal.NewFromInt(60000))
	f.SetPrice(money.ETH, money.USD, decimal.NewFromInt(3000))
	f.SetPrice(money.USDT, money.USD, decimal.NewFromInt(1))
	f.SetPrice(money.USDC, money.USD, decimal.NewFromInt(1))
	return f
}

func (f *Fake) Name() string { return "fake" }

// SetPrice sets from→to and its inverse.
func (f *Fake) SetPrice(from, to money.Code, price decimal.Decimal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[PairKey(from, to)] = price
	if price.IsPositive() {
		f.prices[PairKey(to, from)] = decimal.NewFromInt(1).DivRound(price, money.Scale)
	}
}

// Calls counts GetPrice invocations.
func (f *Fake) Calls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls
}

func (f *Fake) GetPrice(ctx context.Context, from, to money.Code) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if from.Equal(to) {
		return decimal.NewFromInt(1), nil
	}
	price, ok := f.prices[PairKey(from, to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("fake oracle: no price for %s/%s", from, to)
	}
	return price, nil
}

// PairKey is the cache and lookup key of a currency pair.
func PairKey(from, to money.Code) string {
	return from.String() + ":" + to.String()
}

var _ provider.PriceOracle = (*Fake)(nil)
