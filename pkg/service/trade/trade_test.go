package trade_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/brokerage/infra/eventbus"
	infraprovider "github.com/amirasaad/brokerage/infra/provider"
	infrarepo "github.com/amirasaad/brokerage/infra/repository"
	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/amirasaad/brokerage/pkg/domain/setting"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/amirasaad/brokerage/pkg/service/balance"
	"github.com/amirasaad/brokerage/pkg/service/pricing"
	tradesvc "github.com/amirasaad/brokerage/pkg/service/trade"
	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource returns the same draw forever.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// drawSource replays draws, then returns rest forever.
type drawSource struct {
	mu    sync.Mutex
	draws []float64
	rest  float64
}

func (d *drawSource) Float64() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.draws) == 0 {
		return d.rest
	}
	v := d.draws[0]
	d.draws = d.draws[1:]
	return v
}

var (
	autoFlags   = setting.Flags{OpenToTrade: true, AutoDecideWinLose: true}
	manualFlags = setting.Flags{OpenToTrade: true, AutoDecideWinLose: false}
)

type fixture struct {
	svc *tradesvc.Service
	uow *infrarepo.UoW
	bus *infraeventbus.MemoryEventBus
}

func newFixture(t *testing.T, opts ...tradesvc.Option) fixture {
	t.Helper()
	uow, _ := testutils.NewSQLiteUoW(t)
	return newFixtureOn(uow, opts...)
}

func newFixtureOn(uow *infrarepo.UoW, opts ...tradesvc.Option) fixture {
	logger := slog.Default()
	bus := infraeventbus.NewWithMemory(logger)
	quoter := pricing.New(infraprovider.NewFake(), logger)
	svc := tradesvc.New(uow, quoter, balance.New(logger), bus, logger, opts...)
	return fixture{svc: svc, uow: uow, bus: bus}
}

func (f fixture) open(t *testing.T, customerID uuid.UUID, currency money.Code, qty string) *trade.Trade {
	t.Helper()
	res, err := f.svc.CreateTrade(context.Background(), tradesvc.CreateTradeRequest{
		CustomerID: customerID,
		Currency:   currency.String(),
		TradeType:  "long",
		Period:     60,
		Quantity:   decimal.RequireFromString(qty),
	}, autoFlags)
	require.NoError(t, err)
	return res.Trade
}

func countTrades(t *testing.T, uow *infrarepo.UoW, customerID uuid.UUID) int {
	t.Helper()
	repo, err := uow.TradeRepository()
	require.NoError(t, err)
	list, err := repo.List(context.Background(), repository.ListFilter{CustomerID: customerID})
	require.NoError(t, err)
	return len(list)
}

func TestCreateTrade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")

	res, err := f.svc.CreateTrade(ctx, tradesvc.CreateTradeRequest{
		CustomerID: customerID,
		Currency:   "usdt",
		TradeType:  "LONG",
		Period:     60,
		Quantity:   decimal.NewFromInt(50),
	}, autoFlags)
	require.NoError(t, err)

	assert.Equal(t, trade.StatusPending, res.Trade.Status)
	assert.Equal(t, acc.ID, res.Trade.AccountID)
	assert.Equal(t, "50", res.Setting.Percentage.String())
	require.Len(t, res.Sequence, 60)
	ones := 0
	for _, v := range res.Sequence {
		ones += v
	}
	assert.Equal(t, 30, ones)

	b, r := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "100", b, "opening a trade debits nothing")
	assert.Equal(t, "0", r)

	published := f.bus.Published()
	require.Len(t, published, 1)
	created, ok := published[0].(events.TradeCreated)
	require.True(t, ok)
	assert.Equal(t, res.Trade.ID, created.TradeID)
}

func TestCreateTrade_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customerID := uuid.New()
	testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	testutils.SeedAccount(t, f.uow, customerID, money.USD, "1000")

	base := tradesvc.CreateTradeRequest{
		CustomerID: customerID,
		Currency:   "USDT",
		TradeType:  "SHORT",
		Period:     30,
		Quantity:   decimal.NewFromInt(10),
	}
	tests := []struct {
		name   string
		mutate func(r *tradesvc.CreateTradeRequest)
		flags  setting.Flags
		want   error
	}{
		{"bad type", func(r *tradesvc.CreateTradeRequest) { r.TradeType = "UP" }, autoFlags, trade.ErrInvalidTradeType},
		{"zero period", func(r *tradesvc.CreateTradeRequest) { r.Period = 0 }, autoFlags, trade.ErrInvalidPeriod},
		{"zero quantity", func(r *tradesvc.CreateTradeRequest) { r.Quantity = decimal.Zero }, autoFlags, trade.ErrInvalidQuantity},
		{"nine decimals", func(r *tradesvc.CreateTradeRequest) { r.Quantity = decimal.RequireFromString("0.123456789") }, autoFlags, money.ErrInvalidAmount},
		{"bad currency", func(r *tradesvc.CreateTradeRequest) { r.Currency = "$" }, autoFlags, domain.ErrValidation},
		{"closed", func(r *tradesvc.CreateTradeRequest) {}, setting.Flags{OpenToTrade: false}, trade.ErrTradingClosed},
		// USD holdings are not part of the total
		{"insufficient", func(r *tradesvc.CreateTradeRequest) { r.Quantity = decimal.NewFromInt(101) }, autoFlags, trade.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := f.svc.CreateTrade(ctx, req, tt.flags)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, countTrades(t, f.uow, customerID), "rejected requests leave no trade rows")

	_, err := f.svc.CreateTrade(ctx, tradesvc.CreateTradeRequest{
		CustomerID: customerID, Currency: "USDT", TradeType: "LONG", Period: 30,
		Quantity: decimal.NewFromInt(101),
	}, autoFlags)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = f.svc.CreateTrade(ctx, base, autoFlags)
	require.NoError(t, err)
	assert.Equal(t, 1, countTrades(t, f.uow, customerID))
}

func TestCreateTrade_ValuesAllHoldings(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()
	// 0.01 BTC is worth 600 USD on the fake oracle
	testutils.SeedAccount(t, f.uow, customerID, money.BTC, "0.01")

	tr := f.open(t, customerID, money.USDT, "500")
	assert.Equal(t, money.USDT, tr.Currency)
}

func TestSettleTrade_Auto(t *testing.T) {
	tests := []struct {
		name    string
		draw    float64
		balance string
		result  string
	}{
		{"win pays percentage", 0, "150", "win"},
		{"lose takes quantity", 0.99, "0", "lose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tradesvc.WithSource(constSource(tt.draw)))
			customerID := uuid.New()
			acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
			tr := f.open(t, customerID, money.USDT, "100")

			res, err := f.svc.SettleTrade(context.Background(), tradesvc.SettleTradeRequest{
				CustomerID: customerID,
				TradeID:    tr.ID,
			}, autoFlags)
			require.NoError(t, err)
			assert.Equal(t, tt.result, res.Result)
			assert.Equal(t, tt.balance, res.Account.Balance.String())

			b, _ := testutils.Balance(t, f.uow, acc.ID)
			assert.Equal(t, tt.balance, b)

			stored, err := f.svc.Get(context.Background(), tr.ID, customerID)
			require.NoError(t, err)
			assert.Equal(t, trade.StatusCompleted, stored.Status)
			assert.True(t, stored.ProfitApplied)
			assert.Equal(t, tt.result, stored.Result())
		})
	}
}

func TestSettleTrade_ZeroCustomerRateAlwaysLoses(t *testing.T) {
	f := newFixture(t, tradesvc.WithSource(constSource(0)))
	customerID := uuid.New()
	testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	repo, err := f.uow.SettingRepository()
	require.NoError(t, err)
	require.NoError(t, repo.SetCustomerWinRate(context.Background(), customerID, 0))
	tr := f.open(t, customerID, money.USDT, "40")

	res, err := f.svc.SettleTrade(context.Background(), tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	require.NoError(t, err)
	assert.Equal(t, "lose", res.Result)
	assert.Equal(t, "-40", res.Profit.String())
}

func TestSettleTrade_ManualOutcomeAndReplays(t *testing.T) {
	f := newFixture(t, tradesvc.WithSource(constSource(0.99)))
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	tr := f.open(t, customerID, money.USDT, "10")

	_, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: uuid.New(), TradeID: tr.ID}, autoFlags)
	assert.ErrorIs(t, err, trade.ErrTradeNotFound)

	res, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{
		CustomerID: customerID,
		TradeID:    tr.ID,
		Outcome:    trade.OutcomeWin,
	}, autoFlags)
	require.NoError(t, err)
	assert.Equal(t, "5", res.Profit.String())

	_, err = f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
	assert.ErrorIs(t, err, domain.ErrConflict)

	b, _ := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "105", b)

	var settled int
	for _, e := range f.bus.Published() {
		if s, ok := e.(events.TradeSettled); ok {
			settled++
			assert.True(t, s.Manual)
			assert.True(t, s.IsSuccess)
		}
	}
	assert.Equal(t, 1, settled)
}

func TestSettleTrade_ConcurrentCallsApplyOnce(t *testing.T) {
	f := newFixture(t, tradesvc.WithSource(constSource(0)))
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	tr := f.open(t, customerID, money.USDT, "100")

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, trade.ErrAlreadySettled):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, conflicts)
	b, _ := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "150", b)
}

func TestSettleTrade_UncoveredLossKeepsOutcome(t *testing.T) {
	src := &drawSource{}
	f := newFixture(t, tradesvc.WithSource(src))
	ctx := context.Background()
	customerID := uuid.New()
	testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	// the BTC account is empty; holdings come from USDT
	tr := f.open(t, customerID, money.BTC, "50")
	// the next draw pair loses, every later one would win
	src.draws = []float64{0.99, 0.99}

	_, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	stored, err := f.svc.Get(ctx, tr.ID, customerID)
	require.NoError(t, err)
	assert.Equal(t, trade.StatusCompleted, stored.Status)
	assert.Equal(t, "lose", stored.Result())
	assert.False(t, stored.ProfitApplied)

	_, err = f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds, "the retry applies the stored loss instead of drawing again")
	stored, err = f.svc.Get(ctx, tr.ID, customerID)
	require.NoError(t, err)
	assert.Equal(t, "lose", stored.Result())

	n, err := f.svc.Sweep(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n, "a decided trade is never swept")

	btc := testutils.SeedAccount(t, f.uow, customerID, money.BTC, "60")
	res, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	require.NoError(t, err)
	assert.Equal(t, "lose", res.Result)
	b, _ := testutils.Balance(t, f.uow, btc.ID)
	assert.Equal(t, "10", b)

	_, err = f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
}

func TestOverrideTrade(t *testing.T) {
	f := newFixture(t, tradesvc.WithSource(constSource(0.99)))
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	tr := f.open(t, customerID, money.USDT, "10")

	_, err := f.svc.OverrideTrade(ctx, tr.ID, trade.OutcomeAuto, autoFlags)
	assert.ErrorIs(t, err, trade.ErrInvalidOutcome)
	_, err = f.svc.OverrideTrade(ctx, uuid.New(), trade.OutcomeWin, autoFlags)
	assert.ErrorIs(t, err, trade.ErrTradeNotFound)

	res, err := f.svc.OverrideTrade(ctx, tr.ID, trade.OutcomeWin, manualFlags)
	require.NoError(t, err)
	assert.Equal(t, "win", res.Result)
	assert.Equal(t, "105", res.Account.Balance.String())

	_, err = f.svc.OverrideTrade(ctx, tr.ID, trade.OutcomeLose, autoFlags)
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
	b, _ := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "105", b)
}

func TestDecideThenSettle_AppliesProfitOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	tr := f.open(t, customerID, money.USDT, "20")

	_, err := f.svc.DecideTrade(ctx, tr.ID, trade.OutcomeWin, autoFlags)
	assert.ErrorIs(t, err, tradesvc.ErrManualModeOff)
	_, err = f.svc.DecideTrade(ctx, tr.ID, trade.OutcomeAuto, manualFlags)
	assert.ErrorIs(t, err, trade.ErrInvalidOutcome)

	decided, err := f.svc.DecideTrade(ctx, tr.ID, trade.OutcomeLose, manualFlags)
	require.NoError(t, err)
	assert.Equal(t, trade.StatusCompleted, decided.Status)
	b, _ := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "100", b, "deciding does not move money")

	res, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, manualFlags)
	require.NoError(t, err)
	assert.Equal(t, "lose", res.Result)
	assert.Equal(t, "80", res.Account.Balance.String())

	_, err = f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, manualFlags)
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
	b, _ = testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "80", b)

	_, err = f.svc.DecideTrade(ctx, tr.ID, trade.OutcomeWin, manualFlags)
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
}

func TestFailTrade_IsBalanceNeutral(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	tr := f.open(t, customerID, money.USDT, "30")

	failed, err := f.svc.FailTrade(ctx, tr.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, trade.StatusFailed, failed.Status)

	_, err = f.svc.FailTrade(ctx, tr.ID, "admin")
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
	_, err = f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{CustomerID: customerID, TradeID: tr.ID}, autoFlags)
	assert.ErrorIs(t, err, trade.ErrAlreadySettled)
	_, err = f.svc.FailTrade(ctx, uuid.New(), "admin")
	assert.ErrorIs(t, err, trade.ErrTradeNotFound)

	b, r := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "100", b)
	assert.Equal(t, "0", r)
}

func TestSweep(t *testing.T) {
	grace := 30 * time.Second
	f := newFixture(t, tradesvc.WithSweepGrace(grace))
	ctx := context.Background()
	customerID := uuid.New()
	acc := testutils.SeedAccount(t, f.uow, customerID, money.USDT, "100")
	stale := f.open(t, customerID, money.USDT, "10")
	settled := f.open(t, customerID, money.USDT, "10")
	_, err := f.svc.SettleTrade(ctx, tradesvc.SettleTradeRequest{
		CustomerID: customerID, TradeID: settled.ID, Outcome: trade.OutcomeWin,
	}, autoFlags)
	require.NoError(t, err)

	n, err := f.svc.Sweep(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n, "nothing has expired yet")

	later := time.Now().Add(60*time.Second + grace + time.Second)
	n, err = f.svc.Sweep(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.Get(ctx, stale.ID, customerID)
	require.NoError(t, err)
	assert.Equal(t, trade.StatusFailed, got.Status)

	b, _ := testutils.Balance(t, f.uow, acc.ID)
	assert.Equal(t, "105", b, "only the settled trade moved money")

	n, err = f.svc.Sweep(ctx, later)
	require.NoError(t, err)
	assert.Zero(t, n)
}
