// Package trade opens and settles binary trades.
//
// Settlement is linearized by a compare-and-swap on the trade status: the
// caller that moves a trade out of PENDING applies the profit in the same
// database transaction, every other caller gets trade.ErrAlreadySettled.
package trade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/amirasaad/brokerage/pkg/domain/setting"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/amirasaad/brokerage/pkg/metrics"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/amirasaad/brokerage/pkg/service/balance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrManualModeOff is returned when an admin pre-decides a trade while the
// engine decides outcomes itself.
var ErrManualModeOff = fmt.Errorf("outcomes are decided automatically: %w", domain.ErrConflict)

// Valuer prices a customer's holdings in USD. It never fails.
type Valuer interface {
	USDValue(ctx context.Context, accounts []*account.Account) decimal.Decimal
}

// Service implements the trade lifecycle.
type Service struct {
	uow     repository.UnitOfWork
	valuer  Valuer
	mutator *balance.Mutator
	bus     eventbus.Bus
	source  trade.Source
	metrics metrics.Recorder
	grace   time.Duration
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSource replaces the random source used for outcomes and sequences.
func WithSource(src trade.Source) Option {
	return func(s *Service) { s.source = src }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// WithSweepGrace sets how long after its period a PENDING trade is swept.
func WithSweepGrace(d time.Duration) Option {
	return func(s *Service) { s.grace = d }
}

// New creates a trade Service. bus may be nil.
func New(
	uow repository.UnitOfWork,
	valuer Valuer,
	mutator *balance.Mutator,
	bus eventbus.Bus,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		uow:     uow,
		valuer:  valuer,
		mutator: mutator,
		bus:     bus,
		source:  trade.DefaultSource,
		metrics: metrics.NoOp{},
		grace:   time.Minute,
		logger:  logger.With("service", "trade"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTradeRequest opens a trade.
type CreateTradeRequest struct {
	CustomerID uuid.UUID
	Currency   string
	TradeType  string
	Period     int
	Quantity   decimal.Decimal
}

// CreateTradeResult is the new trade plus its display sequence.
type CreateTradeResult struct {
	Trade    *trade.Trade
	Setting  *trade.Setting
	Sequence []int
}

// CreateTrade validates the request, resolves the account and trading
// setting, checks total USD holdings and stores a PENDING trade. Nothing is
// debited until settlement.
func (s *Service) CreateTrade(
	ctx context.Context,
	req CreateTradeRequest,
	flags setting.Flags,
) (*CreateTradeResult, error) {
	logger := s.logger.With("op", "CreateTrade", "customer_id", req.CustomerID)

	code, err := money.ParseCode(req.Currency)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}
	tradeType, err := trade.ParseType(req.TradeType)
	if err != nil {
		return nil, err
	}
	if err := trade.Validate(tradeType, req.Period, req.Quantity); err != nil {
		return nil, err
	}
	if !flags.OpenToTrade {
		return nil, trade.ErrTradingClosed
	}

	var (
		acc      *account.Account
		accounts []*account.Account
		ts       *trade.Setting
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if acc, err = accRepo.GetOrCreate(ctx, req.CustomerID, code); err != nil {
			return err
		}
		if accounts, err = accRepo.ListByCustomer(ctx, req.CustomerID); err != nil {
			return err
		}
		settingRepo, err := uow.SettingRepository()
		if err != nil {
			return err
		}
		ts, err = settingRepo.TradingSetting(ctx, req.Period, tradeType)
		return err
	})
	if err != nil {
		logger.Error("CreateTrade failed: resolving account", "error", err)
		return nil, domain.Aborted(err)
	}

	// priced outside any transaction; the quoter bounds the oracle call
	holdings := s.valuer.USDValue(ctx, accounts)
	if holdings.LessThan(req.Quantity) {
		logger.Info("CreateTrade rejected: insufficient balance",
			"holdings_usd", holdings,
			"quantity", req.Quantity,
		)
		return nil, trade.ErrInsufficientBalance
	}

	t, err := trade.New(req.CustomerID, acc.ID, code, tradeType, req.Period, req.Quantity)
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	if err := repo.Create(ctx, t); err != nil {
		logger.Error("CreateTrade failed: persisting trade", "error", err)
		return nil, domain.Aborted(err)
	}

	logger.Info("trade created", "trade_id", t.ID, "period", t.Period, "quantity", t.Quantity)
	s.metrics.RecordTradeCreated(code.String())
	s.emit(ctx, events.TradeCreated{
		Meta:      events.NewMeta(t.CustomerID),
		TradeID:   t.ID,
		AccountID: t.AccountID,
		Currency:  t.Currency.String(),
		TradeType: string(t.Type),
		Period:    t.Period,
		Quantity:  t.Quantity,
	})
	return &CreateTradeResult{
		Trade:    t,
		Setting:  ts,
		Sequence: trade.Sequence(s.source, t.Period, ts.WinRate),
	}, nil
}

// SettleTradeRequest settles a trade. An empty Outcome lets the engine decide.
type SettleTradeRequest struct {
	CustomerID uuid.UUID
	TradeID    uuid.UUID
	Outcome    trade.Outcome
}

// SettleTradeResult reports the applied profit.
type SettleTradeResult struct {
	Trade   *trade.Trade
	Profit  decimal.Decimal
	Result  string
	Account *account.Account
}

// SettleTrade settles a trade the customer owns.
//
// A COMPLETED trade whose profit is still unapplied has the stored outcome
// applied exactly once. Otherwise the trade must be PENDING; the outcome is
// drawn or taken from the request and the status change and the balance
// change commit together. When the account cannot cover the profit the
// outcome is still stored and ErrInsufficientFunds is returned.
func (s *Service) SettleTrade(
	ctx context.Context,
	req SettleTradeRequest,
	flags setting.Flags,
) (*SettleTradeResult, error) {
	start := time.Now()
	logger := s.logger.With("op", "SettleTrade", "trade_id", req.TradeID, "customer_id", req.CustomerID)

	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	t, err := repo.GetForCustomer(ctx, req.TradeID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	settingRepo, err := s.uow.SettingRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	ts, err := settingRepo.TradingSetting(ctx, t.Period, t.Type)
	if err != nil {
		return nil, domain.Aborted(err)
	}

	if t.Status == trade.StatusCompleted && !t.ProfitApplied {
		return s.applyDecided(ctx, t, ts, logger)
	}
	if t.Status != trade.StatusPending {
		s.metrics.RecordSettleConflict()
		return nil, trade.ErrAlreadySettled
	}

	var customerRate float64
	if !req.Outcome.IsManual() {
		if customerRate, err = settingRepo.CustomerWinRate(ctx, t.CustomerID); err != nil {
			return nil, domain.Aborted(err)
		}
	}
	isSuccess := trade.Resolve(req.Outcome, s.source, customerRate, ts.WinRate)
	profit := trade.Profit(t.Quantity, ts.Percentage, isSuccess)

	var acc *account.Account
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tradeRepo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		won, err := tradeRepo.Complete(ctx, t.ID, isSuccess, profit, true)
		if err != nil {
			return err
		}
		if !won {
			return trade.ErrAlreadySettled
		}
		acc, err = s.mutator.Apply(ctx, uow, t.AccountID, account.Delta{Balance: profit})
		return err
	})
	if err != nil {
		if errors.Is(err, trade.ErrAlreadySettled) {
			s.metrics.RecordSettleConflict()
			logger.Info("settlement lost the race")
			return nil, err
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, s.storeUnpaid(ctx, t, isSuccess, profit, err, logger)
		}
		logger.Error("SettleTrade failed", "error", err, "profit", profit)
		return nil, domain.Aborted(err)
	}

	now := time.Now().UTC()
	t.Status = trade.StatusCompleted
	t.IsSuccess = &isSuccess
	t.Profit = profit
	t.ProfitApplied = true
	t.SettledAt = &now

	result := trade.ResultOf(isSuccess)
	logger.Info("trade settled", "result", result, "profit", profit, "manual", req.Outcome.IsManual())
	s.metrics.RecordTradeSettled(result, req.Outcome.IsManual(), time.Since(start))
	s.emitSettled(ctx, t, req.Outcome.IsManual())
	return &SettleTradeResult{Trade: t, Profit: profit, Result: result, Account: acc}, nil
}

// OverrideTrade settles a trade with an admin-chosen outcome on behalf of
// its owner. Unlike DecideTrade the profit is applied at once.
func (s *Service) OverrideTrade(
	ctx context.Context,
	tradeID uuid.UUID,
	outcome trade.Outcome,
	flags setting.Flags,
) (*SettleTradeResult, error) {
	if !outcome.IsManual() {
		return nil, trade.ErrInvalidOutcome
	}
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	t, err := repo.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	return s.SettleTrade(ctx, SettleTradeRequest{
		CustomerID: t.CustomerID,
		TradeID:    t.ID,
		Outcome:    outcome,
	}, flags)
}

// storeUnpaid keeps a drawn outcome whose profit the account cannot absorb:
// the trade completes with profit_applied false, so a retry only ever
// applies the stored result and never draws again. cause is returned when
// the outcome was stored.
func (s *Service) storeUnpaid(
	ctx context.Context,
	t *trade.Trade,
	isSuccess bool,
	profit decimal.Decimal,
	cause error,
	logger *slog.Logger,
) error {
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return domain.Aborted(err)
	}
	won, err := repo.Complete(ctx, t.ID, isSuccess, profit, false)
	if err != nil {
		logger.Error("storing unpaid outcome failed", "error", err)
		return domain.Aborted(err)
	}
	if !won {
		s.metrics.RecordSettleConflict()
		return trade.ErrAlreadySettled
	}
	logger.Warn("outcome stored, profit not applied",
		"result", trade.ResultOf(isSuccess),
		"profit", profit,
		"error", cause,
	)
	return cause
}

// applyDecided applies the profit of a trade whose outcome is already
// stored, either by an admin or by an earlier settle the account could not
// cover. The profit_applied flag flips once, so a repeated call cannot pay
// twice.
func (s *Service) applyDecided(
	ctx context.Context,
	t *trade.Trade,
	ts *trade.Setting,
	logger *slog.Logger,
) (*SettleTradeResult, error) {
	if t.ProfitApplied || t.IsSuccess == nil {
		s.metrics.RecordSettleConflict()
		return nil, trade.ErrAlreadySettled
	}
	isSuccess := *t.IsSuccess
	profit := trade.Profit(t.Quantity, ts.Percentage, isSuccess)

	var acc *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tradeRepo, err := uow.TradeRepository()
		if err != nil {
			return err
		}
		won, err := tradeRepo.MarkProfitApplied(ctx, t.ID, profit)
		if err != nil {
			return err
		}
		if !won {
			return trade.ErrAlreadySettled
		}
		acc, err = s.mutator.Apply(ctx, uow, t.AccountID, account.Delta{Balance: profit})
		return err
	})
	if err != nil {
		if errors.Is(err, trade.ErrAlreadySettled) {
			s.metrics.RecordSettleConflict()
			return nil, err
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			logger.Warn("stored outcome still not covered", "profit", profit)
			return nil, err
		}
		logger.Error("applying decided profit failed", "error", err)
		return nil, domain.Aborted(err)
	}
	t.Profit = profit
	t.ProfitApplied = true

	result := trade.ResultOf(isSuccess)
	logger.Info("decided trade applied", "result", result, "profit", profit)
	s.metrics.RecordTradeSettled(result, true, 0)
	s.emitSettled(ctx, t, true)
	return &SettleTradeResult{Trade: t, Profit: profit, Result: result, Account: acc}, nil
}

// DecideTrade completes a PENDING trade with an admin-chosen outcome without
// touching the balance. The customer's next settle call applies the profit.
// Only valid while automatic decisions are off.
func (s *Service) DecideTrade(
	ctx context.Context,
	tradeID uuid.UUID,
	outcome trade.Outcome,
	flags setting.Flags,
) (*trade.Trade, error) {
	if !outcome.IsManual() {
		return nil, trade.ErrInvalidOutcome
	}
	if flags.AutoDecideWinLose {
		return nil, ErrManualModeOff
	}
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	t, err := repo.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	settingRepo, err := s.uow.SettingRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	ts, err := settingRepo.TradingSetting(ctx, t.Period, t.Type)
	if err != nil {
		return nil, domain.Aborted(err)
	}
	isSuccess := outcome == trade.OutcomeWin
	profit := trade.Profit(t.Quantity, ts.Percentage, isSuccess)
	won, err := repo.Complete(ctx, t.ID, isSuccess, profit, false)
	if err != nil {
		return nil, domain.Aborted(err)
	}
	if !won {
		return nil, trade.ErrAlreadySettled
	}
	now := time.Now().UTC()
	t.Status = trade.StatusCompleted
	t.IsSuccess = &isSuccess
	t.Profit = profit
	t.SettledAt = &now
	s.logger.Info("trade outcome decided", "trade_id", t.ID, "result", outcome)
	return t, nil
}

// FailTrade moves a PENDING trade to FAILED. No balance changes: nothing was
// debited when the trade was opened.
func (s *Service) FailTrade(ctx context.Context, tradeID uuid.UUID, reason string) (*trade.Trade, error) {
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	t, err := repo.Get(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	won, err := repo.Fail(ctx, t.ID)
	if err != nil {
		return nil, domain.Aborted(err)
	}
	if !won {
		return nil, trade.ErrAlreadySettled
	}
	t.Status = trade.StatusFailed
	s.logger.Info("trade failed", "trade_id", t.ID, "reason", reason)
	s.metrics.RecordTradeFailed(reason)
	s.emit(ctx, events.TradeFailed{Meta: events.NewMeta(t.CustomerID), TradeID: t.ID, Reason: reason})
	return t, nil
}

// Sweep fails every PENDING trade whose period plus the grace has elapsed
// at now and returns how many it failed. Balance-neutral like FailTrade.
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	start := time.Now()
	now = now.UTC()
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return 0, err
	}
	pending, err := repo.ListPending(ctx, now.Add(-s.grace))
	if err != nil {
		s.logger.Error("sweep: listing pending trades failed", "error", err)
		return 0, err
	}
	failed := 0
	for _, t := range pending {
		if ctx.Err() != nil {
			break
		}
		if t.ExpiresAt(s.grace).After(now) {
			continue
		}
		won, err := repo.Fail(ctx, t.ID)
		if err != nil {
			s.logger.Error("sweep: failing trade", "trade_id", t.ID, "error", err)
			continue
		}
		if !won {
			continue
		}
		failed++
		s.metrics.RecordTradeFailed("expired")
		s.emit(ctx, events.TradeFailed{Meta: events.NewMeta(t.CustomerID), TradeID: t.ID, Reason: "expired"})
	}
	s.metrics.RecordSweep(failed, time.Since(start))
	s.logger.Info("sweep finished", "scanned", len(pending), "failed", failed)
	return failed, ctx.Err()
}

// Get returns one of the customer's trades.
func (s *Service) Get(ctx context.Context, tradeID, customerID uuid.UUID) (*trade.Trade, error) {
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetForCustomer(ctx, tradeID, customerID)
}

// List returns trades matching filter, newest first.
func (s *Service) List(ctx context.Context, filter repository.ListFilter) ([]*trade.Trade, error) {
	repo, err := s.uow.TradeRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, filter)
}

func (s *Service) emitSettled(ctx context.Context, t *trade.Trade, manual bool) {
	s.emit(ctx, events.TradeSettled{
		Meta:      events.NewMeta(t.CustomerID),
		TradeID:   t.ID,
		AccountID: t.AccountID,
		Currency:  t.Currency.String(),
		IsSuccess: t.IsSuccess != nil && *t.IsSuccess,
		Profit:    t.Profit,
		Manual:    manual,
	})
}

// emit publishes after commit. Failures are logged and never undo the write.
func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Warn("event emit failed", "event_type", evt.Type(), "error", err)
	}
}
