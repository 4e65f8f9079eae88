// Package review runs the deposit, withdrawal and exchange workflows.
//
// Every request escrows or moves funds in the same database transaction
// that stores the record. Every resolution is a compare-and-swap on the
// record status followed by the closing balance change, again in one
// transaction; the admin who loses the swap gets review.ErrAlreadyResolved.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/amirasaad/brokerage/pkg/metrics"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/amirasaad/brokerage/pkg/service/balance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultWithdrawalFee is the percentage kept from every withdrawal.
var DefaultWithdrawalFee = decimal.NewFromInt(1)

// RateQuoter converts between currencies. It never fails.
type RateQuoter interface {
	Rate(ctx context.Context, from, to money.Code) decimal.Decimal
}

// Service opens and resolves review records.
type Service struct {
	uow       repository.UnitOfWork
	quoter    RateQuoter
	mutator   *balance.Mutator
	bus       eventbus.Bus
	policy    review.Policy
	fee       decimal.Decimal
	metrics   metrics.Recorder
	logger    *slog.Logger
	workflows map[review.Kind]Workflow
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy selects how exchanges move money at request time.
func WithPolicy(p review.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithWithdrawalFee sets the withdrawal fee percentage.
func WithWithdrawalFee(pct decimal.Decimal) Option {
	return func(s *Service) { s.fee = pct }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r metrics.Recorder) Option {
	return func(s *Service) { s.metrics = r }
}

// New creates a review Service. bus may be nil.
func New(
	uow repository.UnitOfWork,
	quoter RateQuoter,
	mutator *balance.Mutator,
	bus eventbus.Bus,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		uow:     uow,
		quoter:  quoter,
		mutator: mutator,
		bus:     bus,
		policy:  review.PolicyImmediate,
		fee:     DefaultWithdrawalFee,
		metrics: metrics.NoOp{},
		logger:  logger.With("service", "review"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.workflows = map[review.Kind]Workflow{
		review.KindDeposit:    &transactionWorkflow{s: s, kind: review.KindDeposit},
		review.KindWithdrawal: &transactionWorkflow{s: s, kind: review.KindWithdrawal},
		review.KindExchange:   &exchangeWorkflow{s: s},
	}
	return s
}

// Policy reports the exchange policy in effect.
func (s *Service) Policy() review.Policy { return s.policy }

// DepositRequest asks for funds to be credited after review.
type DepositRequest struct {
	CustomerID  uuid.UUID
	Currency    string
	Amount      decimal.Decimal
	ProofRef    string
	Description string
}

// RequestDeposit stores a PENDING deposit and holds the amount in review.
// The account is created on first use.
func (s *Service) RequestDeposit(ctx context.Context, req DepositRequest) (*review.Transaction, error) {
	logger := s.logger.With("op", "RequestDeposit", "customer_id", req.CustomerID)
	code, err := money.ParseCode(req.Currency)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}
	if err := money.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	var tx *review.Transaction
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := accRepo.GetOrCreate(ctx, req.CustomerID, code)
		if err != nil {
			return err
		}
		if tx, err = review.NewDeposit(acc, req.Amount, req.ProofRef, req.Description); err != nil {
			return err
		}
		return s.open(ctx, uow, tx)
	})
	if err != nil {
		logger.Error("RequestDeposit failed", "error", err)
		return nil, domain.Aborted(err)
	}

	logger.Info("deposit requested", "transaction_id", tx.ID, "amount", tx.Amount, "currency", tx.Currency)
	s.metrics.RecordReviewRequested(kindLabel(review.KindDeposit))
	s.emit(ctx, events.DepositRequested{
		Meta:          events.NewMeta(tx.CustomerID),
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Amount:        tx.Amount,
		Currency:      tx.Currency.String(),
	})
	return tx, nil
}

// WithdrawalRequest asks for funds to be paid out to Address.
type WithdrawalRequest struct {
	CustomerID uuid.UUID
	Currency   string
	Amount     decimal.Decimal
	Address    string
}

// RequestWithdrawal stores a PENDING withdrawal. The account must exist,
// be active and hold the gross amount; the net amount moves into review.
func (s *Service) RequestWithdrawal(ctx context.Context, req WithdrawalRequest) (*review.Transaction, error) {
	logger := s.logger.With("op", "RequestWithdrawal", "customer_id", req.CustomerID)
	code, err := money.ParseCode(req.Currency)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}

	var tx *review.Transaction
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acc, err := accRepo.GetByCurrency(ctx, req.CustomerID, code)
		if err != nil {
			return err
		}
		if !acc.IsActive {
			return account.ErrAccountInactive
		}
		if tx, err = review.NewWithdrawal(acc, req.Amount, s.fee, req.Address); err != nil {
			return err
		}
		return s.open(ctx, uow, tx)
	})
	if err != nil {
		logger.Warn("RequestWithdrawal rejected", "error", err, "amount", req.Amount)
		return nil, domain.Aborted(err)
	}

	logger.Info("withdrawal requested",
		"transaction_id", tx.ID,
		"amount", tx.Amount,
		"net_amount", tx.NetAmount,
		"currency", tx.Currency,
	)
	s.metrics.RecordReviewRequested(kindLabel(review.KindWithdrawal))
	s.emit(ctx, events.WithdrawalRequested{
		Meta:          events.NewMeta(tx.CustomerID),
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Amount:        tx.Amount,
		NetAmount:     tx.NetAmount,
		Currency:      tx.Currency.String(),
		Address:       tx.Address,
	})
	return tx, nil
}

func (s *Service) open(ctx context.Context, uow repository.UnitOfWork, tx *review.Transaction) error {
	if _, err := s.mutator.Apply(ctx, uow, tx.AccountID, tx.RequestDelta()); err != nil {
		return err
	}
	repo, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	return repo.Create(ctx, tx)
}

// ExchangeRequest converts Amount of FromCurrency into ToCurrency.
type ExchangeRequest struct {
	CustomerID   uuid.UUID
	FromCurrency string
	ToCurrency   string
	Amount       decimal.Decimal
}

// RequestExchange quotes the pair, creates the destination account on first
// use and moves both legs according to the configured policy.
func (s *Service) RequestExchange(ctx context.Context, req ExchangeRequest) (*review.Exchange, error) {
	logger := s.logger.With("op", "RequestExchange", "customer_id", req.CustomerID)
	from, err := money.ParseCode(req.FromCurrency)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}
	to, err := money.ParseCode(req.ToCurrency)
	if err != nil {
		return nil, domain.Validationf("%v", err)
	}
	if from.Equal(to) {
		return nil, review.ErrSameCurrency
	}
	if err := money.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	accRepo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	source, err := accRepo.GetByCurrency(ctx, req.CustomerID, from)
	if err != nil {
		return nil, err
	}

	// quoted outside the transaction; the quoter bounds the oracle call
	rate := s.quoter.Rate(ctx, from, to)

	var ex *review.Exchange
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		dest, err := accRepo.GetOrCreate(ctx, req.CustomerID, to)
		if err != nil {
			return err
		}
		if ex, err = review.NewExchange(source, dest, req.Amount, rate, s.policy); err != nil {
			return err
		}
		legs := ex.RequestLegs()
		if err := s.mutator.Transfer(ctx, uow,
			balance.Leg{AccountID: ex.FromAccountID, Delta: legs.From},
			balance.Leg{AccountID: ex.ToAccountID, Delta: legs.To},
		); err != nil {
			return err
		}
		repo, err := uow.ExchangeRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, ex)
	})
	if err != nil {
		logger.Warn("RequestExchange rejected", "error", err, "amount", req.Amount)
		return nil, domain.Aborted(err)
	}

	logger.Info("exchange requested",
		"exchange_id", ex.ID,
		"rate", ex.Rate,
		"exchanged_amount", ex.ExchangedAmount,
		"status", ex.Status,
	)
	s.metrics.RecordReviewRequested(kindLabel(review.KindExchange))
	s.emit(ctx, events.ExchangeRequested{
		Meta:            events.NewMeta(ex.CustomerID),
		ExchangeID:      ex.ID,
		FromCurrency:    ex.FromCurrency.String(),
		ToCurrency:      ex.ToCurrency.String(),
		Amount:          ex.Amount,
		ExchangedAmount: ex.ExchangedAmount,
		Status:          string(ex.Status),
	})
	return ex, nil
}

// Resolve applies an admin decision to the record of the given kind.
func (s *Service) Resolve(
	ctx context.Context,
	kind review.Kind,
	id uuid.UUID,
	decision review.Decision,
) (*Resolution, error) {
	w, ok := s.workflows[kind]
	if !ok {
		return nil, domain.Validationf("unknown review kind %q", kind)
	}
	if decision != review.Approve && decision != review.Reject {
		return nil, review.ErrInvalidDecision
	}
	res, err := w.Resolve(ctx, id, decision)
	if err != nil {
		return nil, err
	}
	s.logger.Info("review resolved",
		"kind", res.Kind,
		"record_id", res.ID,
		"decision", decision,
		"status", res.Status,
	)
	s.metrics.RecordReviewResolved(kindLabel(res.Kind), string(decision))
	s.emit(ctx, events.ReviewResolved{
		Meta:     events.NewMeta(res.CustomerID),
		Kind:     string(res.Kind),
		RecordID: res.ID,
		Decision: string(decision),
		Status:   res.Status,
	})
	return res, nil
}

// MarkWithdrawalSent records that a completed withdrawal was paid out.
func (s *Service) MarkWithdrawalSent(ctx context.Context, id uuid.UUID) (*review.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	tx, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Type != review.KindWithdrawal {
		return nil, review.ErrTransactionNotFound
	}
	if tx.Status != review.StatusCompleted {
		return nil, review.ErrNotCompleted
	}
	won, err := repo.MarkSent(ctx, id)
	if err != nil {
		return nil, domain.Aborted(err)
	}
	if !won {
		return nil, review.ErrAlreadyResolved
	}
	tx.Sent = true
	s.logger.Info("withdrawal marked sent", "transaction_id", id)
	s.emit(ctx, events.WithdrawalSent{Meta: events.NewMeta(tx.CustomerID), TransactionID: id})
	return tx, nil
}

// Transaction returns a deposit or withdrawal. A non-nil customerID hides
// records owned by someone else.
func (s *Service) Transaction(ctx context.Context, id, customerID uuid.UUID) (*review.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if customerID != uuid.Nil && tx.CustomerID != customerID {
		return nil, review.ErrTransactionNotFound
	}
	return tx, nil
}

// ListTransactions returns deposits and withdrawals matching filter.
func (s *Service) ListTransactions(ctx context.Context, filter repository.ListFilter) ([]*review.Transaction, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, filter)
}

// ListExchanges returns exchanges matching filter.
func (s *Service) ListExchanges(ctx context.Context, filter repository.ListFilter) ([]*review.Exchange, error) {
	repo, err := s.uow.ExchangeRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, filter)
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Warn("event emit failed", "event_type", evt.Type(), "error", err)
	}
}

func kindLabel(k review.Kind) string {
	return strings.ToLower(string(k))
}
