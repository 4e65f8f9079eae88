package review

import (
	"context"
	"errors"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/amirasaad/brokerage/pkg/service/balance"
	"github.com/google/uuid"
)

// Workflow resolves the pending records of one review kind. Deposits and
// withdrawals share an implementation; exchanges branch on their policy.
type Workflow interface {
	Resolve(ctx context.Context, id uuid.UUID, decision review.Decision) (*Resolution, error)
}

// Resolution is the outcome of a decision.
type Resolution struct {
	Kind        review.Kind
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Status      string
	Transaction *review.Transaction
	Exchange    *review.Exchange
}

type transactionWorkflow struct {
	s    *Service
	kind review.Kind
}

func (w *transactionWorkflow) Resolve(ctx context.Context, id uuid.UUID, decision review.Decision) (*Resolution, error) {
	repo, err := w.s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	tx, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Type != w.kind {
		return nil, review.ErrTransactionNotFound
	}
	if tx.Status != review.StatusPending {
		return nil, review.ErrAlreadyResolved
	}
	target := decision.TargetStatus()

	err = w.s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		won, err := repo.Transition(ctx, tx.ID, review.StatusPending, target)
		if err != nil {
			return err
		}
		if !won {
			return review.ErrAlreadyResolved
		}
		_, err = w.s.mutator.Apply(ctx, uow, tx.AccountID, tx.ResolveDelta(decision))
		return err
	})
	if err != nil {
		if !errors.Is(err, review.ErrAlreadyResolved) {
			w.s.logger.Error("resolving transaction failed", "transaction_id", id, "error", err)
		}
		return nil, domain.Aborted(err)
	}

	now := time.Now().UTC()
	tx.Status = target
	tx.ResolvedAt = &now
	return &Resolution{
		Kind:        tx.Type,
		ID:          tx.ID,
		CustomerID:  tx.CustomerID,
		Status:      string(target),
		Transaction: tx,
	}, nil
}

type exchangeWorkflow struct {
	s *Service
}

func (w *exchangeWorkflow) Resolve(ctx context.Context, id uuid.UUID, decision review.Decision) (*Resolution, error) {
	repo, err := w.s.uow.ExchangeRepository()
	if err != nil {
		return nil, domain.Aborted(err)
	}
	ex, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	legs, target, ok := ex.ResolveLegs(decision)
	if !ok {
		return nil, review.ErrAlreadyResolved
	}

	err = w.s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ExchangeRepository()
		if err != nil {
			return err
		}
		won, err := repo.Transition(ctx, ex.ID, ex.Status, target)
		if err != nil {
			return err
		}
		if !won {
			return review.ErrAlreadyResolved
		}
		return w.s.mutator.Transfer(ctx, uow,
			balance.Leg{AccountID: ex.FromAccountID, Delta: legs.From},
			balance.Leg{AccountID: ex.ToAccountID, Delta: legs.To},
		)
	})
	if err != nil {
		if !errors.Is(err, review.ErrAlreadyResolved) {
			w.s.logger.Error("resolving exchange failed", "exchange_id", id, "error", err)
		}
		return nil, domain.Aborted(err)
	}

	now := time.Now().UTC()
	ex.Status = target
	ex.ResolvedAt = &now
	return &Resolution{
		Kind:       review.KindExchange,
		ID:         ex.ID,
		CustomerID: ex.CustomerID,
		Status:     string(target),
		Exchange:   ex,
	}, nil
}
