// Package balance moves money between the two counters of an account.
//
// Every primitive is one guarded UPDATE issued through the unit of work the
// caller passes in, so several moves composed inside one UnitOfWork.Do commit
// or roll back together. Nothing here reads a balance and writes it back.
package balance

import (
	"bytes"
	"context"
	"log/slog"
	"slices"

	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/google/uuid"
)

// Mutator applies account deltas.
type Mutator struct {
	logger *slog.Logger
}

// New creates a Mutator.
func New(logger *slog.Logger) *Mutator {
	return &Mutator{logger: logger.With("component", "balance")}
}

// Apply runs one delta against one account and returns the updated row.
func (m *Mutator) Apply(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountID uuid.UUID,
	delta account.Delta,
) (*account.Account, error) {
	repo, err := uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	acc, err := repo.ApplyDelta(ctx, accountID, delta)
	if err != nil {
		m.logger.Debug("delta rejected",
			"account_id", accountID,
			"balance_delta", delta.Balance,
			"inreview_delta", delta.InReview,
			"error", err,
		)
		return nil, err
	}
	return acc, nil
}

// Leg is one side of a Transfer.
type Leg struct {
	AccountID uuid.UUID
	Delta     account.Delta
}

// Transfer applies several legs inside the caller's unit of work. Legs are
// applied in account id order so concurrent transfers over the same pair of
// rows take their locks in the same order.
func (m *Mutator) Transfer(ctx context.Context, uow repository.UnitOfWork, legs ...Leg) error {
	ordered := slices.Clone(legs)
	slices.SortStableFunc(ordered, func(a, b Leg) int {
		return bytes.Compare(a.AccountID[:], b.AccountID[:])
	})
	for _, leg := range ordered {
		if leg.Delta.IsZero() {
			continue
		}
		if _, err := m.Apply(ctx, uow, leg.AccountID, leg.Delta); err != nil {
			return err
		}
	}
	return nil
}
