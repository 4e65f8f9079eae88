// Package report computes the back office dashboard.
package report

import (
	"context"
	"log/slog"

	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the admin landing page summary.
type Dashboard struct {
	TradeCount          int64           `json:"trade_count"`
	TradeQuantity       decimal.Decimal `json:"trade_quantity"`
	DepositTotal        decimal.Decimal `json:"deposit_total"`
	WithdrawalTotal     decimal.Decimal `json:"withdrawal_total"`
	PendingDeposits     decimal.Decimal `json:"pending_deposits"`
	PendingWithdrawals  decimal.Decimal `json:"pending_withdrawals"`
	UnreadNotifications int64           `json:"unread_notifications"`
}

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger.With("service", "report")}
}

// Dashboard sums trades, completed and pending transactions, and the unread
// inbox. Amounts are added across currencies at face value.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	trades, err := s.uow.TradeRepository()
	if err != nil {
		return nil, err
	}
	txs, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	inbox, err := s.uow.NotificationRepository()
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TradeCount, d.TradeQuantity, err = trades.Totals(gctx)
		return err
	})
	sums := []struct {
		dst    *decimal.Decimal
		kind   review.Kind
		status review.Status
	}{
		{&d.DepositTotal, review.KindDeposit, review.StatusCompleted},
		{&d.WithdrawalTotal, review.KindWithdrawal, review.StatusCompleted},
		{&d.PendingDeposits, review.KindDeposit, review.StatusPending},
		{&d.PendingWithdrawals, review.KindWithdrawal, review.StatusPending},
	}
	for _, sum := range sums {
		g.Go(func() (err error) {
			*sum.dst, err = txs.Sum(gctx, sum.kind, sum.status)
			return err
		})
	}
	g.Go(func() (err error) {
		d.UnreadNotifications, err = inbox.CountUnread(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard query failed", "error", err)
		return nil, err
	}
	return d, nil
}
