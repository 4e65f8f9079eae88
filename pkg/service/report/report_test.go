package report_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amirasaad/brokerage/internal/fixtures/mocks"
	"github.com/amirasaad/brokerage/pkg/domain/notification"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/service/report"
	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDashboard(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	ctx := context.Background()
	acc := testutils.SeedAccount(t, uow, uuid.New(), money.USDT, "500")

	trades, err := uow.TradeRepository()
	require.NoError(t, err)
	for _, qty := range []string{"10", "15.5"} {
		tr, err := trade.New(acc.CustomerID, acc.ID, money.USDT, trade.Long, 60, dec(qty))
		require.NoError(t, err)
		require.NoError(t, trades.Create(ctx, tr))
	}

	txs, err := uow.TransactionRepository()
	require.NoError(t, err)
	done, err := review.NewDeposit(acc, dec("100"), "proof", "")
	require.NoError(t, err)
	require.NoError(t, txs.Create(ctx, done))
	_, err = txs.Transition(ctx, done.ID, review.StatusPending, review.StatusCompleted)
	require.NoError(t, err)
	pending, err := review.NewDeposit(acc, dec("40"), "proof", "")
	require.NoError(t, err)
	require.NoError(t, txs.Create(ctx, pending))
	wd, err := review.NewWithdrawal(acc, dec("20"), dec("1"), "addr")
	require.NoError(t, err)
	require.NoError(t, txs.Create(ctx, wd))

	inbox, err := uow.NotificationRepository()
	require.NoError(t, err)
	require.NoError(t, inbox.Create(ctx, notification.New(acc.CustomerID, "Deposit.Requested", "x")))

	d, err := report.New(uow, slog.Default()).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.TradeCount)
	assert.Equal(t, "25.5", d.TradeQuantity.String())
	assert.Equal(t, "100", d.DepositTotal.String())
	assert.True(t, d.WithdrawalTotal.IsZero())
	assert.Equal(t, "40", d.PendingDeposits.String())
	assert.Equal(t, "20", d.PendingWithdrawals.String())
	assert.Equal(t, int64(1), d.UnreadNotifications)
}

func TestDashboard_Empty(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	d, err := report.New(uow, slog.Default()).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.TradeCount)
	assert.True(t, d.DepositTotal.IsZero())
	assert.Zero(t, d.UnreadNotifications)
}

func TestDashboard_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	uow := mocks.NewMockUnitOfWork(t)
	uow.EXPECT().TradeRepository().Return(nil, boom).Once()

	_, err := report.New(uow, slog.Default()).Dashboard(context.Background())
	assert.ErrorIs(t, err, boom)
}
