package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/repository"
	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrade(t *testing.T, customerID, accountID uuid.UUID, qty string) *trade.Trade {
	t.Helper()
	tr, err := trade.New(customerID, accountID, money.USDT, trade.Long, 60, dec(qty))
	require.NoError(t, err)
	return tr
}

func TestTradeRepository_CreateAndGet(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.TradeRepository()
	require.NoError(t, err)
	ctx := context.Background()
	acc := testutils.SeedAccount(t, uow, uuid.New(), money.USDT, "0")

	tr := newTrade(t, acc.CustomerID, acc.ID, "25")
	require.NoError(t, repo.Create(ctx, tr))

	got, err := repo.GetForCustomer(ctx, tr.ID, acc.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, trade.StatusPending, got.Status)
	assert.Nil(t, got.IsSuccess)
	assert.Equal(t, "25", got.Quantity.String())
	assert.Equal(t, 60, got.Period)

	_, err = repo.GetForCustomer(ctx, tr.ID, uuid.New())
	assert.ErrorIs(t, err, trade.ErrTradeNotFound)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, trade.ErrTradeNotFound)
}

func TestTradeRepository_CompleteIsCompareAndSwap(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.TradeRepository()
	require.NoError(t, err)
	ctx := context.Background()
	acc := testutils.SeedAccount(t, uow, uuid.New(), money.USDT, "0")
	tr := newTrade(t, acc.CustomerID, acc.ID, "100")
	require.NoError(t, repo.Create(ctx, tr))

	won, err := repo.Complete(ctx, tr.ID, true, dec("50"), true)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.Complete(ctx, tr.ID, false, dec("-100"), true)
	require.NoError(t, err)
	assert.False(t, won)

	failed, err := repo.Fail(ctx, tr.ID)
	require.NoError(t, err)
	assert.False(t, failed)

	got, err := repo.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.StatusCompleted, got.Status)
	require.NotNil(t, got.IsSuccess)
	assert.True(t, *got.IsSuccess)
	assert.Equal(t, "50", got.Profit.String())
	assert.True(t, got.ProfitApplied)
	assert.NotNil(t, got.SettledAt)
}

func TestTradeRepository_MarkProfitAppliedOnce(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.TradeRepository()
	require.NoError(t, err)
	ctx := context.Background()
	acc := testutils.SeedAccount(t, uow, uuid.New(), money.USDT, "0")
	tr := newTrade(t, acc.CustomerID, acc.ID, "100")
	require.NoError(t, repo.Create(ctx, tr))

	// not completed yet
	ok, err := repo.MarkProfitApplied(ctx, tr.ID, dec("50"))
	require.NoError(t, err)
	assert.False(t, ok)

	won, err := repo.Complete(ctx, tr.ID, true, dec("0"), false)
	require.NoError(t, err)
	require.True(t, won)

	ok, err = repo.MarkProfitApplied(ctx, tr.ID, dec("50"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkProfitApplied(ctx, tr.ID, dec("50"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTradeRepository_ListPendingAndTotals(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.TradeRepository()
	require.NoError(t, err)
	ctx := context.Background()
	acc := testutils.SeedAccount(t, uow, uuid.New(), money.USDT, "0")

	old := newTrade(t, acc.CustomerID, acc.ID, "10")
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	fresh := newTrade(t, acc.CustomerID, acc.ID, "20")
	done := newTrade(t, acc.CustomerID, acc.ID, "30")
	done.CreatedAt = time.Now().UTC().Add(-time.Hour)
	for _, tr := range []*trade.Trade{old, fresh, done} {
		require.NoError(t, repo.Create(ctx, tr))
	}
	_, err = repo.Fail(ctx, done.ID)
	require.NoError(t, err)

	pending, err := repo.ListPending(ctx, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, old.ID, pending[0].ID)

	failed, err := repo.List(ctx, repository.ListFilter{Status: string(trade.StatusFailed)})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, done.ID, failed[0].ID)

	mine, err := repo.List(ctx, repository.ListFilter{CustomerID: acc.CustomerID})
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	count, qty, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, "60", qty.String())
}

func TestTradeRepository_TotalsEmpty(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.TradeRepository()
	require.NoError(t, err)

	count, qty, err := repo.Totals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, qty.IsZero())
}
