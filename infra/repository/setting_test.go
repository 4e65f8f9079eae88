package repository_test

import (
	"context"
	"testing"

	"github.com/amirasaad/brokerage/pkg/domain/setting"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingRepository_TradingSettingDefaults(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.SettingRepository()
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		period int
		pct    string
	}{
		{30, "40"},
		{60, "50"},
		{120, "70"},
		{300, "100"},
		{45, "40"},
	}
	for _, tc := range tests {
		s, err := repo.TradingSetting(ctx, tc.period, trade.Long)
		require.NoError(t, err)
		assert.Equal(t, tc.pct, s.Percentage.String(), "period %d", tc.period)
		assert.InDelta(t, 0.5, s.WinRate, 1e-9)
	}

	all, err := repo.ListTradingSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(tests))

	_, err = repo.TradingSetting(ctx, 0, trade.Long)
	assert.ErrorIs(t, err, trade.ErrInvalidPeriod)
}

func TestSettingRepository_SaveTradingSetting(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.SettingRepository()
	require.NoError(t, err)
	ctx := context.Background()

	s, err := repo.TradingSetting(ctx, 60, trade.Short)
	require.NoError(t, err)
	s.WinRate = 0.2
	s.Percentage = dec("65")
	require.NoError(t, repo.SaveTradingSetting(ctx, s))

	again, err := repo.TradingSetting(ctx, 60, trade.Short)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.InDelta(t, 0.2, again.WinRate, 1e-9)
	assert.Equal(t, "65", again.Percentage.String())
}

func TestSettingRepository_CustomerWinRate(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.SettingRepository()
	require.NoError(t, err)
	ctx := context.Background()
	customerID := uuid.New()

	rate, err := repo.CustomerWinRate(ctx, customerID)
	require.NoError(t, err)
	assert.InDelta(t, trade.DefaultWinRate, rate, 1e-9)

	require.NoError(t, repo.SetCustomerWinRate(ctx, customerID, 0))
	rate, err = repo.CustomerWinRate(ctx, customerID)
	require.NoError(t, err)
	assert.Zero(t, rate)

	require.NoError(t, repo.SetCustomerWinRate(ctx, customerID, 0.9))
	rate, err = repo.CustomerWinRate(ctx, customerID)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, rate, 1e-9)
}

func TestSettingRepository_Values(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	repo, err := uow.SettingRepository()
	require.NoError(t, err)
	ctx := context.Background()

	values, err := repo.Values(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, repo.SetValue(ctx, setting.OpenToTrade, "false"))
	require.NoError(t, repo.SetValue(ctx, setting.OpenToTrade, "true"))
	require.NoError(t, repo.SetValue(ctx, setting.AutoDecideWinLose, "false"))

	values, err = repo.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		setting.OpenToTrade:       "true",
		setting.AutoDecideWinLose: "false",
	}, values)
}
