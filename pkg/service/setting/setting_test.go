package setting_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/domain"
	domainsetting "github.com/amirasaad/brokerage/pkg/domain/setting"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/service/setting"
	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_DatabaseOverridesConfig(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	svc := setting.New(uow, &config.Trading{OpenToTrade: false, AutoDecideWinLose: true}, slog.Default())
	ctx := context.Background()

	flags, err := svc.Flags(ctx)
	require.NoError(t, err)
	assert.False(t, flags.OpenToTrade)
	assert.True(t, flags.AutoDecideWinLose)

	require.NoError(t, svc.SetFlag(ctx, domainsetting.OpenToTrade, "TRUE"))
	require.NoError(t, svc.SetFlag(ctx, domainsetting.AutoDecideWinLose, "0"))
	flags, err = svc.Flags(ctx)
	require.NoError(t, err)
	assert.True(t, flags.OpenToTrade)
	assert.False(t, flags.AutoDecideWinLose)

	assert.ErrorIs(t, svc.SetFlag(ctx, "maintenance", "true"), domain.ErrValidation)
	assert.ErrorIs(t, svc.SetFlag(ctx, domainsetting.OpenToTrade, "maybe"), domain.ErrValidation)
}

func TestUpdateTradingSetting(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	svc := setting.New(uow, nil, slog.Default())
	ctx := context.Background()

	rate := 0.8
	ts, err := svc.UpdateTradingSetting(ctx, setting.UpdateTradingSetting{Period: 60, Type: trade.Short, WinRate: &rate})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, ts.WinRate, 1e-9)
	assert.Equal(t, "50", ts.Percentage.String(), "payout keeps the materialized default")

	pct := decimal.NewFromInt(85)
	_, err = svc.UpdateTradingSetting(ctx, setting.UpdateTradingSetting{Period: 60, Type: trade.Short, Percentage: &pct})
	require.NoError(t, err)

	list, err := svc.TradingSettings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "85", list[0].Percentage.String())
	assert.InDelta(t, 0.8, list[0].WinRate, 1e-9)

	bad := 1.5
	_, err = svc.UpdateTradingSetting(ctx, setting.UpdateTradingSetting{Period: 60, Type: trade.Short, WinRate: &bad})
	assert.ErrorIs(t, err, trade.ErrInvalidWinRate)
	_, err = svc.UpdateTradingSetting(ctx, setting.UpdateTradingSetting{Period: 0, Type: trade.Short, WinRate: &rate})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCustomerWinRate(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	svc := setting.New(uow, nil, slog.Default())
	ctx := context.Background()
	customerID := uuid.New()

	rate, err := svc.CustomerWinRate(ctx, customerID)
	require.NoError(t, err)
	assert.InDelta(t, trade.DefaultWinRate, rate, 1e-9)

	require.NoError(t, svc.SetCustomerWinRate(ctx, customerID, 0))
	rate, err = svc.CustomerWinRate(ctx, customerID)
	require.NoError(t, err)
	assert.Zero(t, rate)

	assert.ErrorIs(t, svc.SetCustomerWinRate(ctx, customerID, -0.1), domain.ErrValidation)
}
