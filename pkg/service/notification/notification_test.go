package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amirasaad/brokerage/internal/fixtures/mocks"
	infraeventbus "github.com/amirasaad/brokerage/infra/eventbus"
	"github.com/amirasaad/brokerage/pkg/domain/events"
	"github.com/amirasaad/brokerage/pkg/eventbus"
	"github.com/amirasaad/brokerage/pkg/service/notification"
	"github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func depositEvent(customerID uuid.UUID) events.DepositRequested {
	return events.DepositRequested{
		Meta:          events.NewMeta(customerID),
		TransactionID: uuid.New(),
		AccountID:     uuid.New(),
		Amount:        decimal.RequireFromString("25"),
		Currency:      "USDT",
	}
}

func TestHandle_PersistsAndForwards(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	sender := mocks.NewMockSender(t)
	sender.EXPECT().Send(mock.Anything, "Deposit of 25 USDT awaits review").Return(nil).Once()
	svc := notification.New(uow, sender, slog.Default())
	ctx := context.Background()

	customerID := uuid.New()
	e := depositEvent(customerID)
	require.NoError(t, svc.Handle(ctx, &e))

	list, err := svc.List(ctx, false, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, customerID, list[0].CustomerID)
	assert.Equal(t, events.EventTypeDepositRequested.String(), list[0].Kind)
	assert.False(t, list[0].Read)
}

func TestHandle_SinkFailureIsTolerated(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	sender := mocks.NewMockSender(t)
	sender.EXPECT().Send(mock.Anything, mock.Anything).Return(errors.New("telegram down")).Once()
	svc := notification.New(uow, sender, slog.Default())
	ctx := context.Background()

	require.NoError(t, svc.Handle(ctx, depositEvent(uuid.New())))
	unread, err := svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestHandle_StoreFailureFails(t *testing.T) {
	boom := errors.New("db down")
	uow := mocks.NewMockUnitOfWork(t)
	repo := mocks.NewMockNotificationRepository(t)
	uow.EXPECT().NotificationRepository().Return(repo, nil).Once()
	repo.EXPECT().Create(mock.Anything, mock.Anything).Return(boom).Once()
	sender := mocks.NewMockSender(t)

	svc := notification.New(uow, sender, slog.Default())
	assert.ErrorIs(t, svc.Handle(context.Background(), depositEvent(uuid.New())), boom)
}

func TestRegister_StoresRedeliveriesOnce(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	svc := notification.New(uow, nil, slog.Default())
	bus := infraeventbus.NewWithMemory(slog.Default())
	svc.Register(bus)
	ctx := context.Background()

	e := depositEvent(uuid.New())
	require.NoError(t, bus.Emit(ctx, e))
	require.NoError(t, bus.Emit(ctx, &e))
	require.NoError(t, bus.Emit(ctx, events.WithdrawalSent{Meta: events.NewMeta(uuid.New()), TransactionID: uuid.New()}))

	unread, err := svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

func TestRegister_SubscribesEveryEventType(t *testing.T) {
	bus := mocks.NewMockBus(t)
	for _, et := range events.All() {
		bus.EXPECT().Register(et, mock.Anything).Once()
	}
	notification.New(mocks.NewMockUnitOfWork(t), nil, slog.Default()).Register(bus)
}

func TestReadState(t *testing.T) {
	uow, _ := testutils.NewSQLiteUoW(t)
	svc := notification.New(uow, nil, slog.Default())
	ctx := context.Background()

	require.NoError(t, svc.Handle(ctx, depositEvent(uuid.New())))
	require.NoError(t, svc.Handle(ctx, depositEvent(uuid.New())))
	list, err := svc.List(ctx, true, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.MarkRead(ctx, list[0].ID))
	unread, err := svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.MarkAllRead(ctx))
	unread, err = svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestRender(t *testing.T) {
	t.Parallel()
	tradeID := uuid.New()
	tests := []struct {
		name  string
		event events.Event
		want  string
	}{
		{
			name: "trade won",
			event: &events.TradeSettled{
				TradeID: tradeID, IsSuccess: true,
				Profit: decimal.RequireFromString("5"), Currency: "BTC",
			},
			want: "Trade " + tradeID.String() + " won, profit 5 BTC",
		},
		{
			name:  "trade failed",
			event: events.TradeFailed{TradeID: tradeID, Reason: "oracle down"},
			want:  "Trade " + tradeID.String() + " failed: oracle down",
		},
		{
			name: "withdrawal",
			event: events.WithdrawalRequested{
				Amount: decimal.RequireFromString("10"), NetAmount: decimal.RequireFromString("9.9"),
				Currency: "USDT", Address: "TXaddr",
			},
			want: "Withdrawal of 10 USDT (net 9.9) to TXaddr awaits review",
		},
		{
			name:  "review resolved",
			event: events.ReviewResolved{Kind: "deposit", RecordID: tradeID, Status: "COMPLETED"},
			want:  "deposit " + tradeID.String() + " resolved: COMPLETED",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, notification.Render(tc.event))
		})
	}
}

var _ notification.Sender = (*mocks.MockSender)(nil)
var _ eventbus.Bus = (*mocks.MockBus)(nil)
