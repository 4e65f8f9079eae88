package repository

import (
	"context"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/amirasaad/brokerage/pkg/domain/notification"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLimit caps list queries that do not ask for a page size.
const DefaultLimit = 50

// ListFilter narrows list queries. Zero values match everything.
type ListFilter struct {
	CustomerID uuid.UUID
	Status     string
	Type       string
	Limit      int
	Offset     int
}

// PageSize returns the effective limit.
func (f ListFilter) PageSize() int {
	if f.Limit <= 0 || f.Limit > 500 {
		return DefaultLimit
	}
	return f.Limit
}

// AccountRepository persists accounts. Balances only change through ApplyDelta.
type AccountRepository interface {
	// GetOrCreate returns the customer's account in currency, creating an
	// empty one on first use. Concurrent callers converge on the same row.
	GetOrCreate(ctx context.Context, customerID uuid.UUID, currency money.Code) (*account.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByCurrency(ctx context.Context, customerID uuid.UUID, currency money.Code) (*account.Account, error)
	GetByNo(ctx context.Context, accountNo string) (*account.Account, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error)
	// ApplyDelta moves both counters in one guarded statement and returns the
	// updated row. It fails with account.ErrInsufficientFunds when a guard
	// rejects the change and account.ErrAccountNotFound for unknown ids.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta account.Delta) (*account.Account, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// TradeRepository persists trades. State changes are compare-and-swap.
type TradeRepository interface {
	Create(ctx context.Context, t *trade.Trade) error
	Get(ctx context.Context, id uuid.UUID) (*trade.Trade, error)
	// GetForCustomer hides trades owned by someone else behind ErrTradeNotFound.
	GetForCustomer(ctx context.Context, id, customerID uuid.UUID) (*trade.Trade, error)
	List(ctx context.Context, filter ListFilter) ([]*trade.Trade, error)
	// Complete moves a PENDING trade to COMPLETED and reports whether this
	// caller won the transition.
	Complete(ctx context.Context, id uuid.UUID, isSuccess bool, profit decimal.Decimal, profitApplied bool) (bool, error)
	// MarkProfitApplied flips profit_applied on a COMPLETED trade once.
	MarkProfitApplied(ctx context.Context, id uuid.UUID, profit decimal.Decimal) (bool, error)
	// Fail moves a PENDING trade to FAILED.
	Fail(ctx context.Context, id uuid.UUID) (bool, error)
	// ListPending returns PENDING trades created before the cutoff.
	ListPending(ctx context.Context, createdBefore time.Time) ([]*trade.Trade, error)
	Totals(ctx context.Context) (count int64, quantity decimal.Decimal, err error)
}

// SettingRepository holds trading settings, customer win rates and general flags.
type SettingRepository interface {
	// TradingSetting returns the setting for the pair, materializing the
	// default payout and win rate the first time it is requested.
	TradingSetting(ctx context.Context, period int, tradeType trade.Type) (*trade.Setting, error)
	ListTradingSettings(ctx context.Context) ([]*trade.Setting, error)
	SaveTradingSetting(ctx context.Context, s *trade.Setting) error
	// CustomerWinRate returns the customer's gate, creating the default row on first use.
	CustomerWinRate(ctx context.Context, customerID uuid.UUID) (float64, error)
	SetCustomerWinRate(ctx context.Context, customerID uuid.UUID, rate float64) error
	Values(ctx context.Context) (map[string]string, error)
	SetValue(ctx context.Context, name, value string) error
}

// TransactionRepository persists deposits and withdrawals.
type TransactionRepository interface {
	Create(ctx context.Context, tx *review.Transaction) error
	Get(ctx context.Context, id uuid.UUID) (*review.Transaction, error)
	List(ctx context.Context, filter ListFilter) ([]*review.Transaction, error)
	// Transition moves the record from one status to another and reports
	// whether this caller won.
	Transition(ctx context.Context, id uuid.UUID, from, to review.Status) (bool, error)
	MarkSent(ctx context.Context, id uuid.UUID) (bool, error)
	Sum(ctx context.Context, kind review.Kind, status review.Status) (decimal.Decimal, error)
}

// ExchangeRepository persists currency exchanges.
type ExchangeRepository interface {
	Create(ctx context.Context, ex *review.Exchange) error
	Get(ctx context.Context, id uuid.UUID) (*review.Exchange, error)
	List(ctx context.Context, filter ListFilter) ([]*review.Exchange, error)
	Transition(ctx context.Context, id uuid.UUID, from, to review.ExchangeStatus) (bool, error)
}

// CustomerRepository persists customers and their password hashes.
type CustomerRepository interface {
	Create(ctx context.Context, c *customer.Customer) error
	Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email string) (*customer.Customer, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, update customer.PasswordUpdate) error
}

// NotificationRepository persists the admin inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
	List(ctx context.Context, unreadOnly bool, limit int) ([]*notification.Notification, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
}
