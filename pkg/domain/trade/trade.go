package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTradeNotFound is returned when the trade does not exist or belongs to someone else.
	ErrTradeNotFound = fmt.Errorf("trade not found or access denied: %w", domain.ErrNotFound)
	// ErrAlreadySettled is returned to the loser of a settlement race.
	ErrAlreadySettled = fmt.Errorf("trade already settled: %w", domain.ErrConflict)
	// ErrInsufficientBalance is returned when total holdings cannot cover the quantity.
	ErrInsufficientBalance = fmt.Errorf("insufficient balance: %w", domain.ErrInsufficientFunds)
	// ErrTradingClosed is returned when the open_to_trade flag is off.
	ErrTradingClosed = fmt.Errorf("trading is closed: %w", domain.ErrForbidden)
	// ErrInvalidTradeType is returned for anything but LONG or SHORT.
	ErrInvalidTradeType = fmt.Errorf("trade type must be LONG or SHORT: %w", domain.ErrValidation)
	// ErrInvalidPeriod is returned for non-positive periods.
	ErrInvalidPeriod = fmt.Errorf("period must be a positive number of seconds: %w", domain.ErrValidation)
	// ErrInvalidQuantity is returned for non-positive quantities.
	ErrInvalidQuantity = fmt.Errorf("trade quantity must be positive: %w", domain.ErrValidation)
	// ErrInvalidOutcome is returned for outcomes other than win, lose or auto.
	ErrInvalidOutcome = fmt.Errorf("outcome must be win, lose or empty: %w", domain.ErrValidation)
)

// Type is the direction of a binary trade.
type Type string

const (
	Long  Type = "LONG"
	Short Type = "SHORT"
)

// ParseType accepts long/short in any case.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case Long, Short:
		return t, nil
	default:
		return "", ErrInvalidTradeType
	}
}

// Status is the trade lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Trade is a timed binary wager.
//
// Invariants:
//   - Created PENDING with no debit; the wager only moves money as the
//     settlement delta (profit, which is negative on a loss).
//   - PENDING -> COMPLETED happens once; ProfitApplied flips false -> true once.
//   - IsSuccess is nil until the outcome is known.
type Trade struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	AccountID     uuid.UUID
	Currency      money.Code
	Type          Type
	Period        int
	Quantity      decimal.Decimal
	Status        Status
	IsSuccess     *bool
	Profit        decimal.Decimal
	ProfitApplied bool
	SettledAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New validates the request fields and returns a PENDING trade.
func New(
	customerID, accountID uuid.UUID,
	currency money.Code,
	tradeType Type,
	period int,
	quantity decimal.Decimal,
) (*Trade, error) {
	if err := Validate(tradeType, period, quantity); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Trade{
		ID:         uuid.New(),
		CustomerID: customerID,
		AccountID:  accountID,
		Currency:   currency,
		Type:       tradeType,
		Period:     period,
		Quantity:   quantity,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Validate checks the fields of a new trade.
func Validate(tradeType Type, period int, quantity decimal.Decimal) error {
	if err := ValidatePair(tradeType, period); err != nil {
		return err
	}
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if err := money.ValidateScale(quantity); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// ValidatePair checks the (period, type) key of a trading setting.
func ValidatePair(tradeType Type, period int) error {
	if tradeType != Long && tradeType != Short {
		return ErrInvalidTradeType
	}
	if period <= 0 {
		return ErrInvalidPeriod
	}
	return nil
}

// ExpiresAt is the moment the trade window plus grace has passed.
func (t *Trade) ExpiresAt(grace time.Duration) time.Time {
	return t.CreatedAt.Add(time.Duration(t.Period)*time.Second + grace)
}

// Result returns "win", "lose" or "" while undecided.
func (t *Trade) Result() string {
	if t.IsSuccess == nil {
		return ""
	}
	return ResultOf(*t.IsSuccess)
}

// ResultOf maps an outcome flag to its wire name.
func ResultOf(isSuccess bool) string {
	if isSuccess {
		return string(OutcomeWin)
	}
	return string(OutcomeLose)
}

// Profit is the settlement delta: quantity × percentage / 100 on a win and
// −quantity on a loss.
func Profit(quantity, percentage decimal.Decimal, isSuccess bool) decimal.Decimal {
	if isSuccess {
		return money.Percent(quantity, percentage)
	}
	return quantity.Neg()
}
