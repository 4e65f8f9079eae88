package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeStatus is the lifecycle of a currency exchange.
type ExchangeStatus string

const (
	ExchangePending  ExchangeStatus = "PENDING"
	ExchangeApproved ExchangeStatus = "APPROVED"
	ExchangeRejected ExchangeStatus = "REJECTED"
)

// ExchangeBuy is the only exchange direction customers can request.
const ExchangeBuy = "BUY"

// Policy selects how an exchange moves money at request time.
type Policy string

const (
	// PolicyImmediate applies both legs to the balances at request time and
	// creates the exchange APPROVED. Reject reverses the legs.
	PolicyImmediate Policy = "immediate"
	// PolicyEscrow parks both legs in inreview until an admin resolves them.
	PolicyEscrow Policy = "escrow"
)

// ErrInvalidPolicy is returned by ParsePolicy.
var ErrInvalidPolicy = fmt.Errorf("exchange policy must be immediate or escrow: %w", domain.ErrValidation)

// ParsePolicy reads a policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyImmediate, PolicyEscrow:
		return p, nil
	case "":
		return PolicyImmediate, nil
	default:
		return "", ErrInvalidPolicy
	}
}

// Exchange converts Amount of FromCurrency into ExchangedAmount of ToCurrency
// between two accounts of the same customer at a rate snapshotted at request time.
type Exchange struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountID     uuid.UUID
	FromAccountNo   string
	ToAccountNo     string
	FromCurrency    money.Code
	ToCurrency      money.Code
	Amount          decimal.Decimal
	ExchangedAmount decimal.Decimal
	Rate            decimal.Decimal
	Type            string
	Status          ExchangeStatus
	Policy          Policy
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewExchange snapshots the rate and computes the exchanged amount.
func NewExchange(from, to *account.Account, amount, rate decimal.Decimal, policy Policy) (*Exchange, error) {
	if err := money.ValidateAmount(amount); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if from.Currency.Equal(to.Currency) {
		return nil, ErrSameCurrency
	}
	if from.CustomerID != to.CustomerID {
		return nil, account.ErrNotOwner
	}
	status := ExchangeApproved
	if policy == PolicyEscrow {
		status = ExchangePending
	}
	now := time.Now().UTC()
	return &Exchange{
		ID:              uuid.New(),
		CustomerID:      from.CustomerID,
		FromAccountID:   from.ID,
		ToAccountID:     to.ID,
		FromAccountNo:   from.AccountNo,
		ToAccountNo:     to.AccountNo,
		FromCurrency:    from.Currency,
		ToCurrency:      to.Currency,
		Amount:          amount,
		ExchangedAmount: money.Round(amount.Mul(rate)),
		Rate:            rate,
		Type:            ExchangeBuy,
		Status:          status,
		Policy:          policy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Legs is the pair of deltas applied to the source and destination accounts.
type Legs struct {
	From account.Delta
	To   account.Delta
}

// RequestLegs is the movement applied when the exchange is opened.
func (e *Exchange) RequestLegs() Legs {
	if e.Policy == PolicyEscrow {
		return Legs{
			From: account.Escrow(e.Amount),
			To:   account.Hold(e.ExchangedAmount),
		}
	}
	return Legs{
		From: account.Debit(e.Amount),
		To:   account.Credit(e.ExchangedAmount),
	}
}

// ResolveLegs is the movement that closes the exchange. ok is false when the
// exchange is not in a state the decision can act on.
func (e *Exchange) ResolveLegs(d Decision) (legs Legs, target ExchangeStatus, ok bool) {
	switch {
	case e.Status == ExchangePending && d == Approve:
		return Legs{
			From: account.Release(e.Amount),
			To:   account.Finalize(e.ExchangedAmount),
		}, ExchangeApproved, true
	case e.Status == ExchangePending && d == Reject:
		return Legs{
			From: account.Refund(e.Amount),
			To:   account.Release(e.ExchangedAmount),
		}, ExchangeRejected, true
	case e.Status == ExchangeApproved && e.Policy == PolicyImmediate && d == Reject:
		return Legs{
			From: account.Credit(e.Amount),
			To:   account.Debit(e.ExchangedAmount),
		}, ExchangeRejected, true
	default:
		return Legs{}, e.Status, false
	}
}
