// Package review models money movements that sit in escrow until an admin
// resolves them: deposits, withdrawals and currency exchanges.
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

var (
	// ErrTransactionNotFound is returned for unknown deposits and withdrawals.
	ErrTransactionNotFound = fmt.Errorf("transaction not found: %w", domain.ErrNotFound)
	// ErrExchangeNotFound is returned for unknown exchanges.
	ErrExchangeNotFound = fmt.Errorf("exchange not found: %w", domain.ErrNotFound)
	// ErrAlreadyResolved is returned when the record already left the state the
	// resolution expects; another admin won the race.
	ErrAlreadyResolved = fmt.Errorf("already resolved: %w", domain.ErrConflict)
	// ErrInvalidDecision is returned for decisions other than approve or reject.
	ErrInvalidDecision = fmt.Errorf("decision must be approve or reject: %w", domain.ErrValidation)
	// ErrSameCurrency is returned when an exchange would not change currency.
	ErrSameCurrency = fmt.Errorf("cannot exchange a currency into itself: %w", domain.ErrValidation)
	// ErrNotCompleted is returned when a withdrawal is marked sent before approval.
	ErrNotCompleted = fmt.Errorf("withdrawal is not completed: %w", domain.ErrConflict)
)

// Kind distinguishes the three review workflows.
type Kind string

const (
	KindDeposit    Kind = "DEPOSIT"
	KindWithdrawal Kind = "WITHDRAWAL"
	KindExchange   Kind = "EXCHANGE"
)

// Status of a deposit or withdrawal.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Decision is the admin verdict on a pending record.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// ParseDecision accepts approve/reject and the status names admins tend to send.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "approved", "completed":
		return Approve, nil
	case "reject", "rejected", "failed":
		return Reject, nil
	default:
		return "", ErrInvalidDecision
	}
}

// Transaction is a deposit or a withdrawal.
//
// Amount is what the customer asked for. NetAmount is what actually sits in
// escrow: equal to Amount for deposits and Amount minus Fee for withdrawals.
type Transaction struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	AccountID   uuid.UUID
	Ref         string
	Type        Kind
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	NetAmount   decimal.Decimal
	Currency    money.Code
	Status      Status
	Address     string
	ProofRef    string
	Description string
	Sent        bool
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDeposit returns a PENDING deposit for the full amount.
func NewDeposit(acc *account.Account, amount decimal.Decimal, proofRef, description string) (*Transaction, error) {
	if err := money.ValidateAmount(amount); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	tx := newTransaction(acc, KindDeposit, amount)
	tx.NetAmount = amount
	tx.ProofRef = proofRef
	tx.Description = description
	return tx, nil
}

// NewWithdrawal returns a PENDING withdrawal with the fee deducted up front.
func NewWithdrawal(acc *account.Account, amount, feePercentage decimal.Decimal, address string) (*Transaction, error) {
	if err := money.ValidateAmount(amount); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if strings.TrimSpace(address) == "" {
		return nil, domain.Validationf("withdrawal address is required")
	}
	tx := newTransaction(acc, KindWithdrawal, amount)
	tx.Fee = Fee(amount, feePercentage)
	tx.NetAmount = amount.Sub(tx.Fee)
	tx.Address = address
	return tx, nil
}

func newTransaction(acc *account.Account, kind Kind, amount decimal.Decimal) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:         uuid.New(),
		CustomerID: acc.CustomerID,
		AccountID:  acc.ID,
		Ref:        account.GenerateAccountNo(),
		Type:       kind,
		Amount:     amount,
		Currency:   acc.Currency,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Fee is amount × percentage / 100, rounded to the stored scale.
func Fee(amount, percentage decimal.Decimal) decimal.Decimal {
	return money.Round(money.Percent(amount, percentage))
}

// RequestDelta is the escrow applied when the transaction is opened.
func (t *Transaction) RequestDelta() account.Delta {
	if t.Type == KindWithdrawal {
		d := account.Escrow(t.NetAmount)
		// the customer must hold the gross amount even though only the net leaves
		d.MinBalance = t.Amount
		return d
	}
	return account.Hold(t.NetAmount)
}

// ResolveDelta is the change that closes the escrow for the given decision.
func (t *Transaction) ResolveDelta(d Decision) account.Delta {
	switch {
	case t.Type == KindDeposit && d == Approve:
		return account.Finalize(t.NetAmount)
	case t.Type == KindDeposit && d == Reject:
		return account.Release(t.NetAmount)
	case t.Type == KindWithdrawal && d == Approve:
		return account.Release(t.NetAmount)
	default:
		return account.Refund(t.NetAmount)
	}
}

// TargetStatus maps a decision onto the final transaction status.
func (d Decision) TargetStatus() Status {
	if d == Approve {
		return StatusCompleted
	}
	return StatusFailed
}
