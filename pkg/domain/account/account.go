package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = fmt.Errorf("account not found: %w", domain.ErrNotFound)

	// ErrInsufficientFunds is returned when a guarded debit cannot be covered.
	ErrInsufficientFunds = fmt.Errorf("account balance too low: %w", domain.ErrInsufficientFunds)

	// ErrAccountInactive is returned when money is moved out of a disabled account.
	ErrAccountInactive = fmt.Errorf("account is inactive: %w", domain.ErrForbidden)

	// ErrNotOwner is returned when a customer touches an account they do not own.
	ErrNotOwner = fmt.Errorf("not owner: %w", domain.ErrNotFound)
)

// Account holds one currency for one customer.
//
// Invariants:
//   - Balance and InReview are independent counters and never go negative.
//   - A customer has at most one account per currency.
//   - Balances only change through Delta applications in the ledger store.
type Account struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	AccountNo  string
	Currency   money.Code
	Balance    decimal.Decimal
	InReview   decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id         uuid.UUID
	customerID uuid.UUID
	accountNo  string
	currency   money.Code
	balance    decimal.Decimal
	inReview   decimal.Decimal
	createdAt  time.Time
}

// New creates a new Builder with a fresh ID, account number and the default currency.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		accountNo: GenerateAccountNo(),
		currency:  money.DefaultCode,
		createdAt: time.Now().UTC(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithCustomerID sets the owner. This is a mandatory field.
func (b *Builder) WithCustomerID(customerID uuid.UUID) *Builder {
	b.customerID = customerID
	return b
}

// WithCurrency sets the currency for the account being built.
func (b *Builder) WithCurrency(code money.Code) *Builder {
	b.currency = code
	return b
}

// WithAccountNo overrides the generated account number.
func (b *Builder) WithAccountNo(no string) *Builder {
	b.accountNo = no
	return b
}

// WithBalance sets the opening balance. Only used for hydration and test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithInReview sets the opening escrow. Only used for hydration and test setup.
func (b *Builder) WithInReview(inReview decimal.Decimal) *Builder {
	b.inReview = inReview
	return b
}

// Build validates the invariants and returns the account.
func (b *Builder) Build() (*Account, error) {
	if b.customerID == uuid.Nil {
		return nil, domain.Validationf("account needs a customer")
	}
	if !b.currency.IsValid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, money.ErrInvalidCurrency)
	}
	if b.balance.IsNegative() || b.inReview.IsNegative() {
		return nil, domain.Validationf("opening balances must not be negative")
	}
	return &Account{
		ID:         b.id,
		CustomerID: b.customerID,
		AccountNo:  b.accountNo,
		Currency:   b.currency,
		Balance:    b.balance,
		InReview:   b.inReview,
		IsActive:   true,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.createdAt,
	}, nil
}

// Total is the customer-visible sum of available and escrowed funds.
func (a *Account) Total() decimal.Decimal {
	return a.Balance.Add(a.InReview)
}

// GenerateAccountNo returns a millisecond timestamp followed by six random digits.
func GenerateAccountNo() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 1_000_000)
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + fmt.Sprintf("%06d", n.Int64())
}
