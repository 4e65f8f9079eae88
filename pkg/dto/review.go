package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a deposit or a withdrawal.
type TransactionRead struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Ref         string          `json:"ref"`
	Type        string          `json:"type"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	Status      string          `json:"status"`
	Address     string          `json:"address,omitempty"`
	ProofRef    string          `json:"proof_ref,omitempty"`
	Description string          `json:"description,omitempty"`
	Sent        bool            `json:"sent"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExchangeRead is a currency exchange between two accounts of one customer.
type ExchangeRead struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	FromAccountNo   string          `json:"from_account_no"`
	ToAccountNo     string          `json:"to_account_no"`
	FromCurrency    string          `json:"from_currency"`
	ToCurrency      string          `json:"to_currency"`
	Amount          decimal.Decimal `json:"amount"`
	ExchangedAmount decimal.Decimal `json:"exchanged_amount"`
	Rate            decimal.Decimal `json:"rate"`
	Status          string          `json:"status"`
	Policy          string          `json:"policy"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ResolutionRead reports an admin decision.
type ResolutionRead struct {
	Kind        string           `json:"kind"`
	ID          uuid.UUID        `json:"id"`
	Status      string           `json:"status"`
	Transaction *TransactionRead `json:"transaction,omitempty"`
	Exchange    *ExchangeRead    `json:"exchange,omitempty"`
}
