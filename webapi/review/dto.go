package review

import "github.com/shopspring/decimal"

// DepositInput asks for a deposit to be credited after review.
type DepositInput struct {
	Currency    string          `json:"currency" validate:"required,min=2,max=10"`
	Amount      decimal.Decimal `json:"amount"`
	ProofRef    string          `json:"proof_ref" validate:"max=255"`
	Description string          `json:"description" validate:"max=500"`
}

// WithdrawalInput asks for funds to be paid out to an address.
type WithdrawalInput struct {
	Currency         string          `json:"currency" validate:"required,min=2,max=10"`
	Amount           decimal.Decimal `json:"amount"`
	Address          string          `json:"address" validate:"required,max=255"`
	WithdrawPassword string          `json:"withdraw_password" validate:"required"`
}

// ExchangeInput converts funds between two of the customer's currencies.
type ExchangeInput struct {
	FromCurrency string          `json:"from_currency" validate:"required,min=2,max=10"`
	ToCurrency   string          `json:"to_currency" validate:"required,min=2,max=10"`
	Amount       decimal.Decimal `json:"amount"`
}
