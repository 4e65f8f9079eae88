// Package dto holds the read models the HTTP API and the CLI render.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is one currency account with its review hold.
type AccountRead struct {
	ID        uuid.UUID       `json:"id"`
	AccountNo string          `json:"account_no"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	InReview  decimal.Decimal `json:"inreview"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// CustomerRead never carries password hashes.
type CustomerRead struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	HasWithdrawPassword bool      `json:"has_withdraw_password"`
	CreatedAt           time.Time `json:"created_at"`
}

// NotificationRead is an admin inbox entry.
type NotificationRead struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id,omitempty"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
