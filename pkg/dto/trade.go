package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeRead is a trade as the customer and the back office see it.
type TradeRead struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	AccountID     uuid.UUID       `json:"account_id"`
	Currency      string          `json:"currency"`
	TradeType     string          `json:"trade_type"`
	Period        int             `json:"period"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
	IsSuccess     *bool           `json:"is_success"`
	Result        string          `json:"result,omitempty"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitApplied bool            `json:"profit_applied"`
	SettledAt     *time.Time      `json:"settled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TradeOpened is returned when a trade is created.
type TradeOpened struct {
	Trade      TradeRead       `json:"trade"`
	Percentage decimal.Decimal `json:"percentage"`
	Sequence   []int           `json:"sequence"`
}

// TradeSettled is returned by a settle call.
type TradeSettled struct {
	Trade   TradeRead       `json:"trade"`
	Result  string          `json:"result"`
	Profit  decimal.Decimal `json:"profit"`
	Account *AccountRead    `json:"account,omitempty"`
}

// TradingSettingRead is the payout and win rate of one (period, type) pair.
type TradingSettingRead struct {
	Period     int             `json:"period"`
	TradeType  string          `json:"trade_type"`
	Percentage decimal.Decimal `json:"percentage"`
	WinRate    float64         `json:"win_rate"`
}

// FlagsRead is the general settings snapshot.
type FlagsRead struct {
	OpenToTrade       bool `json:"open_to_trade"`
	AutoDecideWinLose bool `json:"auto_decide_win_lose"`
}
