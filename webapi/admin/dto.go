package admin

import "github.com/shopspring/decimal"

// DecideInput picks the result of a PENDING trade: win or lose.
type DecideInput struct {
	Outcome string `json:"outcome" validate:"required"`
}

// FailInput moves a PENDING trade to FAILED.
type FailInput struct {
	Reason string `json:"reason" validate:"max=255"`
}

// TradingSettingInput updates the payout or the win rate of one pair.
type TradingSettingInput struct {
	Period     int              `json:"period" validate:"required,gt=0"`
	TradeType  string           `json:"trade_type" validate:"required"`
	Percentage *decimal.Decimal `json:"percentage"`
	WinRate    *float64         `json:"win_rate" validate:"omitempty,gte=0,lte=1"`
}

// FlagInput sets a general flag such as open_to_trade.
type FlagInput struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// WinRateInput overrides the win rate of one customer.
type WinRateInput struct {
	WinRate float64 `json:"win_rate" validate:"gte=0,lte=1"`
}

// ResolveInput is the admin decision on a pending record.
type ResolveInput struct {
	Decision string `json:"decision" validate:"required"`
}
