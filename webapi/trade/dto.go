package trade

import "github.com/shopspring/decimal"

// CreateTradeInput opens a binary trade.
type CreateTradeInput struct {
	Currency  string          `json:"currency" validate:"required,min=2,max=10"`
	TradeType string          `json:"trade_type" validate:"required"`
	Period    int             `json:"period" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"quantity"`
}
