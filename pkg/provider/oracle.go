// Package provider defines the contracts of external services the ledger
// depends on but does not own.
package provider

import (
	"context"

	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/shopspring/decimal"
)

// PriceOracle quotes how many units of to one unit of from is worth.
//
// Implementations are remote and unreliable. Callers must bound every call
// with a deadline and treat any error as domain.ErrOracleUnavailable.
type PriceOracle interface {
	GetPrice(ctx context.Context, from, to money.Code) (decimal.Decimal, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}
