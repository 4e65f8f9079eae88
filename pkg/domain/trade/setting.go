package trade

import (
	"fmt"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultWinRate applies to freshly materialized settings and to customers
// without a stored override.
const DefaultWinRate = 0.5

// DefaultPercentage is the payout for periods missing from DefaultPayouts.
var DefaultPercentage = decimal.NewFromInt(40)

// DefaultPayouts maps a period in seconds to its payout percentage.
var DefaultPayouts = map[int]decimal.Decimal{
	30:  decimal.NewFromInt(40),
	60:  decimal.NewFromInt(50),
	120: decimal.NewFromInt(70),
	300: decimal.NewFromInt(100),
}

var (
	// ErrInvalidWinRate is returned for probabilities outside [0, 1].
	ErrInvalidWinRate = fmt.Errorf("win rate must be between 0 and 1: %w", domain.ErrValidation)
	// ErrInvalidPercentage is returned for negative payouts.
	ErrInvalidPercentage = fmt.Errorf("payout percentage must not be negative: %w", domain.ErrValidation)
)

// Setting is the house configuration for one (period, type) pair.
type Setting struct {
	ID         uuid.UUID
	Seconds    int
	Type       Type
	Percentage decimal.Decimal
	WinRate    float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultSetting is what the store materializes the first time a pair is requested.
func DefaultSetting(period int, tradeType Type) *Setting {
	pct, ok := DefaultPayouts[period]
	if !ok {
		pct = DefaultPercentage
	}
	now := time.Now().UTC()
	return &Setting{
		ID:         uuid.New(),
		Seconds:    period,
		Type:       tradeType,
		Percentage: pct,
		WinRate:    DefaultWinRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CustomerWinRate is the per-customer probability gate.
type CustomerWinRate struct {
	CustomerID uuid.UUID
	WinRate    float64
	UpdatedAt  time.Time
}

// ValidateWinRate rejects probabilities outside [0, 1].
func ValidateWinRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return ErrInvalidWinRate
	}
	return nil
}
