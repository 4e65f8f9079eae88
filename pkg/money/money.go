// Package money provides currency codes and exact decimal helpers for ledger amounts.
//
// Invariants:
//   - Amounts are shopspring decimals; binary floats never touch a balance.
//   - Currency codes are upper-case alphanumerics of 2 to 10 characters
//     (ISO 4217 codes and crypto tickers such as USDT).
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed, is not
	// positive or carries more than Scale decimal places.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned for malformed currency codes.
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// Code represents a currency code (e.g., "USD", "BTC").
type Code string

// Common currency codes
const (
	USD  Code = "USD"  // US Dollar
	EUR  Code = "EUR"  // Euro
	USDT Code = "USDT" // Tether
	USDC Code = "USDC" // USD Coin
	BTC  Code = "BTC"  // Bitcoin
	ETH  Code = "ETH"  // Ether
)

// DefaultCode is the currency of the account opened at signup.
var DefaultCode = USDT

// Scale is the number of decimal places stored for every amount.
const Scale = 8

// ParseCode normalizes s to upper case and validates it.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

// IsValid checks if the currency code is well formed.
func (c Code) IsValid() bool {
	if len(c) < 2 || len(c) > 10 {
		return false
	}
	for _, r := range c {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// Equal compares codes case-insensitively.
func (c Code) Equal(other Code) bool {
	return strings.EqualFold(string(c), string(other))
}

// ParseAmount parses a decimal string and requires it to be strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount returns ErrInvalidAmount unless d > 0 and d fits the
// stored scale.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidAmount, d.String())
	}
	return ValidateScale(d)
}

// ValidateScale returns ErrInvalidAmount when d has more than Scale
// significant decimal places. Trailing zeros do not count.
func ValidateScale(d decimal.Decimal) error {
	if !d.Equal(d.Truncate(Scale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, d.String(), Scale)
	}
	return nil
}

// Percent returns amount × pct / 100.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(decimal.NewFromInt(100))
}

// Round rounds an amount half away from zero to the stored scale.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}
