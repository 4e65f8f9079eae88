package account

import (
	"github.com/shopspring/decimal"
)

// Delta is one atomic change to an account's two counters.
//
// The store applies it as a single guarded UPDATE: both counters move
// together or not at all, neither may end below zero, and when MinBalance
// is set the current balance must be at least MinBalance before the change.
type Delta struct {
	Balance    decimal.Decimal
	InReview   decimal.Decimal
	MinBalance decimal.Decimal
}

// IsZero reports whether applying d would change nothing.
func (d Delta) IsZero() bool {
	return d.Balance.IsZero() && d.InReview.IsZero()
}

// Add merges two deltas on the same account. The stricter MinBalance wins.
func (d Delta) Add(other Delta) Delta {
	minBalance := d.MinBalance
	if other.MinBalance.GreaterThan(minBalance) {
		minBalance = other.MinBalance
	}
	return Delta{
		Balance:    d.Balance.Add(other.Balance),
		InReview:   d.InReview.Add(other.InReview),
		MinBalance: minBalance,
	}
}

// Credit increases the available balance.
func Credit(amount decimal.Decimal) Delta {
	return Delta{Balance: amount}
}

// Debit decreases the available balance.
func Debit(amount decimal.Decimal) Delta {
	return Delta{Balance: amount.Neg()}
}

// Escrow moves amount from the available balance into review.
func Escrow(amount decimal.Decimal) Delta {
	return Delta{Balance: amount.Neg(), InReview: amount}
}

// Hold adds amount to review without touching the balance.
func Hold(amount decimal.Decimal) Delta {
	return Delta{InReview: amount}
}

// Release drops amount from review without crediting it anywhere.
func Release(amount decimal.Decimal) Delta {
	return Delta{InReview: amount.Neg()}
}

// Finalize moves amount from review into the available balance.
func Finalize(amount decimal.Decimal) Delta {
	return Delta{Balance: amount, InReview: amount.Neg()}
}

// Refund returns escrowed funds to the available balance.
func Refund(amount decimal.Decimal) Delta {
	return Finalize(amount)
}
