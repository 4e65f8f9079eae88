package account_test

import (
	"testing"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/account"
	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		customerID := uuid.New()
		a, err := account.New().WithCustomerID(customerID).Build()
		require.NoError(t, err)
		assert.Equal(t, customerID, a.CustomerID)
		assert.Equal(t, money.DefaultCode, a.Currency)
		assert.True(t, a.Balance.IsZero())
		assert.True(t, a.InReview.IsZero())
		assert.True(t, a.IsActive)
		assert.Len(t, a.AccountNo, 19)
	})

	t.Run("missing customer", func(t *testing.T) {
		t.Parallel()
		_, err := account.New().Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid currency", func(t *testing.T) {
		t.Parallel()
		_, err := account.New().WithCustomerID(uuid.New()).WithCurrency("us$").Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative opening balance", func(t *testing.T) {
		t.Parallel()
		_, err := account.New().
			WithCustomerID(uuid.New()).
			WithBalance(decimal.NewFromInt(-1)).
			Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestDelta(t *testing.T) {
	t.Parallel()
	amt := decimal.NewFromInt(100)

	escrow := account.Escrow(amt)
	assert.Equal(t, "-100", escrow.Balance.String())
	assert.Equal(t, "100", escrow.InReview.String())

	// escrow followed by a refund is a no-op
	assert.True(t, escrow.Add(account.Refund(amt)).IsZero())

	merged := account.Delta{MinBalance: decimal.NewFromInt(5)}.
		Add(account.Delta{MinBalance: decimal.NewFromInt(9)})
	assert.Equal(t, "9", merged.MinBalance.String())

	assert.True(t, account.Hold(amt).Add(account.Release(amt)).IsZero())
	assert.Equal(t, "-100", account.Debit(amt).Balance.String())
	assert.Equal(t, "100", account.Credit(amt).Balance.String())
}
