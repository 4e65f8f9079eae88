package customer_test

import (
	"testing"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/domain/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	c, err := customer.New(" Jane@Example.com ", "Jane", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.True(t, c.CheckPassword(customer.LoginPassword, "secret1"))
	assert.False(t, c.HasWithdrawPassword())

	_, err = customer.New("not-an-email", "x", "secret1")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = customer.New("a@b.co", "x", "123")
	assert.ErrorIs(t, err, customer.ErrWeakPassword)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	c, err := customer.New("a@b.co", "A", "secret1")
	require.NoError(t, err)

	t.Run("login requires current", func(t *testing.T) {
		_, err := c.Resolve(customer.PasswordChange{Kind: customer.LoginPassword, Current: "wrong", New: "secret2"})
		assert.ErrorIs(t, err, customer.ErrPasswordMismatch)

		upd, err := c.Resolve(customer.PasswordChange{Kind: customer.LoginPassword, Current: "secret1", New: "secret2"})
		require.NoError(t, err)
		assert.Equal(t, customer.LoginPassword, upd.Kind)
		assert.True(t, customer.CheckPasswordHash("secret2", upd.Hash))
	})

	t.Run("first withdraw password needs no current", func(t *testing.T) {
		upd, err := c.Resolve(customer.PasswordChange{Kind: customer.WithdrawPassword, New: "fund-pass"})
		require.NoError(t, err)
		assert.Equal(t, "withdraw_password_hash", upd.Kind.Column())

		withFund := *c
		withFund.WithdrawPasswordHash = upd.Hash
		_, err = withFund.Resolve(customer.PasswordChange{Kind: customer.WithdrawPassword, New: "other-pass"})
		assert.ErrorIs(t, err, customer.ErrPasswordMismatch)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := c.Resolve(customer.PasswordChange{New: "secret3"})
		assert.ErrorIs(t, err, customer.ErrInvalidPasswordKind)
	})
}

func TestParsePasswordKind(t *testing.T) {
	t.Parallel()
	k, err := customer.ParsePasswordKind("fund")
	require.NoError(t, err)
	assert.Equal(t, customer.WithdrawPassword, k)
	k, err = customer.ParsePasswordKind("LOGIN")
	require.NoError(t, err)
	assert.Equal(t, customer.LoginPassword, k)
	_, err = customer.ParsePasswordKind("pin")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
