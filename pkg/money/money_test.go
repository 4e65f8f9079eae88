package money_test

import (
	"testing"

	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    money.Code
		wantErr bool
	}{
		{"fiat", "usd", money.USD, false},
		{"crypto ticker", " usdt ", money.USDT, false},
		{"too short", "x", "", true},
		{"symbols", "US$", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseCode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, money.ErrInvalidCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := money.ParseAmount("100.25")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("100.25").Equal(d))

	_, err = money.ParseAmount("0")
	require.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.ParseAmount("-3")
	require.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.ParseAmount("ten")
	require.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.ParseAmount("0.000000001")
	require.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestValidateScale(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"1", true},
		{"0.12345678", true},
		{"0.123456780", true},
		{"0.123456789", false},
		{"-0.000000001", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := money.ValidateScale(decimal.RequireFromString(tt.in))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, money.ErrInvalidAmount)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, "0.12345679", money.Round(decimal.RequireFromString("0.123456785")).String())
	assert.Equal(t, "0.12345678", money.Round(decimal.RequireFromString("0.123456784")).String())
}

func TestPercent_NoFloatDrift(t *testing.T) {
	got := money.Percent(decimal.NewFromInt(100), decimal.NewFromInt(50))
	assert.Equal(t, "50", got.String())

	// 0.1 added ten times must be exactly 1
	sum := decimal.Zero
	for i := 0; i < 10; i++ {
		sum = sum.Add(decimal.RequireFromString("0.1"))
	}
	assert.True(t, decimal.NewFromInt(1).Equal(sum))
}
