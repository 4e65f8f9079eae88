package customer_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/brokerage/pkg/dto"
	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileAndAccounts(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	ta.Fund(customerID, "BTC", "0.5")

	resp := ta.Request(http.MethodGet, "/customer/me", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.CustomerRead
	testutils.Decode(t, resp, &me)
	assert.Equal(t, customerID, me.ID)
	assert.False(t, me.HasWithdrawPassword)

	resp = ta.Request(http.MethodGet, "/customer/accounts", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var accounts []dto.AccountRead
	testutils.Decode(t, resp, &accounts)
	require.Len(t, accounts, 2)
	currencies := []string{accounts[0].Currency, accounts[1].Currency}
	assert.ElementsMatch(t, []string{"USDT", "BTC"}, currencies)
}

func TestProfile_RequiresToken(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Request(http.MethodGet, "/customer/me", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ta.Request(http.MethodGet, "/customer/me", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWithdrawPassword(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, _ := ta.Signup()

	var status struct {
		IsSet bool `json:"is_set"`
	}
	resp := ta.Request(http.MethodGet, "/customer/withdraw-password", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutils.Decode(t, resp, &status)
	assert.False(t, status.IsSet)

	resp = ta.Request(http.MethodPost, "/customer/withdraw-password/check", `{"password":"fund-pass"}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.Request(http.MethodPost, "/customer/withdraw-password", `{"password":"fund-pass"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = ta.Request(http.MethodPost, "/customer/withdraw-password", `{"password":"other-pass"}`, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ta.Request(http.MethodGet, "/customer/withdraw-password", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutils.Decode(t, resp, &status)
	assert.True(t, status.IsSet)

	resp = ta.Request(http.MethodPost, "/customer/withdraw-password/check", `{"password":"fund-pass"}`, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = ta.Request(http.MethodPost, "/customer/withdraw-password/check", `{"password":"nope"}`, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, _ := ta.Signup()

	resp := ta.Request(http.MethodPut, "/customer/password",
		`{"kind":"login","current_password":"wrong-pass","new_password":"new-password"}`, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ta.Request(http.MethodPut, "/customer/password",
		`{"kind":"pin","current_password":"password123","new_password":"new-password"}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.Request(http.MethodPut, "/customer/password",
		`{"kind":"login","current_password":"password123","new_password":"new-password"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.Request(http.MethodPut, "/customer/password",
		`{"kind":"fund","new_password":"fund-pass"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status struct {
		IsSet bool `json:"is_set"`
	}
	resp = ta.Request(http.MethodGet, "/customer/withdraw-password", "", token)
	testutils.Decode(t, resp, &status)
	assert.True(t, status.IsSet)
}
