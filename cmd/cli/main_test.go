package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/amirasaad/brokerage/pkg/dto"
	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, ta *testutils.TestApp, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := dispatch(context.Background(), ta.App, args, &out)
	return out.String(), err
}

func TestDispatch_Usage(t *testing.T) {
	ta := testutils.New(t)

	_, err := run(t, ta)
	assert.ErrorIs(t, err, errUsage)

	_, err = run(t, ta, "launch")
	assert.ErrorIs(t, err, errUsage)

	_, err = run(t, ta, "decide", uuid.NewString())
	assert.ErrorIs(t, err, errUsage)

	_, err = run(t, ta, "fail", "not-a-uuid")
	assert.Error(t, err)
}

func TestDispatch_Flags(t *testing.T) {
	ta := testutils.New(t)

	out, err := run(t, ta, "flags")
	require.NoError(t, err)
	assert.Regexp(t, `open_to_trade\s+true`, out)
	assert.Regexp(t, `auto_decide_win_lose\s+true`, out)

	out, err = run(t, ta, "flags", "open_to_trade", "false")
	require.NoError(t, err)
	assert.Regexp(t, `open_to_trade\s+false`, out)

	_, err = run(t, ta, "flags", "bogus", "true")
	assert.Error(t, err)
}

func TestDispatch_DecideAndFail(t *testing.T) {
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")

	open := func() dto.TradeOpened {
		resp := ta.Request(http.MethodPost, "/trades",
			`{"currency":"USDT","trade_type":"LONG","period":60,"quantity":"10"}`, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var opened dto.TradeOpened
		testutils.Decode(t, resp, &opened)
		return opened
	}

	first := open()
	_, err := run(t, ta, "decide", first.Trade.ID.String(), "win")
	assert.Error(t, err, "manual decisions need auto mode off")

	_, err = run(t, ta, "flags", "auto_decide_win_lose", "false")
	require.NoError(t, err)
	out, err := run(t, ta, "decide", first.Trade.ID.String(), "win")
	require.NoError(t, err)
	assert.Contains(t, out, "decided: win, profit 5")

	second := open()
	out, err = run(t, ta, "fail", second.Trade.ID.String(), "market", "halted")
	require.NoError(t, err)
	assert.Contains(t, out, "Trade "+second.Trade.ID.String()+" failed")

	_, err = run(t, ta, "fail", second.Trade.ID.String())
	assert.Error(t, err)
}

func TestDispatch_ResolveDeposit(t *testing.T) {
	ta := testutils.New(t)
	token, _ := ta.Signup()

	resp := ta.Request(http.MethodPost, "/deposits", `{"currency":"USDT","amount":"25"}`, token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var tx dto.TransactionRead
	testutils.Decode(t, resp, &tx)

	out, err := run(t, ta, "resolve", "deposit", tx.ID.String(), "approve")
	require.NoError(t, err)
	assert.Contains(t, out, "DEPOSIT "+tx.ID.String()+" is now COMPLETED")

	_, err = run(t, ta, "resolve", "deposit", tx.ID.String(), "maybe")
	assert.Error(t, err)

	out, err = run(t, ta, "dashboard")
	require.NoError(t, err)
	assert.Regexp(t, `deposits\s+25`, out)
}

func TestDispatch_WinRate(t *testing.T) {
	ta := testutils.New(t)
	_, customerID := ta.Signup()

	out, err := run(t, ta, "winrate", customerID.String())
	require.NoError(t, err)
	assert.Regexp(t, `win_rate\s+0.5`, out)

	out, err = run(t, ta, "winrate", customerID.String(), "0.8")
	require.NoError(t, err)
	assert.Regexp(t, `win_rate\s+0.8`, out)

	_, err = run(t, ta, "winrate", customerID.String(), "high")
	assert.Error(t, err)
}

func TestDispatch_Signup(t *testing.T) {
	ta := testutils.New(t)
	orig := readInput
	t.Cleanup(func() { readInput = orig })
	readInput = func(io.Writer, string) (string, error) { return testutils.Password, nil }

	out, err := run(t, ta, "signup", "dave@example.com", "Dave")
	require.NoError(t, err)
	assert.Contains(t, out, "with USDT account")

	resp := ta.Request(http.MethodPost, "/auth/login",
		`{"email":"dave@example.com","password":"`+testutils.Password+`"}`, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
