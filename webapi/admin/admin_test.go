package admin_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/dto"
	"github.com/amirasaad/brokerage/pkg/middleware"
	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTrade(t *testing.T, ta *testutils.TestApp, token string) dto.TradeOpened {
	t.Helper()
	resp := ta.Request(http.MethodPost, "/trades",
		`{"currency":"USDT","trade_type":"LONG","period":60,"quantity":"10"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var opened dto.TradeOpened
	testutils.Decode(t, resp, &opened)
	return opened
}

func TestAdminKey(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	resp, err := ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set(middleware.AdminKeyHeader, "wrong")
	resp, err = ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ta.Admin(http.MethodGet, "/admin/dashboard", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminKey_NotConfigured(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t, func(cfg *config.App) { cfg.Admin = nil })

	resp := ta.Admin(http.MethodGet, "/admin/dashboard", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestManualDecision(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")

	resp := ta.Admin(http.MethodPut, "/admin/settings/flags", `{"name":"auto_decide_win_lose","value":"false"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var flags dto.FlagsRead
	testutils.Decode(t, resp, &flags)
	assert.False(t, flags.AutoDecideWinLose)
	assert.True(t, flags.OpenToTrade)

	opened := openTrade(t, ta, token)
	path := "/admin/trades/" + opened.Trade.ID.String()

	resp = ta.Admin(http.MethodPost, path+"/decide", `{"outcome":"draw"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ta.Admin(http.MethodPost, path+"/decide", `{"outcome":"auto"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.Admin(http.MethodPost, path+"/decide", `{"outcome":"Win"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var decided dto.TradeRead
	testutils.Decode(t, resp, &decided)
	assert.Equal(t, "COMPLETED", decided.Status)
	assert.False(t, decided.ProfitApplied)

	resp = ta.Admin(http.MethodPost, path+"/decide", `{"outcome":"lose"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	settle := "/trades/" + opened.Trade.ID.String() + "/settle"
	resp = ta.Request(http.MethodPost, settle, "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settled dto.TradeSettled
	testutils.Decode(t, resp, &settled)
	assert.Equal(t, "win", settled.Result)
	require.NotNil(t, settled.Account)
	assert.Equal(t, "105", settled.Account.Balance.String())

	resp = ta.Request(http.MethodPost, settle, "", token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDecide_RefusedInAutoMode(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")
	opened := openTrade(t, ta, token)

	resp := ta.Admin(http.MethodPost, "/admin/trades/"+opened.Trade.ID.String()+"/decide", `{"outcome":"win"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFailTrade(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	accountID := ta.Fund(customerID, "USDT", "100")
	opened := openTrade(t, ta, token)

	resp := ta.Admin(http.MethodPost, "/admin/trades/"+opened.Trade.ID.String()+"/fail", `{"reason":"market halted"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var failed dto.TradeRead
	testutils.Decode(t, resp, &failed)
	assert.Equal(t, "FAILED", failed.Status)

	resp = ta.Admin(http.MethodPost, "/admin/trades/"+opened.Trade.ID.String()+"/fail", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = ta.Request(http.MethodGet, "/customer/accounts", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var accounts []dto.AccountRead
	testutils.Decode(t, resp, &accounts)
	require.Len(t, accounts, 1)
	assert.Equal(t, accountID, accounts[0].ID)
	assert.Equal(t, "100", accounts[0].Balance.String())
}

func TestSweep_NothingExpired(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")
	openTrade(t, ta, token)

	resp := ta.Admin(http.MethodPost, "/admin/trades/sweep", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Failed int `json:"failed"`
	}
	testutils.Decode(t, resp, &out)
	assert.Zero(t, out.Failed)

	resp = ta.Admin(http.MethodGet, "/admin/trades?status=PENDING&customer_id="+customerID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trades []dto.TradeRead
	testutils.Decode(t, resp, &trades)
	assert.Len(t, trades, 1)

	resp = ta.Admin(http.MethodGet, "/admin/trades?customer_id=bogus", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTradingSettings(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Admin(http.MethodPut, "/admin/settings/trading", `{"period":120,"trade_type":"SHORT","percentage":"80","win_rate":0.3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ts dto.TradingSettingRead
	testutils.Decode(t, resp, &ts)
	assert.Equal(t, 120, ts.Period)
	assert.Equal(t, "SHORT", ts.TradeType)
	assert.Equal(t, "80", ts.Percentage.String())
	assert.InDelta(t, 0.3, ts.WinRate, 1e-9)

	resp = ta.Admin(http.MethodPut, "/admin/settings/trading", `{"period":120,"trade_type":"SHORT","win_rate":1.5}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ta.Admin(http.MethodPut, "/admin/settings/trading", `{"period":120,"trade_type":"UP"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ta.Admin(http.MethodGet, "/admin/settings/trading", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []dto.TradingSettingRead
	testutils.Decode(t, resp, &all)
	assert.NotEmpty(t, all)
}

func TestFlags(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Admin(http.MethodGet, "/admin/settings/flags", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var flags dto.FlagsRead
	testutils.Decode(t, resp, &flags)
	assert.True(t, flags.OpenToTrade)
	assert.True(t, flags.AutoDecideWinLose)

	resp = ta.Admin(http.MethodPut, "/admin/settings/flags", `{"name":"house_edge","value":"true"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomerWinRate(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	_, customerID := ta.Signup()
	path := "/admin/customers/" + customerID.String() + "/winrate"

	resp := ta.Admin(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		WinRate float64 `json:"win_rate"`
	}
	testutils.Decode(t, resp, &out)
	assert.InDelta(t, 0.5, out.WinRate, 1e-9)

	resp = ta.Admin(http.MethodPut, path, `{"win_rate":0.9}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.Admin(http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutils.Decode(t, resp, &out)
	assert.InDelta(t, 0.9, out.WinRate, 1e-9)

	resp = ta.Admin(http.MethodPut, path, `{"win_rate":2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotificationsAndDashboard(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, _ := ta.Signup()

	resp := ta.Request(http.MethodPost, "/deposits", `{"currency":"USDT","amount":"40"}`, token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = ta.Admin(http.MethodGet, "/admin/notifications?unread=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox struct {
		Unread        int64                  `json:"unread"`
		Notifications []dto.NotificationRead `json:"notifications"`
	}
	testutils.Decode(t, resp, &inbox)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, int64(1), inbox.Unread)
	assert.Contains(t, inbox.Notifications[0].Message, "Deposit of 40 USDT")

	resp = ta.Admin(http.MethodGet, "/admin/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		PendingDeposits     string `json:"pending_deposits"`
		UnreadNotifications int64  `json:"unread_notifications"`
	}
	testutils.Decode(t, resp, &dash)
	assert.Equal(t, "40", dash.PendingDeposits)
	assert.Equal(t, int64(1), dash.UnreadNotifications)

	resp = ta.Admin(http.MethodPost, "/admin/notifications/"+inbox.Notifications[0].ID.String()+"/read", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ta.Admin(http.MethodGet, "/admin/notifications?unread=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inbox.Notifications = nil
	testutils.Decode(t, resp, &inbox)
	assert.Empty(t, inbox.Notifications)
	assert.Zero(t, inbox.Unread)

	resp = ta.Admin(http.MethodPost, "/admin/notifications/read", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminLists(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")

	resp := ta.Request(http.MethodPost, "/deposits", `{"currency":"USDT","amount":"5"}`, token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp = ta.Request(http.MethodPost, "/exchanges", `{"from_currency":"USDT","to_currency":"ETH","amount":"30"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ta.Admin(http.MethodGet, "/admin/transactions?status=PENDING", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var txs []dto.TransactionRead
	testutils.Decode(t, resp, &txs)
	assert.Len(t, txs, 1)

	resp = ta.Admin(http.MethodGet, "/admin/exchanges", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var exs []dto.ExchangeRead
	testutils.Decode(t, resp, &exs)
	assert.Len(t, exs, 1)
}
