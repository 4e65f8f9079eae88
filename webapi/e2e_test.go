//go:build integration

package webapi_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/amirasaad/brokerage/pkg/dto"
	pkgtestutils "github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// PostgresSuite runs the customer and admin flows against a real Postgres
// with the SQL migrations applied.
type PostgresSuite struct {
	suite.Suite
	db *gorm.DB
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.db = pkgtestutils.NewPostgresDB(s.T())
}

func (s *PostgresSuite) app() *testutils.TestApp {
	return testutils.NewWithDB(s.T(), s.db)
}

func (s *PostgresSuite) balance(ta *testutils.TestApp, token, currency string) decimal.Decimal {
	resp := ta.Request(http.MethodGet, "/customer/accounts", "", token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var accounts []dto.AccountRead
	testutils.Decode(s.T(), resp, &accounts)
	for _, acc := range accounts {
		if acc.Currency == currency {
			return acc.Balance
		}
	}
	s.FailNow("no account", currency)
	return decimal.Zero
}

func (s *PostgresSuite) TestTradeLifecycle() {
	ta := s.app()
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")

	resp := ta.Request(http.MethodPost, "/trades",
		`{"currency":"USDT","trade_type":"LONG","period":60,"quantity":"10"}`, token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var opened dto.TradeOpened
	testutils.Decode(s.T(), resp, &opened)

	resp = ta.Admin(http.MethodPost, "/admin/trades/"+opened.Trade.ID.String()+"/settle", `{"outcome":"win"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.True(decimal.NewFromInt(105).Equal(s.balance(ta, token, "USDT")))
}

func (s *PostgresSuite) TestConcurrentSettleAppliesOnce() {
	ta := s.app()
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")

	resp := ta.Request(http.MethodPost, "/trades",
		`{"currency":"USDT","trade_type":"LONG","period":60,"quantity":"10"}`, token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var opened dto.TradeOpened
	testutils.Decode(s.T(), resp, &opened)

	const workers = 8
	statuses := make(chan int, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := ta.Admin(http.MethodPost, "/admin/trades/"+opened.Trade.ID.String()+"/settle", `{"outcome":"win"}`)
			_ = r.Body.Close()
			statuses <- r.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	ok := 0
	for code := range statuses {
		if code == http.StatusOK {
			ok++
		} else {
			s.Equal(http.StatusConflict, code)
		}
	}
	s.Equal(1, ok)
	s.True(decimal.NewFromInt(105).Equal(s.balance(ta, token, "USDT")))
}

func (s *PostgresSuite) TestWithdrawalReview() {
	ta := s.app()
	token, customerID := ta.Signup()
	accountID := ta.Fund(customerID, "USDT", "100")

	resp := ta.Request(http.MethodPost, "/customer/withdraw-password", `{"password":"secret-1"}`, token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = ta.Request(http.MethodPost, "/withdrawals",
		`{"currency":"USDT","amount":"50","address":"TXaddr","withdraw_password":"secret-1"}`, token)
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)
	var tx dto.TransactionRead
	testutils.Decode(s.T(), resp, &tx)

	resp = ta.Admin(http.MethodPost, "/admin/reviews/withdrawal/"+tx.ID.String()+"/resolve", `{"decision":"reject"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	balance, inReview := pkgtestutils.Balance(s.T(), ta.Uow, accountID)
	s.True(decimal.NewFromInt(100).Equal(decimal.RequireFromString(balance)))
	s.True(decimal.RequireFromString(inReview).IsZero())
}

func (s *PostgresSuite) TestExchangeAndDashboard() {
	ta := s.app()
	token, customerID := ta.Signup()
	ta.Fund(customerID, "USDT", "100")

	resp := ta.Request(http.MethodPost, "/exchanges",
		fmt.Sprintf(`{"from_currency":"USDT","to_currency":"BTC","amount":%q}`, "60"), token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.True(decimal.NewFromInt(40).Equal(s.balance(ta, token, "USDT")))

	resp = ta.Admin(http.MethodGet, "/admin/dashboard", "")
	s.Equal(http.StatusOK, resp.StatusCode)
}
