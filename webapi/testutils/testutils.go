// Package testutils builds a fully wired fiber app for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/brokerage/infra/eventbus"
	"github.com/amirasaad/brokerage/infra/provider"
	infrarepo "github.com/amirasaad/brokerage/infra/repository"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/middleware"
	"github.com/amirasaad/brokerage/pkg/money"
	pkgtestutils "github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/amirasaad/brokerage/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	AdminKey  = "test-admin-key"
	JwtSecret = "test-secret"
	Password  = "password123"
)

// TestApp is a webapi instance over a private database.
type TestApp struct {
	t      *testing.T
	App    *app.App
	Fiber  *fiber.App
	Uow    *infrarepo.UoW
	DB     *gorm.DB
	Oracle *provider.Fake
}

// Config returns the configuration the test apps run with. Rate limiting is
// off so tests can hammer the API.
func Config() *config.App {
	return &config.App{
		Env:     "test",
		Auth:    &config.Auth{Jwt: &config.Jwt{Secret: JwtSecret, Expiry: time.Hour}},
		Admin:   &config.Admin{APIKey: AdminKey},
		Trading: &config.Trading{OpenToTrade: true, AutoDecideWinLose: true, SweepGrace: time.Minute},
		Review:  &config.Review{ExchangePolicy: "immediate"},
		Fee:     &config.Fee{WithdrawalFeePercent: decimal.NewFromInt(1)},
	}
}

// New wires an app over a fresh sqlite database. opts may tweak the config
// before the services are built.
func New(t *testing.T, opts ...func(*config.App)) *TestApp {
	t.Helper()
	return NewWithDB(t, pkgtestutils.NewSQLiteDB(t), opts...)
}

// NewWithDB wires an app over db, which must already be migrated.
func NewWithDB(t *testing.T, db *gorm.DB, opts ...func(*config.App)) *TestApp {
	t.Helper()
	cfg := Config()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	oracle := provider.NewFake()
	uow := infrarepo.NewUoW(db)
	deps := &app.Deps{
		Uow:      uow,
		Oracle:   oracle,
		EventBus: infraeventbus.NewWithMemory(logger),
		Logger:   logger,
	}
	a, err := app.New(deps, cfg)
	require.NoError(t, err)
	return &TestApp{
		t:      t,
		App:    a,
		Fiber:  webapi.SetupApp(a),
		Uow:    uow,
		DB:     db,
		Oracle: oracle,
	}
}

// Request sends a request through the fiber app. A non-empty token is sent
// as a bearer token; admin requests carry the admin key.
func (a *TestApp) Request(method, path, body, token string) *http.Response {
	a.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// Admin sends a request with the admin key.
func (a *TestApp) Admin(method, path, body string) *http.Response {
	a.t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(middleware.AdminKeyHeader, AdminKey)
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// Signup registers a random customer through the API and returns the token
// and the customer id.
func (a *TestApp) Signup() (string, uuid.UUID) {
	a.t.Helper()
	email := fmt.Sprintf("test_%s@example.com", uuid.NewString()[:8])
	resp := a.Request(http.MethodPost, "/auth/signup",
		fmt.Sprintf(`{"email":%q,"name":"Test","password":%q}`, email, Password), "")
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Customer struct {
			ID uuid.UUID `json:"id"`
		} `json:"customer"`
		Token string `json:"token"`
	}
	Decode(a.t, resp, &data)
	require.NotEmpty(a.t, data.Token)
	return data.Token, data.Customer.ID
}

// Fund credits the customer's account in currency directly in the ledger.
func (a *TestApp) Fund(customerID uuid.UUID, currency, amount string) uuid.UUID {
	a.t.Helper()
	code, err := money.ParseCode(currency)
	require.NoError(a.t, err)
	return pkgtestutils.SeedAccount(a.t, a.Uow, customerID, code, amount).ID
}

// Decode reads the data field of the success envelope into out.
func Decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

// Problem reads a problem+json body.
func Problem(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var pd map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
