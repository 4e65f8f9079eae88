package webapi_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/amirasaad/brokerage/docs"
	infraeventbus "github.com/amirasaad/brokerage/infra/eventbus"
	inframetrics "github.com/amirasaad/brokerage/infra/metrics"
	"github.com/amirasaad/brokerage/infra/provider"
	infrarepo "github.com/amirasaad/brokerage/infra/repository"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	pkgtestutils "github.com/amirasaad/brokerage/pkg/testutils"
	"github.com/amirasaad/brokerage/webapi"
	"github.com/amirasaad/brokerage/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Request(fiber.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ta.Request(fiber.MethodGet, "/does-not-exist", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}

func TestSwaggerDoc(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Request(fiber.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Brokerage API")
	assert.Contains(t, string(body), "/trades/{id}/settle")
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t, func(cfg *config.App) {
		cfg.RateLimit = &config.RateLimit{MaxRequests: 5, Window: time.Second}
	})

	for i := 0; i < 6; i++ {
		resp := ta.Request(fiber.MethodGet, "/", "", "")
		if i < 5 {
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, "Expected OK for request %d", i+1)
		} else {
			assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode, "Expected Too Many Requests for request %d", i+1)
		}
	}

	// other clients keep their own budget
	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	resp, err := ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	time.Sleep(1100 * time.Millisecond)
	resp = ta.Request(fiber.MethodGet, "/", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "Expected OK after rate limit reset")
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()
	collector := inframetrics.NewPrometheusCollector("brokerage")
	require.NoError(t, collector.Register(registry))

	cfg := testutils.Config()
	a, err := app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(pkgtestutils.NewSQLiteDB(t)),
		Oracle:   provider.NewFake(),
		EventBus: infraeventbus.NewWithMemory(logger),
		Metrics:  collector,
		Gatherer: registry,
		Logger:   logger,
	}, cfg)
	require.NoError(t, err)
	collector.RecordTradeCreated("USDT")

	resp, err := webapi.SetupApp(a).Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "brokerage_trades_created_total")
}

func TestMetricsEndpoint_DisabledWithoutGatherer(t *testing.T) {
	t.Parallel()
	ta := testutils.New(t)

	resp := ta.Request(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
