package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/shopspring/decimal"
)

// DefaultExchangeRateAPIURL is the v6 endpoint of exchangerate-api.com.
const DefaultExchangeRateAPIURL = "https://v6.exchangerate-api.com/v6"

// ExchangeRateAPI prices fiat pairs through the v6 pair endpoint.
// See: https://www.exchangerate-api.com/docs/pair-conversion-requests
type ExchangeRateAPI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// exchangeRatePairResponse, e.g. { "result": "success", "base_code": "EUR",
// "target_code": "GBP", "conversion_rate": 0.8412 }
type exchangeRatePairResponse struct {
	Result         string      `json:"result"`
	BaseCode       string      `json:"base_code"`
	TargetCode     string      `json:"target_code"`
	ConversionRate json.Number `json:"conversion_rate"`
	ErrorType      string      `json:"error-type,omitempty"`
}

func NewExchangeRateAPI(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *ExchangeRateAPI {
	if baseURL == "" {
		baseURL = DefaultExchangeRateAPIURL
	}
	return &ExchangeRateAPI{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (p *ExchangeRateAPI) Name() string { return "exchangerate-api" }

func (p *ExchangeRateAPI) GetPrice(ctx context.Context, from, to money.Code) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/%s/pair/%s/%s", p.baseURL, p.apiKey, from, to)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("exchangerate-api request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body exchangeRatePairResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("exchangerate-api decode: %w", err)
	}
	if resp.StatusCode != http.StatusOK || body.Result != "success" {
		return decimal.Zero, fmt.Errorf("exchangerate-api: status %d, error %q", resp.StatusCode, body.ErrorType)
	}
	rate, err := decimal.NewFromString(body.ConversionRate.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("exchangerate-api: bad rate %q: %w", body.ConversionRate, err)
	}
	p.logger.Debug("price fetched", "provider", p.Name(), "from", from, "to", to, "price", rate)
	return rate, nil
}

var _ provider.PriceOracle = (*ExchangeRateAPI)(nil)
