package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/money"
	"github.com/amirasaad/brokerage/pkg/provider"
	"github.com/shopspring/decimal"
)

// DefaultCryptoCompareURL is the public min-api endpoint.
const DefaultCryptoCompareURL = "https://min-api.cryptocompare.com"

// CryptoCompare prices crypto and fiat pairs through
// /data/price?fsym=FROM&tsyms=TO.
type CryptoCompare struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// cryptoCompareError is the body returned instead of prices on failure,
// e.g. {"Response":"Error","Message":"fsym param is invalid"}.
type cryptoCompareError struct {
	Response string `json:"Response"`
	Message  string `json:"Message"`
}

// NewCryptoCompare creates the provider. An empty baseURL selects the public API.
func NewCryptoCompare(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *CryptoCompare {
	if baseURL == "" {
		baseURL = DefaultCryptoCompareURL
	}
	return &CryptoCompare{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (p *CryptoCompare) Name() string { return "cryptocompare" }

// GetPrice fetches one unit of from priced in to.
func (p *CryptoCompare) GetPrice(ctx context.Context, from, to money.Code) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("fsym", from.String())
	q.Set("tsyms", to.String())
	endpoint := p.baseURL + "/data/price?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Apikey "+p.apiKey)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cryptocompare request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, fmt.Errorf("cryptocompare read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("cryptocompare: unexpected status %d", resp.StatusCode)
	}

	var apiErr cryptoCompareError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Response == "Error" {
		return decimal.Zero, fmt.Errorf("cryptocompare: %s", apiErr.Message)
	}

	var prices map[string]json.Number
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&prices); err != nil {
		return decimal.Zero, fmt.Errorf("cryptocompare decode: %w", err)
	}
	raw, ok := prices[to.String()]
	if !ok {
		return decimal.Zero, fmt.Errorf("cryptocompare: no %s price for %s", to, from)
	}
	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("cryptocompare: bad price %q: %w", raw, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("cryptocompare: non-positive price %s", price)
	}
	p.logger.Debug("price fetched", "provider", p.Name(), "from", from, "to", to, "price", price)
	return price, nil
}

var _ provider.PriceOracle = (*CryptoCompare)(nil)
