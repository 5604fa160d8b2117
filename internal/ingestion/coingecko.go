// Package ingestion retrieves the market snapshot from the CoinGecko API.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/cryptoreport/config"
	"github.com/guttosm/cryptoreport/internal/domain/errs"
	"github.com/guttosm/cryptoreport/internal/domain/models"
	"github.com/guttosm/cryptoreport/internal/logger"
)

const (
	apiKeyHeader = "x-cg-demo-api-key"
	maxErrorBody = 512
)

// Client fetches the market ranking from a CoinGecko-compatible /coins/markets endpoint.
type Client struct {
	cfg  config.SourceConfig
	http *http.Client
}

// NewClient builds a Client from the source configuration. The request
// timeout is owned by the underlying http.Client.
//
// Parameters:
//   - cfg: endpoint, currency, paging, timeout and credentials.
//   - hc: optional HTTP client; nil builds one with cfg.Timeout.
func NewClient(cfg config.SourceConfig, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: hc}
}

// RequestURL returns the fully encoded request URL: descending market-cap
// order, one page of cfg.PerPage entries, no sparkline data.
func (c *Client) RequestURL() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}

	q := u.Query()
	q.Set("vs_currency", c.cfg.VsCurrency)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	q.Set("page", strconv.Itoa(c.cfg.Page))
	q.Set("sparkline", "false")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchMarkets performs the single GET request of a run.
//
// Behavior:
//   - Non-2xx responses return *errs.FetchError with StatusCode and a body snippet.
//   - Transport and decode failures return *errs.FetchError wrapping the cause.
//   - A 2xx response with an empty array returns an empty slice and no error;
//     emptiness is judged by the analysis stage.
func (c *Client) FetchMarkets(ctx context.Context) ([]models.MarketRecord, error) {
	endpoint, err := c.RequestURL()
	if err != nil {
		return nil, &errs.FetchError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &errs.FetchError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	}

	start := time.Now()
	logger.L().Info().Str("url", endpoint).Msg("fetch start")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.FetchError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &errs.FetchError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var records []models.MarketRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &errs.FetchError{Err: fmt.Errorf("decode response: %w", err)}
	}

	logger.L().Info().
		Int("status", resp.StatusCode).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("fetch done")

	return records, nil
}
