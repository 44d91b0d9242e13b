package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/moatlabs/sage/internal/domain"
)

const finnhubBaseURL = "https://finnhub.io/api/v1"

type FinnhubClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	return &FinnhubClient{
		apiKey:     apiKey,
		baseURL:    finnhubBaseURL,
		httpClient: &http.Client{},
	}
}

// SetBaseURL overrides the API endpoint. Intended for tests.
func (c *FinnhubClient) SetBaseURL(u string) {
	c.baseURL = u
}

type finnhubQuote struct {
	Current       float64 `json:"c"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	PreviousClose float64 `json:"pc"`
}

type finnhubMetrics struct {
	Metric struct {
		ROE           *float64 `json:"roeTTM"`
		DebtToEquity  *float64 `json:"totalDebt/totalEquityQuarterly"`
		ProfitMargin  *float64 `json:"netProfitMarginTTM"`
		RevenueGrowth *float64 `json:"revenueGrowthTTMYoy"`
		PERatio       *float64 `json:"peTTM"`
	} `json:"metric"`
}

func (c *FinnhubClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create finnhub request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("finnhub request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read finnhub response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finnhub API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal finnhub response: %w", err)
	}
	return nil
}

func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(symbol)

	var q finnhubQuote
	params := url.Values{"symbol": {symbol}}
	if err := c.get(ctx, "/quote", params, &q); err != nil {
		return nil, err
	}

	if q.Current == 0 && q.PreviousClose == 0 {
		return nil, fmt.Errorf("no quote data for symbol %s", symbol)
	}

	return &domain.Quote{
		Symbol:        symbol,
		Current:       q.Current,
		PreviousClose: q.PreviousClose,
		High:          q.High,
		Low:           q.Low,
	}, nil
}

func (c *FinnhubClient) Fundamentals(ctx context.Context, symbol string) (*domain.Fundamentals, error) {
	symbol = strings.ToUpper(symbol)

	var m finnhubMetrics
	params := url.Values{"symbol": {symbol}, "metric": {"all"}}
	if err := c.get(ctx, "/stock/metric", params, &m); err != nil {
		return nil, err
	}

	if m.Metric.PERatio == nil && m.Metric.ROE == nil {
		return nil, fmt.Errorf("no fundamentals for symbol %s", symbol)
	}

	return &domain.Fundamentals{
		Symbol:        symbol,
		ROE:           deref(m.Metric.ROE),
		DebtToEquity:  deref(m.Metric.DebtToEquity),
		ProfitMargin:  deref(m.Metric.ProfitMargin),
		RevenueGrowth: deref(m.Metric.RevenueGrowth),
		PERatio:       deref(m.Metric.PERatio),
	}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
