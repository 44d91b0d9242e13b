// Package marketdata fetches quotes and fundamentals from external market
// data providers. The advisor treats every call here as fallible and keeps
// serving on provider errors.
package marketdata

import (
	"fmt"

	"github.com/moatlabs/sage/internal/domain"
)

// Provider constants
const (
	ProviderFinnhub = "finnhub"
	ProviderMock    = "mock"
)

// NewClient creates a market data client based on the provider name.
func NewClient(provider, apiKey string) (domain.MarketDataClient, error) {
	switch provider {
	case ProviderFinnhub:
		if apiKey == "" {
			return nil, fmt.Errorf("FINNHUB_API_KEY is required for Finnhub provider")
		}
		return NewFinnhubClient(apiKey), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown market data provider: %s (valid options: finnhub, mock)", provider)
	}
}
