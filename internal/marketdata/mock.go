package marketdata

import (
	"context"
	"strings"

	"github.com/moatlabs/sage/internal/domain"
)

// MockClient serves canned market data for development and tests. The
// fundamentals mirror the sample metrics used before live data was wired in.
type MockClient struct {
	QuoteError        error
	FundamentalsError error
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Quote(_ context.Context, symbol string) (*domain.Quote, error) {
	if m.QuoteError != nil {
		return nil, m.QuoteError
	}
	return &domain.Quote{
		Symbol:        strings.ToUpper(symbol),
		Current:       100.0,
		PreviousClose: 99.0,
		High:          101.5,
		Low:           98.5,
	}, nil
}

func (m *MockClient) Fundamentals(_ context.Context, symbol string) (*domain.Fundamentals, error) {
	if m.FundamentalsError != nil {
		return nil, m.FundamentalsError
	}
	return &domain.Fundamentals{
		Symbol:        strings.ToUpper(symbol),
		ROE:           15.2,
		DebtToEquity:  0.4,
		ProfitMargin:  18.5,
		RevenueGrowth: 8.2,
		PERatio:       19.5,
	}, nil
}
