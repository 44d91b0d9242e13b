package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFinnhubClient_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("path = %s, want /quote", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("symbol = %s, want AAPL", got)
		}
		if r.URL.Query().Get("token") == "" {
			t.Error("token query param missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c": 189.5, "h": 191.0, "l": 188.2, "pc": 187.9}`))
	}))
	defer srv.Close()

	client := NewFinnhubClient("test-key")
	client.SetBaseURL(srv.URL)

	quote, err := client.Quote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if quote.Symbol != "AAPL" || quote.Current != 189.5 || quote.PreviousClose != 187.9 {
		t.Fatalf("unexpected quote: %+v", quote)
	}
}

func TestFinnhubClient_QuoteUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"c": 0, "h": 0, "l": 0, "pc": 0}`))
	}))
	defer srv.Close()

	client := NewFinnhubClient("test-key")
	client.SetBaseURL(srv.URL)

	if _, err := client.Quote(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for empty quote data")
	}
}

func TestFinnhubClient_Fundamentals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/metric" {
			t.Errorf("path = %s, want /stock/metric", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"metric": {"roeTTM": 24.1, "totalDebt/totalEquityQuarterly": 0.55, "netProfitMarginTTM": 21.3, "revenueGrowthTTMYoy": 6.4, "peTTM": 27.8}}`))
	}))
	defer srv.Close()

	client := NewFinnhubClient("test-key")
	client.SetBaseURL(srv.URL)

	f, err := client.Fundamentals(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Fundamentals returned error: %v", err)
	}
	if f.ROE != 24.1 || f.PERatio != 27.8 || f.DebtToEquity != 0.55 {
		t.Fatalf("unexpected fundamentals: %+v", f)
	}
}

func TestFinnhubClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewFinnhubClient("test-key")
	client.SetBaseURL(srv.URL)

	if _, err := client.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
