package llm

import (
	"testing"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantErr  bool
	}{
		{"openai with key", ProviderOpenAI, "sk-test", false},
		{"openai without key", ProviderOpenAI, "", true},
		{"anthropic with key", ProviderAnthropic, "sk-ant-test", false},
		{"anthropic without key", ProviderAnthropic, "", true},
		{"mock needs no key", ProviderMock, "", false},
		{"unknown provider", "cohere", "key", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.provider, tt.apiKey)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("expected client, got nil")
			}
		})
	}
}

func TestParseTickerArray(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
		ok     bool
	}{
		{"plain array", `["AAPL", "GOOGL"]`, []string{"AAPL", "GOOGL"}, true},
		{"fenced array", "```json\n[\"MSFT\"]\n```", []string{"MSFT"}, true},
		{"surrounded by prose", `Here you go: ["BRK", "ko"] as requested`, []string{"BRK", "KO"}, true},
		{"duplicates collapse", `["AAPL", "aapl", " AAPL "]`, []string{"AAPL"}, true},
		{"no array", "I cannot find any tickers.", nil, false},
		{"malformed json", `[AAPL, GOOGL]`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTickerArray(tt.output)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFallbackTickers(t *testing.T) {
	got := fallbackTickers("please compare AAPL and GOOGL against the S&P")
	want := map[string]bool{"AAPL": true, "GOOGL": true, "S": true, "P": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want keys %v", got, want)
	}
	for _, tk := range got {
		if !want[tk] {
			t.Fatalf("unexpected ticker %s in %v", tk, got)
		}
	}
}
