package llm

import "context"

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what each method returns.
type MockClient struct {
	RespondResponse        string
	RespondError           error
	ExtractTickersResponse []string
	ExtractTickersError    error

	// Call tracking for assertions
	RespondCalls        []struct{ System, User string }
	ExtractTickersCalls []string
}

func NewMockClient() *MockClient {
	return &MockClient{
		RespondResponse:        "Mock response",
		ExtractTickersResponse: []string{},
	}
}

func (m *MockClient) Respond(_ context.Context, system, user string) (string, error) {
	m.RespondCalls = append(m.RespondCalls, struct{ System, User string }{system, user})
	if m.RespondError != nil {
		return "", m.RespondError
	}
	return m.RespondResponse, nil
}

func (m *MockClient) ExtractTickers(_ context.Context, message string) ([]string, error) {
	m.ExtractTickersCalls = append(m.ExtractTickersCalls, message)
	if m.ExtractTickersError != nil {
		return nil, m.ExtractTickersError
	}
	return m.ExtractTickersResponse, nil
}
