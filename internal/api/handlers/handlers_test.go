package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moatlabs/sage/internal/belief"
	"github.com/moatlabs/sage/internal/domain"
	"github.com/moatlabs/sage/internal/llm"
	"github.com/moatlabs/sage/internal/marketdata"
	"github.com/moatlabs/sage/internal/service"
)

// memConversationStore is an in-memory domain.ConversationStore.
type memConversationStore struct {
	conversations []domain.Conversation
}

func (m *memConversationStore) Create(ctx context.Context, c *domain.Conversation) error {
	m.conversations = append(m.conversations, *c)
	return nil
}

func (m *memConversationStore) ListBySession(ctx context.Context, sessionID string) ([]domain.Conversation, error) {
	var out []domain.Conversation
	for _, c := range m.conversations {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memConversationStore) FindSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.ConversationWithScore, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *memConversationStore) {
	t.Helper()

	tracker := belief.NewTracker()
	belief.Seed(tracker)

	conversations := &memConversationStore{}
	mock := llm.NewMockClient()
	mock.RespondResponse = "Price is what you pay; value is what you get."

	svc := service.NewAdvisorService(conversations, nil, nil, mock, marketdata.NewMockClient(), tracker, zap.NewNop())

	chatHandler := NewChatHandler(svc, conversations)
	beliefHandler := NewBeliefHandler(svc, tracker)
	toolsHandler := NewToolsHandler()
	portfolioHandler := NewPortfolioHandler(svc, nil)
	corpusHandler := NewCorpusHandler()

	r := chi.NewRouter()
	r.Post("/chat", chatHandler.Chat)
	r.Get("/conversations/{sessionID}", chatHandler.History)
	r.Get("/beliefs", beliefHandler.Summary)
	r.Get("/beliefs/all", beliefHandler.All)
	r.Post("/beliefs/update", beliefHandler.UpdateFromNews)
	r.Get("/beliefs/{key}", beliefHandler.Get)
	r.Get("/beliefs/{key}/influenced", beliefHandler.Influenced)
	r.Post("/tools/dcf", toolsHandler.DCF)
	r.Post("/tools/margin", toolsHandler.Margin)
	r.Post("/portfolio/analyze", portfolioHandler.Analyze)
	r.Post("/corpus/search", corpusHandler.Search)
	return r, conversations
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChatHandler(t *testing.T) {
	r, conversations := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/chat", `{"message": "Should I buy quality?", "session_id": "s1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Price is what you pay; value is what you get.", resp.Response)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Len(t, conversations.conversations, 1)
}

func TestChatHandler_GeneratesSessionID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/chat", `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.QueryResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
}

func TestChatHandler_MissingMessage(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/chat", `{"session_id": "s1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_BadBody(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/chat", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHandler_History(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/chat", `{"message": "hi", "session_id": "s2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodGet, "/conversations/s2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history []domain.Conversation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].UserMessage)
}

func TestChatHandler_HistoryEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/conversations/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBeliefHandler_Summary(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/beliefs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.BeliefSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 10, summary.TotalBeliefs)
	assert.Equal(t, 6, summary.CausalLinksCount)
}

func TestBeliefHandler_Get(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/beliefs/fed_policy", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view domain.BeliefView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "neutral", view.Value)
}

func TestBeliefHandler_GetUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/beliefs/ghost_key", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBeliefHandler_UpdateFromNews(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/beliefs/update", `{"news_summary": "Fed raises rates again"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.MarketContextResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.UpdatesMade, "Updated Fed policy to tightening")
}

func TestBeliefHandler_UpdateFromNews_Empty(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/beliefs/update", `{"news_summary": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBeliefHandler_Influenced(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodGet, "/beliefs/fed_policy/influenced", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var influenced []domain.InfluencedBelief
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &influenced))
	assert.NotEmpty(t, influenced)
}

func TestToolsHandler_DCF(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/tools/dcf", `{"free_cash_flows": [1000, 1100, 1200, 1300, 1400]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Greater(t, result["enterprise_value"].(float64), 0.0)
}

func TestToolsHandler_DCF_TooFewFlows(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/tools/dcf", `{"free_cash_flows": [1000]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToolsHandler_Margin(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/tools/margin", `{"intrinsic_value": 120, "current_price": 100}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.InDelta(t, 16.67, result["margin_of_safety"].(float64), 0.01)
}

func TestToolsHandler_Margin_ExplicitZeroMinimum(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/tools/margin", `{"intrinsic_value": 120, "current_price": 100, "minimum_margin": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 0.0, result["minimum_margin"].(float64))
	assert.Equal(t, "SAFE", result["safety_rating"])
	assert.Equal(t, "BUY", result["recommendation"])
}

func TestToolsHandler_Margin_InvalidPrice(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/tools/margin", `{"intrinsic_value": 120, "current_price": -5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolioHandler_Analyze(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/portfolio/analyze", `{"symbols": ["AAPL"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.PortfolioResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Analysis, 1)
	assert.Equal(t, "STRONG_BUY", result.Analysis[0].Rating)
}

func TestPortfolioHandler_Analyze_NoSymbols(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/portfolio/analyze", `{"symbols": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorpusHandler_Search(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/corpus/search", `{"query": "risk management", "top_k": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var results []domain.CorpusResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestCorpusHandler_Search_MissingQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doRequest(t, r, http.MethodPost, "/corpus/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
