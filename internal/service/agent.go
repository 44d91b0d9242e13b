package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/moatlabs/sage/internal/belief"
	"github.com/moatlabs/sage/internal/corpus"
	"github.com/moatlabs/sage/internal/domain"
	"github.com/moatlabs/sage/internal/llm"
	"github.com/moatlabs/sage/internal/quant"
)

var (
	ErrMessageEmpty = errors.New("message is required")
	ErrNoSymbols    = errors.New("no symbols to analyze")
)

const (
	baseConfidence     = 0.8
	toolBonus          = 0.1
	contextBonus       = 0.1
	fallbackConfidence = 0.1
	defaultSessionID   = "default"
	similarExchanges   = 3
)

// fallbackResponse is returned when the language model call fails. The
// advisor degrades rather than erroring out.
const fallbackResponse = "I apologize, but I encountered an issue processing your question. As I always say, it's better to be approximately right than precisely wrong. Could you please rephrase your question?"

// sample inputs used when a tool is invoked from free-form chat without
// explicit numbers attached.
var sampleCashFlows = []float64{1000, 1100, 1200, 1300, 1400}

// toolResult is one executed tool call with its one-line summary.
type toolResult struct {
	Tool    string `json:"tool"`
	Summary string `json:"summary"`
	Detail  any    `json:"detail"`
}

// QueryResult is the full outcome of one advisor turn.
type QueryResult struct {
	Response        string               `json:"response"`
	ReasoningChain  []string             `json:"reasoning_chain"`
	ToolCalls       []string             `json:"tool_calls"`
	ToolResults     []toolResult         `json:"tool_results"`
	ContextUsed     string               `json:"context_used"`
	ConfidenceScore float64              `json:"confidence_score"`
	SessionID       string               `json:"session_id"`
	BeliefsSnapshot domain.BeliefSummary `json:"beliefs_snapshot"`
}

// MarketContextResult reports which beliefs a news summary touched.
type MarketContextResult struct {
	UpdatesMade    []string             `json:"updates_made"`
	CurrentBeliefs domain.BeliefSummary `json:"current_beliefs"`
}

// SymbolAnalysis is the per-symbol portion of a portfolio analysis.
type SymbolAnalysis struct {
	Symbol       string             `json:"symbol"`
	QualityScore *quant.ScoreResult `json:"quality_score"`
	Rating       string             `json:"rating"`
	KeyFactors   map[string]string  `json:"key_factors"`
}

// PortfolioResult is the outcome of an AnalyzePortfolio call.
type PortfolioResult struct {
	Symbols  []string         `json:"symbols"`
	Analysis []SymbolAnalysis `json:"analysis"`
}

// AdvisorService orchestrates the persona chat loop: corpus retrieval,
// keyword-triggered tools, belief context, LLM response, and persistence.
type AdvisorService struct {
	conversations   domain.ConversationStore
	snapshots       domain.BeliefSnapshotStore
	recommendations domain.RecommendationStore
	llmClient       domain.LLMClient
	marketData      domain.MarketDataClient
	tracker         *belief.Tracker
	ingestor        *belief.NewsIngestor
	logger          *zap.Logger
}

func NewAdvisorService(
	cs domain.ConversationStore,
	bs domain.BeliefSnapshotStore,
	rs domain.RecommendationStore,
	lc domain.LLMClient,
	md domain.MarketDataClient,
	tracker *belief.Tracker,
	logger *zap.Logger,
) *AdvisorService {
	return &AdvisorService{
		conversations:   cs,
		snapshots:       bs,
		recommendations: rs,
		llmClient:       lc,
		marketData:      md,
		tracker:         tracker,
		ingestor:        belief.NewNewsIngestor(tracker),
		logger:          logger,
	}
}

// Tracker exposes the belief tracker for the HTTP surface.
func (s *AdvisorService) Tracker() *belief.Tracker {
	return s.tracker
}

// ProcessQuery runs one chat turn. LLM failure does not fail the turn; the
// caller gets an apologetic fallback with a floor confidence.
func (s *AdvisorService) ProcessQuery(ctx context.Context, userMessage, sessionID string) (*QueryResult, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, ErrMessageEmpty
	}
	if sessionID == "" {
		sessionID = defaultSessionID
	}

	embedding := corpus.Embed(userMessage)
	letterContext := corpus.ContextForQuery(userMessage)
	toolCalls, toolResults := s.runTools(userMessage)
	reasoning := s.reasoningChain(userMessage, letterContext, toolResults)

	var prior []domain.ConversationWithScore
	if s.conversations != nil {
		var err error
		prior, err = s.conversations.FindSimilar(ctx, embedding, similarExchanges)
		if err != nil {
			s.logger.Warn("similar conversation lookup failed", zap.Error(err))
		}
	}

	system := fmt.Sprintf(llm.PersonaPrompt, formatBeliefContext(s.tracker.GetAll()))
	user := s.userPrompt(userMessage, letterContext, toolResults, prior)

	response, err := s.llmClient.Respond(ctx, system, user)
	confidence := baseConfidence
	if err != nil {
		s.logger.Warn("LLM response failed, returning fallback", zap.Error(err))
		response = fallbackResponse
		reasoning = []string{"Error occurred during processing"}
		confidence = fallbackConfidence
	} else {
		if len(toolResults) > 0 {
			confidence += toolBonus
		}
		if letterContext != "" {
			confidence += contextBonus
		}
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	conv := &domain.Conversation{
		SessionID:       sessionID,
		UserMessage:     userMessage,
		AgentResponse:   response,
		ReasoningChain:  reasoning,
		ToolCalls:       toolCalls,
		ConfidenceScore: confidence,
		Embedding:       embedding,
	}
	if s.conversations != nil {
		if err := s.conversations.Create(ctx, conv); err != nil {
			s.logger.Warn("failed to persist conversation", zap.Error(err), zap.String("session_id", sessionID))
		}
	}

	return &QueryResult{
		Response:        response,
		ReasoningChain:  reasoning,
		ToolCalls:       toolCalls,
		ToolResults:     toolResults,
		ContextUsed:     letterContext,
		ConfidenceScore: confidence,
		SessionID:       sessionID,
		BeliefsSnapshot: s.tracker.Summary(),
	}, nil
}

// UpdateMarketContext ingests a news summary into the belief tracker and
// mirrors the resulting high-confidence beliefs to durable storage.
func (s *AdvisorService) UpdateMarketContext(ctx context.Context, newsSummary string) (*MarketContextResult, error) {
	if strings.TrimSpace(newsSummary) == "" {
		return nil, ErrMessageEmpty
	}

	updates := s.ingestor.IngestText(newsSummary)
	summary := s.tracker.Summary()

	if s.snapshots != nil {
		for _, v := range summary.HighConfidence {
			snap := &domain.BeliefSnapshot{
				Key:         v.Key,
				Value:       v.Value,
				Confidence:  v.BaseConfidence,
				DecayFactor: v.DecayFactor,
			}
			if err := s.snapshots.Upsert(ctx, snap); err != nil {
				s.logger.Warn("failed to snapshot belief", zap.Error(err), zap.String("key", v.Key))
			}
		}
	}

	return &MarketContextResult{UpdatesMade: updates, CurrentBeliefs: summary}, nil
}

// AnalyzePortfolio scores each requested symbol. When no symbols are given
// they are extracted from the message; when fundamentals are unavailable the
// mock provider's sample metrics stand in.
func (s *AdvisorService) AnalyzePortfolio(ctx context.Context, message string, symbols []string) (*PortfolioResult, error) {
	if len(symbols) == 0 {
		extracted, err := s.llmClient.ExtractTickers(ctx, message)
		if err != nil {
			return nil, fmt.Errorf("extract tickers: %w", err)
		}
		symbols = extracted
	}
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	result := &PortfolioResult{Symbols: symbols}
	for _, symbol := range symbols {
		fundamentals, err := s.marketData.Fundamentals(ctx, symbol)
		if err != nil {
			s.logger.Warn("fundamentals unavailable, using sample metrics", zap.Error(err), zap.String("symbol", symbol))
			fundamentals = &domain.Fundamentals{
				Symbol:        symbol,
				ROE:           15.2,
				DebtToEquity:  0.4,
				ProfitMargin:  18.5,
				RevenueGrowth: 8.2,
				PERatio:       19.5,
			}
		}

		score := quant.QualityScore(quant.ScoreMetrics{
			ROE:           fundamentals.ROE,
			DebtToEquity:  fundamentals.DebtToEquity,
			ProfitMargin:  fundamentals.ProfitMargin,
			RevenueGrowth: fundamentals.RevenueGrowth,
			PERatio:       fundamentals.PERatio,
		})

		result.Analysis = append(result.Analysis, SymbolAnalysis{
			Symbol:       symbol,
			QualityScore: score,
			Rating:       score.Rating,
			KeyFactors:   score.Factors,
		})

		if s.recommendations != nil {
			rec := &domain.Recommendation{
				Symbol:         symbol,
				CompanyName:    fmt.Sprintf("%s Company", symbol),
				Recommendation: score.Rating,
				Reasoning:      fmt.Sprintf("Quality score %d based on ROE %.1f%%, margin %.1f%%, growth %.1f%%", score.Score, fundamentals.ROE, fundamentals.ProfitMargin, fundamentals.RevenueGrowth),
			}
			if quote, qerr := s.marketData.Quote(ctx, symbol); qerr == nil {
				rec.CurrentPrice = &quote.Current
			}
			if err := s.recommendations.Create(ctx, rec); err != nil {
				s.logger.Warn("failed to persist recommendation", zap.Error(err), zap.String("symbol", symbol))
			}
		}
	}
	return result, nil
}

// runTools scans the message for tool trigger phrases and executes matched
// tools against illustrative inputs.
func (s *AdvisorService) runTools(userMessage string) ([]string, []toolResult) {
	lower := strings.ToLower(userMessage)
	var calls []string
	var results []toolResult

	if containsAny(lower, "dcf", "discounted cash flow", "intrinsic value") {
		calls = append(calls, "dcf")
		if r, err := quant.DCF(sampleCashFlows, quant.DefaultTerminalGrowthRate, quant.DefaultDiscountRate, quant.DefaultTerminalYear); err == nil {
			results = append(results, toolResult{
				Tool:    "DCF Analysis",
				Summary: fmt.Sprintf("Enterprise value: $%.0f", r.EnterpriseValue),
				Detail:  r,
			})
		}
	}
	if containsAny(lower, "p/e", "pe ratio", "price earnings") {
		calls = append(calls, "pe_analysis")
		r := quant.AnalyzePE(18.5, 22.0, []float64{15, 25}, 0.08)
		results = append(results, toolResult{
			Tool:    "P/E Analysis",
			Summary: fmt.Sprintf("Current P/E: %.1f, Signal: %s", r.CurrentPE, r.ValuationSignal),
			Detail:  r,
		})
	}
	if containsAny(lower, "margin of safety", "safety margin", "risk") {
		calls = append(calls, "margin_safety")
		if r, err := quant.MarginOfSafety(120, 100, quant.DefaultMinimumMargin); err == nil {
			results = append(results, toolResult{
				Tool:    "Margin of Safety",
				Summary: fmt.Sprintf("Margin: %.2f%%, Rating: %s", r.MarginOfSafety, r.SafetyRating),
				Detail:  r,
			})
		}
	}
	if containsAny(lower, "vwap", "volume weighted", "technical") {
		calls = append(calls, "vwap")
		if r, err := quant.VWAP([]float64{100, 101, 102, 101.5}, []float64{1000, 1200, 900, 1100}); err == nil {
			results = append(results, toolResult{
				Tool:    "VWAP Analysis",
				Summary: fmt.Sprintf("VWAP: %.2f, Signal: %s", r.VWAP, r.Signal),
				Detail:  r,
			})
		}
	}
	return calls, results
}

func (s *AdvisorService) reasoningChain(userMessage, letterContext string, toolResults []toolResult) []string {
	steps := []string{
		"Step 1: Understanding the Question",
		fmt.Sprintf("The user is asking about: %s", userMessage),
		"",
		"Step 2: Gathering Relevant Context",
	}
	if letterContext != "" {
		steps = append(steps, fmt.Sprintf("From my shareholder letters and experience: %s...", truncate(letterContext, 200)))
	} else {
		steps = append(steps, "Drawing from general investment principles")
	}
	steps = append(steps, "")

	if len(toolResults) > 0 {
		steps = append(steps,
			"Step 3: Financial Analysis",
			"Let me analyze the numbers using my proven methods:",
		)
		for _, r := range toolResults {
			steps = append(steps, fmt.Sprintf("- %s: %s", r.Tool, r.Summary))
		}
		steps = append(steps, "")
	}

	summary := s.tracker.Summary()
	if len(summary.HighConfidence) > 0 {
		keys := make([]string, 0, 3)
		for _, v := range summary.HighConfidence {
			keys = append(keys, v.Key)
			if len(keys) == 3 {
				break
			}
		}
		steps = append(steps,
			"Step 4: Market Context Consideration",
			"Given current market conditions and my beliefs:",
			fmt.Sprintf("- High confidence factors: %s", strings.Join(keys, ", ")),
			"",
		)
	}

	steps = append(steps,
		"Step 5: Investment Recommendation",
		"Based on my analysis and decades of experience, here's my assessment:",
		"",
	)
	return steps
}

func (s *AdvisorService) userPrompt(userMessage, letterContext string, toolResults []toolResult, prior []domain.ConversationWithScore) string {
	toolSection := "No specific calculations needed"
	if len(toolResults) > 0 {
		if b, err := json.MarshalIndent(toolResults, "", "  "); err == nil {
			toolSection = string(b)
		}
	}

	priorSection := ""
	if len(prior) > 0 {
		lines := make([]string, 0, len(prior))
		for _, p := range prior {
			lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", p.UserMessage, truncate(p.AgentResponse, 200)))
		}
		priorSection = fmt.Sprintf("\n\nSimilar past exchanges:\n%s", strings.Join(lines, "\n"))
	}

	return fmt.Sprintf(`Context from my letters: %s

Tool analysis results: %s%s

Question: %s

Please provide a comprehensive response following the reasoning chain approach.`, letterContext, toolSection, priorSection, userMessage)
}

// formatBeliefContext renders visible beliefs as prompt bullet points.
func formatBeliefContext(beliefs []domain.BeliefView) string {
	if len(beliefs) == 0 {
		return "No specific market beliefs currently active."
	}
	lines := make([]string, 0, len(beliefs))
	for _, v := range beliefs {
		level := "low"
		switch {
		case v.CurrentConfidence > belief.HighConfidenceFloor:
			level = "high"
		case v.CurrentConfidence > belief.LowConfidenceCeiling:
			level = "medium"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (confidence: %s)", titleCaseKey(v.Key), v.Value, level))
	}
	return strings.Join(lines, "\n")
}

// titleCaseKey turns "fed_policy" into "Fed Policy".
func titleCaseKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func containsAny(s string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
