package domain

import "context"

type ConversationStore interface {
	Create(ctx context.Context, c *Conversation) error
	ListBySession(ctx context.Context, sessionID string) ([]Conversation, error)
	FindSimilar(ctx context.Context, embedding []float32, limit int) ([]ConversationWithScore, error)
}

// BeliefSnapshot mirrors a belief record for durability. Snapshots are
// write-only from the tracker's point of view; they are never replayed.
type BeliefSnapshot struct {
	Key         string  `json:"belief_key"`
	Value       string  `json:"belief_value"`
	Confidence  float64 `json:"confidence"`
	DecayFactor float64 `json:"decay_factor"`
}

type BeliefSnapshotStore interface {
	Upsert(ctx context.Context, s *BeliefSnapshot) error
	ListAll(ctx context.Context) ([]BeliefSnapshot, error)
}

type RecommendationStore interface {
	Create(ctx context.Context, r *Recommendation) error
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]Recommendation, error)
}

// LLMClient is the hosted language model collaborator. The belief core never
// depends on its success; failures are handled by the advisor layer.
type LLMClient interface {
	Respond(ctx context.Context, system, user string) (string, error)
	ExtractTickers(ctx context.Context, message string) ([]string, error)
}

// MarketDataClient fetches quotes and fundamentals from a market data
// provider.
type MarketDataClient interface {
	Quote(ctx context.Context, symbol string) (*Quote, error)
	Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
}
