package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/moatlabs/sage/internal/domain"
)

type ConversationStore struct {
	db *pgxpool.Pool
}

func NewConversationStore(db *pgxpool.Pool) *ConversationStore {
	return &ConversationStore{db: db}
}

func (s *ConversationStore) Create(ctx context.Context, c *domain.Conversation) error {
	var embedding *pgvector.Vector
	if len(c.Embedding) > 0 {
		v := pgvector.NewVector(c.Embedding)
		embedding = &v
	}

	if c.ReasoningChain == nil {
		c.ReasoningChain = []string{}
	}
	if c.ToolCalls == nil {
		c.ToolCalls = []string{}
	}

	return s.db.QueryRow(ctx,
		`INSERT INTO conversations (session_id, user_message, agent_response, reasoning_chain, tool_calls, confidence_score, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		c.SessionID, c.UserMessage, c.AgentResponse, c.ReasoningChain, c.ToolCalls, c.ConfidenceScore, embedding,
	).Scan(&c.ID, &c.CreatedAt)
}

func (s *ConversationStore) ListBySession(ctx context.Context, sessionID string) ([]domain.Conversation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, user_message, agent_response, reasoning_chain, tool_calls, confidence_score, created_at
		 FROM conversations
		 WHERE session_id = $1
		 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.SessionID, &c.UserMessage, &c.AgentResponse, &c.ReasoningChain, &c.ToolCalls, &c.ConfidenceScore, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// FindSimilar returns the conversations whose stored user-message embedding
// is closest to the given vector, best match first.
func (s *ConversationStore) FindSimilar(ctx context.Context, embedding []float32, limit int) ([]domain.ConversationWithScore, error) {
	if limit <= 0 {
		limit = 5
	}

	vec := pgvector.NewVector(embedding)

	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, user_message, agent_response, reasoning_chain, tool_calls, confidence_score, created_at,
		        1 - (embedding <=> $1) AS score
		 FROM conversations
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("similar conversations query: %w", err)
	}
	defer rows.Close()

	var out []domain.ConversationWithScore
	for rows.Next() {
		var c domain.ConversationWithScore
		if err := rows.Scan(&c.ID, &c.SessionID, &c.UserMessage, &c.AgentResponse, &c.ReasoningChain, &c.ToolCalls, &c.ConfidenceScore, &c.CreatedAt, &c.Score); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
