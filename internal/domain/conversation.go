package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one chat exchange persisted for a session.
type Conversation struct {
	ID              uuid.UUID `json:"id"`
	SessionID       string    `json:"session_id"`
	UserMessage     string    `json:"user_message"`
	AgentResponse   string    `json:"agent_response"`
	ReasoningChain  []string  `json:"reasoning_chain"`
	ToolCalls       []string  `json:"tool_calls"`
	ConfidenceScore float64   `json:"confidence_score"`
	Embedding       []float32 `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// ConversationWithScore is a conversation plus its similarity score from a
// vector lookup.
type ConversationWithScore struct {
	Conversation
	Score float32 `json:"score"`
}
