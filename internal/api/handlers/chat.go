package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/moatlabs/sage/internal/domain"
	"github.com/moatlabs/sage/internal/service"
)

type ChatHandler struct {
	svc           *service.AdvisorService
	conversations domain.ConversationStore
}

func NewChatHandler(svc *service.AdvisorService, cs domain.ConversationStore) *ChatHandler {
	return &ChatHandler{svc: svc, conversations: cs}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	result, err := h.svc.ProcessQuery(r.Context(), req.Message, req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrMessageEmpty) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process query")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conversations, err := h.conversations.ListBySession(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load conversation history")
		return
	}
	if len(conversations) == 0 {
		writeError(w, http.StatusNotFound, "no conversations for session")
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}
