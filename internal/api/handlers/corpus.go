package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/moatlabs/sage/internal/corpus"
)

// CorpusHandler searches the shareholder letter excerpts.
type CorpusHandler struct{}

func NewCorpusHandler() *CorpusHandler {
	return &CorpusHandler{}
}

type corpusSearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func (h *CorpusHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req corpusSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	writeJSON(w, http.StatusOK, corpus.Search(req.Query, req.TopK))
}
