package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moatlabs/sage/internal/domain"
	"github.com/moatlabs/sage/internal/service"
)

type PortfolioHandler struct {
	svc             *service.AdvisorService
	recommendations domain.RecommendationStore
}

func NewPortfolioHandler(svc *service.AdvisorService, rs domain.RecommendationStore) *PortfolioHandler {
	return &PortfolioHandler{svc: svc, recommendations: rs}
}

type analyzeRequest struct {
	Symbols []string `json:"symbols"`
	Message string   `json:"message,omitempty"`
}

func (h *PortfolioHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.AnalyzePortfolio(r.Context(), req.Message, req.Symbols)
	if err != nil {
		if errors.Is(err, service.ErrNoSymbols) {
			writeError(w, http.StatusBadRequest, "symbols are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to analyze portfolio")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Recommendations lists persisted verdicts for one symbol, newest first.
func (h *PortfolioHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := h.recommendations.ListBySymbol(r.Context(), symbol, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list recommendations")
		return
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	writeJSON(w, http.StatusOK, recs)
}
