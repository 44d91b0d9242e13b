package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moatlabs/sage/internal/belief"
	"github.com/moatlabs/sage/internal/service"
)

type BeliefHandler struct {
	svc     *service.AdvisorService
	tracker *belief.Tracker
}

func NewBeliefHandler(svc *service.AdvisorService, tracker *belief.Tracker) *BeliefHandler {
	return &BeliefHandler{svc: svc, tracker: tracker}
}

// Summary returns the tiered belief overview.
func (h *BeliefHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.Summary())
}

// All returns every visible belief with recomputed confidence.
func (h *BeliefHandler) All(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.GetAll())
}

func (h *BeliefHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	view, ok := h.tracker.Get(key)
	if !ok {
		writeError(w, http.StatusNotFound, "belief not found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *BeliefHandler) Influenced(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	writeJSON(w, http.StatusOK, h.tracker.Influenced(key))
}

type updateBeliefsRequest struct {
	NewsSummary string `json:"news_summary"`
}

// UpdateFromNews ingests a news summary into the tracker.
func (h *BeliefHandler) UpdateFromNews(w http.ResponseWriter, r *http.Request) {
	var req updateBeliefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.UpdateMarketContext(r.Context(), req.NewsSummary)
	if err != nil {
		if errors.Is(err, service.ErrMessageEmpty) {
			writeError(w, http.StatusBadRequest, "news_summary is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update beliefs")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
