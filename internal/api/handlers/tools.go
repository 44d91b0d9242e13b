package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/moatlabs/sage/internal/quant"
)

// ToolsHandler exposes the valuation calculators directly.
type ToolsHandler struct{}

func NewToolsHandler() *ToolsHandler {
	return &ToolsHandler{}
}

type dcfRequest struct {
	FreeCashFlows      []float64 `json:"free_cash_flows"`
	TerminalGrowthRate float64   `json:"terminal_growth_rate"`
	DiscountRate       float64   `json:"discount_rate"`
}

func (h *ToolsHandler) DCF(w http.ResponseWriter, r *http.Request) {
	var req dcfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TerminalGrowthRate == 0 {
		req.TerminalGrowthRate = quant.DefaultTerminalGrowthRate
	}
	if req.DiscountRate == 0 {
		req.DiscountRate = quant.DefaultDiscountRate
	}

	result, err := quant.DCF(req.FreeCashFlows, req.TerminalGrowthRate, req.DiscountRate, quant.DefaultTerminalYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type peRequest struct {
	CurrentPE          float64   `json:"current_pe"`
	IndustryAvgPE      float64   `json:"industry_avg_pe"`
	HistoricalPERange  []float64 `json:"historical_pe_range"`
	EarningsGrowthRate float64   `json:"earnings_growth_rate"`
}

func (h *ToolsHandler) PE(w http.ResponseWriter, r *http.Request) {
	var req peRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, quant.AnalyzePE(req.CurrentPE, req.IndustryAvgPE, req.HistoricalPERange, req.EarningsGrowthRate))
}

type marginRequest struct {
	IntrinsicValue float64 `json:"intrinsic_value"`
	CurrentPrice   float64 `json:"current_price"`
	// MinimumMargin is a pointer so an explicit zero threshold survives
	// decoding; an absent field falls back to the package default.
	MinimumMargin *float64 `json:"minimum_margin"`
}

func (h *ToolsHandler) Margin(w http.ResponseWriter, r *http.Request) {
	var req marginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	minimum := quant.DefaultMinimumMargin
	if req.MinimumMargin != nil {
		minimum = *req.MinimumMargin
	}

	result, err := quant.MarginOfSafety(req.IntrinsicValue, req.CurrentPrice, minimum)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type vwapRequest struct {
	Prices  []float64 `json:"prices"`
	Volumes []float64 `json:"volumes"`
}

func (h *ToolsHandler) VWAP(w http.ResponseWriter, r *http.Request) {
	var req vwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := quant.VWAP(req.Prices, req.Volumes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ToolsHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req quant.ScoreMetrics
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, quant.QualityScore(req))
}
