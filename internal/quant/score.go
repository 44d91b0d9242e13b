package quant

// Composite ratings emitted by QualityScore.
const (
	RatingStrongBuy = "STRONG_BUY"
	RatingWeakHold  = "WEAK_HOLD"
)

// ScoreMetrics are the inputs to the quality score.
type ScoreMetrics struct {
	ROE           float64 `json:"roe"`
	DebtToEquity  float64 `json:"debt_to_equity"`
	ProfitMargin  float64 `json:"profit_margin"`
	RevenueGrowth float64 `json:"revenue_growth"`
	PERatio       float64 `json:"pe_ratio"`
}

// ScoreResult is the 0-100 composite with per-factor labels.
type ScoreResult struct {
	Score   int               `json:"quality_score"`
	Rating  string            `json:"rating"`
	Factors map[string]string `json:"factors"`
	Metrics ScoreMetrics      `json:"metrics"`
}

// QualityScore grades a company across profitability, leverage, margins,
// growth, and valuation. Each factor contributes up to 20 points.
func QualityScore(m ScoreMetrics) *ScoreResult {
	score := 0
	factors := make(map[string]string, 5)

	switch {
	case m.ROE >= 15:
		score += 20
		factors["roe"] = "Excellent"
	case m.ROE >= 10:
		score += 15
		factors["roe"] = "Good"
	case m.ROE >= 5:
		score += 10
		factors["roe"] = "Average"
	default:
		factors["roe"] = "Poor"
	}

	switch {
	case m.DebtToEquity <= 0.3:
		score += 20
		factors["debt"] = "Conservative"
	case m.DebtToEquity <= 0.6:
		score += 15
		factors["debt"] = "Moderate"
	case m.DebtToEquity <= 1.0:
		score += 10
		factors["debt"] = "High"
	default:
		factors["debt"] = "Excessive"
	}

	switch {
	case m.ProfitMargin >= 20:
		score += 20
		factors["margin"] = "Excellent"
	case m.ProfitMargin >= 15:
		score += 15
		factors["margin"] = "Good"
	case m.ProfitMargin >= 10:
		score += 10
		factors["margin"] = "Average"
	default:
		factors["margin"] = "Poor"
	}

	switch {
	case m.RevenueGrowth >= 10:
		score += 20
		factors["growth"] = "Strong"
	case m.RevenueGrowth >= 5:
		score += 15
		factors["growth"] = "Moderate"
	case m.RevenueGrowth >= 0:
		score += 10
		factors["growth"] = "Slow"
	default:
		factors["growth"] = "Declining"
	}

	switch {
	case m.PERatio <= 15:
		score += 20
		factors["valuation"] = "Cheap"
	case m.PERatio <= 20:
		score += 15
		factors["valuation"] = "Fair"
	case m.PERatio <= 25:
		score += 10
		factors["valuation"] = "Expensive"
	default:
		factors["valuation"] = "Overvalued"
	}

	rating := RecommendAvoid
	switch {
	case score >= 80:
		rating = RatingStrongBuy
	case score >= 70:
		rating = RecommendBuy
	case score >= 60:
		rating = RecommendHold
	case score >= 50:
		rating = RatingWeakHold
	}

	return &ScoreResult{
		Score:   score,
		Rating:  rating,
		Factors: factors,
		Metrics: m,
	}
}
