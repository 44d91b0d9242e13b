package quant

// Safety ratings and recommendations emitted by MarginOfSafety.
const (
	RatingSafe      = "SAFE"
	RatingModerate  = "MODERATE"
	RatingMinimal   = "MINIMAL"
	RatingDangerous = "DANGEROUS"

	RecommendBuy      = "BUY"
	RecommendConsider = "CONSIDER"
	RecommendHold     = "HOLD"
	RecommendAvoid    = "AVOID"

	DefaultMinimumMargin = 0.20
)

// MarginResult relates price to intrinsic value.
type MarginResult struct {
	IntrinsicValue    float64 `json:"intrinsic_value"`
	CurrentPrice      float64 `json:"current_price"`
	MarginOfSafety    float64 `json:"margin_of_safety"`
	MinimumMargin     float64 `json:"minimum_margin"`
	SafetyRating      string  `json:"safety_rating"`
	UpsidePotential   float64 `json:"upside_potential"`
	Recommendation    string  `json:"recommendation"`
	PriceToValueRatio float64 `json:"price_to_value_ratio"`
}

// MarginOfSafety computes (intrinsic - price) / intrinsic and grades it
// against minimumMargin, exactly as given. Callers that want the usual 20%
// threshold pass DefaultMinimumMargin. Both price inputs must be positive.
func MarginOfSafety(intrinsicValue, currentPrice, minimumMargin float64) (*MarginResult, error) {
	if currentPrice <= 0 || intrinsicValue <= 0 {
		return nil, ErrInvalidPriceInput
	}

	margin := (intrinsicValue - currentPrice) / intrinsicValue

	rating := RatingDangerous
	switch {
	case margin >= minimumMargin:
		rating = RatingSafe
	case margin >= minimumMargin*0.5:
		rating = RatingModerate
	case margin >= 0:
		rating = RatingMinimal
	}

	recommendation := RecommendAvoid
	switch {
	case margin >= minimumMargin:
		recommendation = RecommendBuy
	case margin >= minimumMargin*0.5:
		recommendation = RecommendConsider
	case margin >= 0:
		recommendation = RecommendHold
	}

	return &MarginResult{
		IntrinsicValue:    intrinsicValue,
		CurrentPrice:      currentPrice,
		MarginOfSafety:    round2(margin * 100),
		MinimumMargin:     round2(minimumMargin * 100),
		SafetyRating:      rating,
		UpsidePotential:   round2((intrinsicValue/currentPrice - 1) * 100),
		Recommendation:    recommendation,
		PriceToValueRatio: round3(currentPrice / intrinsicValue),
	}, nil
}
