package quant

import (
	"errors"
	"math"
	"testing"
)

func TestDCF(t *testing.T) {
	result, err := DCF([]float64{100, 110, 121, 133.1, 146.41}, 0.025, 0.10, 5)
	if err != nil {
		t.Fatalf("DCF returned error: %v", err)
	}

	// terminal value = 146.41 * 1.025 / 0.075 = 2000.935
	if math.Abs(result.TerminalValue-2000.94) > 0.01 {
		t.Errorf("terminal value = %v, want 2000.94", result.TerminalValue)
	}
	if len(result.PresentValues) != 5 {
		t.Fatalf("got %d present values, want 5", len(result.PresentValues))
	}
	if math.Abs(result.PresentValues[0]-90.91) > 0.01 {
		t.Errorf("PV[0] = %v, want 90.91", result.PresentValues[0])
	}
	if result.EnterpriseValue <= result.TerminalPV {
		t.Errorf("enterprise value %v should exceed terminal PV %v", result.EnterpriseValue, result.TerminalPV)
	}
}

func TestDCF_InsufficientData(t *testing.T) {
	if _, err := DCF([]float64{100, 110}, 0.025, 0.10, 5); !errors.Is(err, ErrInsufficientCashFlows) {
		t.Fatalf("err = %v, want ErrInsufficientCashFlows", err)
	}
	if _, err := DCF(nil, 0.025, 0.10, 5); !errors.Is(err, ErrInsufficientCashFlows) {
		t.Fatalf("err = %v, want ErrInsufficientCashFlows", err)
	}
}

func TestAnalyzePE_Signals(t *testing.T) {
	tests := []struct {
		name       string
		currentPE  float64
		industryPE float64
		historical []float64
		want       string
	}{
		{"well below historical min", 10, 20, []float64{15, 25}, SignalUndervalued},
		{"well above historical max", 35, 20, []float64{15, 25}, SignalOvervalued},
		{"below industry", 16, 22, []float64{15, 25}, SignalAttractive},
		{"above industry", 25, 20, []float64{15, 30}, SignalExpensive},
		{"in band", 20, 20, []float64{15, 25}, SignalNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzePE(tt.currentPE, tt.industryPE, tt.historical, 0.08)
			if got.ValuationSignal != tt.want {
				t.Errorf("signal = %s, want %s", got.ValuationSignal, tt.want)
			}
		})
	}
}

func TestAnalyzePE_PEGAndDefaults(t *testing.T) {
	result := AnalyzePE(18.5, 22.0, nil, 0.08)
	if result.HistoricalMin != 15 || result.HistoricalMax != 25 {
		t.Fatalf("default historical range not applied: %+v", result)
	}
	if result.PEGRatio == nil || math.Abs(*result.PEGRatio-2.31) > 0.01 {
		t.Fatalf("PEG = %v, want 2.31", result.PEGRatio)
	}

	noGrowth := AnalyzePE(18.5, 22.0, nil, 0)
	if noGrowth.PEGRatio != nil {
		t.Fatal("PEG should be nil without positive earnings growth")
	}
}

func TestMarginOfSafety(t *testing.T) {
	result, err := MarginOfSafety(120, 100, 0.20)
	if err != nil {
		t.Fatalf("MarginOfSafety returned error: %v", err)
	}
	if math.Abs(result.MarginOfSafety-16.67) > 0.01 {
		t.Errorf("margin = %v, want 16.67", result.MarginOfSafety)
	}
	if result.SafetyRating != RatingModerate || result.Recommendation != RecommendConsider {
		t.Errorf("got %s/%s, want MODERATE/CONSIDER", result.SafetyRating, result.Recommendation)
	}
	if math.Abs(result.UpsidePotential-20.0) > 0.01 {
		t.Errorf("upside = %v, want 20", result.UpsidePotential)
	}
	if math.Abs(result.PriceToValueRatio-0.833) > 0.001 {
		t.Errorf("price-to-value = %v, want 0.833", result.PriceToValueRatio)
	}
}

func TestMarginOfSafety_Grades(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic float64
		price     float64
		rating    string
		recommend string
	}{
		{"deep discount", 200, 100, RatingSafe, RecommendBuy},
		{"moderate discount", 120, 100, RatingModerate, RecommendConsider},
		{"thin margin", 105, 100, RatingMinimal, RecommendHold},
		{"overpriced", 90, 100, RatingDangerous, RecommendAvoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarginOfSafety(tt.intrinsic, tt.price, 0.20)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.SafetyRating != tt.rating || result.Recommendation != tt.recommend {
				t.Errorf("got %s/%s, want %s/%s",
					result.SafetyRating, result.Recommendation, tt.rating, tt.recommend)
			}
		})
	}
}

func TestMarginOfSafety_ZeroMinimumIsHonored(t *testing.T) {
	result, err := MarginOfSafety(120, 100, 0)
	if err != nil {
		t.Fatalf("MarginOfSafety returned error: %v", err)
	}
	if result.MinimumMargin != 0 {
		t.Fatalf("minimum margin = %v, want 0", result.MinimumMargin)
	}
	if result.SafetyRating != RatingSafe || result.Recommendation != RecommendBuy {
		t.Errorf("got %s/%s, want SAFE/BUY against a zero threshold",
			result.SafetyRating, result.Recommendation)
	}
}

func TestMarginOfSafety_InvalidInputs(t *testing.T) {
	if _, err := MarginOfSafety(0, 100, 0.20); !errors.Is(err, ErrInvalidPriceInput) {
		t.Fatalf("err = %v, want ErrInvalidPriceInput", err)
	}
	if _, err := MarginOfSafety(120, -5, 0.20); !errors.Is(err, ErrInvalidPriceInput) {
		t.Fatalf("err = %v, want ErrInvalidPriceInput", err)
	}
}

func TestVWAP(t *testing.T) {
	result, err := VWAP([]float64{10, 10, 10, 10.5}, []float64{100, 100, 100, 100})
	if err != nil {
		t.Fatalf("VWAP returned error: %v", err)
	}
	if math.Abs(result.VWAP-10.13) > 0.01 {
		t.Errorf("vwap = %v, want 10.13", result.VWAP)
	}
	// 10.5 / 10.125 - 1 = +3.7%
	if result.Signal != SignalOverbought {
		t.Errorf("signal = %s, want OVERBOUGHT", result.Signal)
	}

	flat, err := VWAP([]float64{10, 10}, []float64{50, 50})
	if err != nil {
		t.Fatalf("VWAP returned error: %v", err)
	}
	if flat.Signal != SignalNeutral {
		t.Errorf("signal = %s, want NEUTRAL", flat.Signal)
	}
}

func TestVWAP_Errors(t *testing.T) {
	if _, err := VWAP(nil, nil); !errors.Is(err, ErrInvalidSeries) {
		t.Fatalf("err = %v, want ErrInvalidSeries", err)
	}
	if _, err := VWAP([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrInvalidSeries) {
		t.Fatalf("err = %v, want ErrInvalidSeries", err)
	}
	if _, err := VWAP([]float64{1, 2}, []float64{0, 0}); !errors.Is(err, ErrZeroVolume) {
		t.Fatalf("err = %v, want ErrZeroVolume", err)
	}
}

func TestQualityScore(t *testing.T) {
	result := QualityScore(ScoreMetrics{
		ROE:           15.2,
		DebtToEquity:  0.4,
		ProfitMargin:  18.5,
		RevenueGrowth: 8.2,
		PERatio:       19.5,
	})

	// 20 + 15 + 15 + 15 + 15 = 80
	if result.Score != 80 {
		t.Errorf("score = %d, want 80", result.Score)
	}
	if result.Rating != RatingStrongBuy {
		t.Errorf("rating = %s, want STRONG_BUY", result.Rating)
	}
	if result.Factors["roe"] != "Excellent" || result.Factors["debt"] != "Moderate" {
		t.Errorf("unexpected factors: %+v", result.Factors)
	}
}

func TestQualityScore_WorstCase(t *testing.T) {
	result := QualityScore(ScoreMetrics{
		ROE:           2,
		DebtToEquity:  1.5,
		ProfitMargin:  4,
		RevenueGrowth: -3,
		PERatio:       40,
	})
	if result.Score != 0 || result.Rating != RecommendAvoid {
		t.Errorf("got %d/%s, want 0/AVOID", result.Score, result.Rating)
	}
}
