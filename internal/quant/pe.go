package quant

// Valuation signals emitted by AnalyzePE.
const (
	SignalUndervalued = "UNDERVALUED"
	SignalOvervalued  = "OVERVALUED"
	SignalAttractive  = "ATTRACTIVE"
	SignalExpensive   = "EXPENSIVE"
	SignalNeutral     = "NEUTRAL"
)

// PEAnalysis compares a current P/E against industry and historical context.
type PEAnalysis struct {
	CurrentPE          float64  `json:"current_pe"`
	IndustryAvgPE      float64  `json:"industry_avg_pe"`
	HistoricalMin      float64  `json:"historical_min"`
	HistoricalMax      float64  `json:"historical_max"`
	HistoricalAvg      float64  `json:"historical_avg"`
	PEGRatio           *float64 `json:"peg_ratio"`
	ValuationSignal    string   `json:"valuation_signal"`
	RelativeToIndustry float64  `json:"relative_to_industry"`
	RelativeToHistory  float64  `json:"relative_to_history"`
}

// AnalyzePE classifies currentPE against its historical range (falling back
// to [15, 25] when fewer than two points are given) and the industry
// average. PEG is nil when earnings growth is not positive.
func AnalyzePE(currentPE, industryAvgPE float64, historicalRange []float64, earningsGrowthRate float64) *PEAnalysis {
	if len(historicalRange) < 2 {
		historicalRange = []float64{15, 25}
	}

	min, max, sum := historicalRange[0], historicalRange[0], 0.0
	for _, pe := range historicalRange {
		if pe < min {
			min = pe
		}
		if pe > max {
			max = pe
		}
		sum += pe
	}
	avg := sum / float64(len(historicalRange))

	var peg *float64
	if earningsGrowthRate > 0 {
		v := round2(currentPE / (earningsGrowthRate * 100))
		peg = &v
	}

	signal := SignalNeutral
	switch {
	case currentPE < min*0.8:
		signal = SignalUndervalued
	case currentPE > max*1.2:
		signal = SignalOvervalued
	case currentPE < industryAvgPE*0.9:
		signal = SignalAttractive
	case currentPE > industryAvgPE*1.1:
		signal = SignalExpensive
	}

	return &PEAnalysis{
		CurrentPE:          currentPE,
		IndustryAvgPE:      industryAvgPE,
		HistoricalMin:      min,
		HistoricalMax:      max,
		HistoricalAvg:      round2(avg),
		PEGRatio:           peg,
		ValuationSignal:    signal,
		RelativeToIndustry: round1((currentPE/industryAvgPE - 1) * 100),
		RelativeToHistory:  round1((currentPE/avg - 1) * 100),
	}
}
