package quant

// VWAP signals.
const (
	SignalOversold   = "OVERSOLD"
	SignalOverbought = "OVERBOUGHT"
	SignalBelowVWAP  = "BELOW_VWAP"
	SignalAboveVWAP  = "ABOVE_VWAP"
)

// VWAPResult positions the latest price against the volume-weighted average.
type VWAPResult struct {
	VWAP         float64 `json:"vwap"`
	CurrentPrice float64 `json:"current_price"`
	PriceVsVWAP  float64 `json:"price_vs_vwap"`
	Signal       string  `json:"signal"`
	TotalVolume  float64 `json:"total_volume"`
	Periods      int     `json:"periods"`
}

// VWAP computes the volume-weighted average price over the series and
// classifies the latest price's deviation: beyond ±2% is oversold or
// overbought, beyond ±1% is below or above.
func VWAP(prices, volumes []float64) (*VWAPResult, error) {
	if len(prices) == 0 || len(prices) != len(volumes) {
		return nil, ErrInvalidSeries
	}

	var totalVolume, weightedSum float64
	for i := range prices {
		totalVolume += volumes[i]
		weightedSum += prices[i] * volumes[i]
	}
	if totalVolume == 0 {
		return nil, ErrZeroVolume
	}

	vwap := weightedSum / totalVolume
	current := prices[len(prices)-1]
	deviation := (current/vwap - 1) * 100

	signal := SignalNeutral
	switch {
	case deviation < -2:
		signal = SignalOversold
	case deviation > 2:
		signal = SignalOverbought
	case deviation < -1:
		signal = SignalBelowVWAP
	case deviation > 1:
		signal = SignalAboveVWAP
	}

	return &VWAPResult{
		VWAP:         round2(vwap),
		CurrentPrice: current,
		PriceVsVWAP:  round2(deviation),
		Signal:       signal,
		TotalVolume:  totalVolume,
		Periods:      len(prices),
	}, nil
}
