// Package quant implements the valuation arithmetic the advisor quotes:
// discounted cash flow, P/E analysis, margin of safety, VWAP, and the
// composite quality score. Everything here is a pure function.
package quant

import (
	"errors"
	"math"
)

var (
	ErrInsufficientCashFlows = errors.New("insufficient cash flow data")
	ErrInvalidPriceInput     = errors.New("invalid price or intrinsic value")
	ErrInvalidSeries         = errors.New("invalid price or volume data")
	ErrZeroVolume            = errors.New("zero total volume")
)

const (
	DefaultTerminalGrowthRate = 0.025
	DefaultDiscountRate       = 0.10
	DefaultTerminalYear       = 5
)

// DCFResult is a discounted cash flow valuation.
type DCFResult struct {
	EnterpriseValue    float64   `json:"enterprise_value"`
	TerminalValue      float64   `json:"terminal_value"`
	TerminalPV         float64   `json:"terminal_pv"`
	PresentValues      []float64 `json:"present_values"`
	DiscountRate       float64   `json:"discount_rate"`
	TerminalGrowthRate float64   `json:"terminal_growth_rate"`
}

// DCF discounts terminalYear years of projected free cash flow plus a
// Gordon-growth terminal value. Values are rounded to cents.
func DCF(freeCashFlows []float64, terminalGrowthRate, discountRate float64, terminalYear int) (*DCFResult, error) {
	if terminalYear <= 0 {
		terminalYear = DefaultTerminalYear
	}
	if len(freeCashFlows) < terminalYear {
		return nil, ErrInsufficientCashFlows
	}

	projected := freeCashFlows[:terminalYear]

	terminalValue := projected[len(projected)-1] * (1 + terminalGrowthRate) / (discountRate - terminalGrowthRate)

	presentValues := make([]float64, len(projected))
	var sum float64
	for i, fcf := range projected {
		pv := fcf / math.Pow(1+discountRate, float64(i+1))
		presentValues[i] = round2(pv)
		sum += pv
	}

	terminalPV := terminalValue / math.Pow(1+discountRate, float64(terminalYear))

	return &DCFResult{
		EnterpriseValue:    round2(sum + terminalPV),
		TerminalValue:      round2(terminalValue),
		TerminalPV:         round2(terminalPV),
		PresentValues:      presentValues,
		DiscountRate:       discountRate,
		TerminalGrowthRate: terminalGrowthRate,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
