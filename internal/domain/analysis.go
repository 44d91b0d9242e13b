package domain

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a point-in-time price snapshot for one symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Current       float64 `json:"current"`
	PreviousClose float64 `json:"previous_close"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
}

// Fundamentals carries the ratios the quality score consumes.
type Fundamentals struct {
	Symbol        string  `json:"symbol"`
	ROE           float64 `json:"roe"`
	DebtToEquity  float64 `json:"debt_to_equity"`
	ProfitMargin  float64 `json:"profit_margin"`
	RevenueGrowth float64 `json:"revenue_growth"`
	PERatio       float64 `json:"pe_ratio"`
}

// Recommendation is a persisted per-symbol portfolio verdict.
type Recommendation struct {
	ID             uuid.UUID `json:"id"`
	Symbol         string    `json:"symbol"`
	CompanyName    string    `json:"company_name"`
	Recommendation string    `json:"recommendation"`
	TargetPrice    *float64  `json:"target_price,omitempty"`
	CurrentPrice   *float64  `json:"current_price,omitempty"`
	Reasoning      string    `json:"reasoning"`
	CreatedAt      time.Time `json:"created_at"`
}
