package domain

import (
	"encoding/json"
	"time"
)

// TradeRecommendation es una recomendación accionable derivada de un InsiderSignal.
// Es un value object: se crea una vez por mercado y scan y no se muta.
type TradeRecommendation struct {
	MarketID         string
	MarketQuestion   string
	Position         Position
	Confidence       float64
	CurrentPrice     float64 // precio del lado elegido
	ExpectedEdge     float64
	SuggestedSizePct float64 // [0,25] % del bankroll
	SignalType       SignalType
	Evidence         []string
	TradeURL         string
	PolymarketURL    string
	Expires          *time.Time
}

// RecommendationRecord es la forma plana serializada de una recomendación.
type RecommendationRecord struct {
	Market           string   `json:"market"`
	Position         string   `json:"position"`
	Confidence       float64  `json:"confidence"`
	CurrentPrice     float64  `json:"current_price"`
	ExpectedEdge     float64  `json:"expected_edge"`
	SuggestedSizePct float64  `json:"suggested_size_pct"`
	SignalType       string   `json:"signal_type"`
	Evidence         []string `json:"evidence"`
	TradeURL         string   `json:"trade_url"`
	PolymarketURL    string   `json:"polymarket_url"`
	Expires          *string  `json:"expires"`
}

// Record convierte la recomendación a su registro plano con el redondeo del wire format.
func (r TradeRecommendation) Record() RecommendationRecord {
	evidence := r.Evidence
	if evidence == nil {
		evidence = []string{}
	}
	rec := RecommendationRecord{
		Market:           r.MarketQuestion,
		Position:         r.Position.Label(),
		Confidence:       round(r.Confidence, 2),
		CurrentPrice:     round(r.CurrentPrice, 2),
		ExpectedEdge:     round(r.ExpectedEdge, 3),
		SuggestedSizePct: round(r.SuggestedSizePct, 3),
		SignalType:       r.SignalType.String(),
		Evidence:         evidence,
		TradeURL:         r.TradeURL,
		PolymarketURL:    r.PolymarketURL,
	}
	if r.Expires != nil {
		s := r.Expires.Format(time.RFC3339)
		rec.Expires = &s
	}
	return rec
}

// MarshalJSON serializa usando RecommendationRecord.
func (r TradeRecommendation) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Record())
}
