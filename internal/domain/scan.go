package domain

import "time"

// ScanReport resume un scan completo: qué se analizó y qué se recomienda.
type ScanReport struct {
	ScanID          string
	StartedAt       time.Time
	MinConfidence   float64
	MarketsFetched  int
	MarketsSkipped  int // descartados por datos inválidos
	Disclosures     int
	BookFailures    int
	Signals         int // mercados con confianza >= umbral de reporte
	Recommendations []TradeRecommendation
}
