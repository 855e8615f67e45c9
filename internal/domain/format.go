package domain

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// round redondea v a places decimales en modo half-even ("banker's rounding"),
// el mismo modo que FormatUSD. NaN e Inf se devuelven sin tocar.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).RoundBank(places).InexactFloat64()
}

// FormatUSD formatea un importe en dólares enteros: 847000 → "$847,000".
// Redondea half-even, así el punto medio de una banda de disclosure
// ($50,001 - $100,000 → 75000.5) se imprime como "$75,000".
func FormatUSD(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	return "$" + humanize.Comma(decimal.NewFromFloat(v).RoundBank(0).IntPart())
}
