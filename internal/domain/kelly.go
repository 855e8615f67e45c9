package domain

import "math"

const (
	kellyMultiplier  = 0.5  // half-Kelly
	maxKellyFraction = 0.25 // nunca más del 25% del bankroll
)

// KellyFraction calcula la fracción del bankroll a apostar con half-Kelly.
//
// Fórmula:
//
//	marketProb = 1 / odds
//	trueProb   = marketProb + edge
//	kelly      = (trueProb × odds − 1) / (odds − 1)
//	result     = clamp(kelly × 0.5, 0, 0.25)
//
// Devuelve exactamente 0 si edge <= 0 o odds <= 1.
func KellyFraction(edge, odds float64) float64 {
	if edge <= 0 || odds <= 1 || math.IsNaN(edge) || math.IsNaN(odds) || math.IsInf(odds, 0) {
		return 0
	}
	marketProb := 1 / odds
	trueProb := marketProb + edge
	kelly := (trueProb*odds - 1) / (odds - 1)
	return clamp(kelly*kellyMultiplier, 0, maxKellyFraction)
}

// StakeForPrice convierte un precio de mercado en cuotas decimales y aplica KellyFraction.
// Precios fuera de (0,1) devuelven 0.
func StakeForPrice(edge, price float64) float64 {
	if price <= 0 || price >= 1 || math.IsNaN(price) {
		return 0
	}
	return KellyFraction(edge, 1/price)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limita v al intervalo [0,1]. NaN se trata como 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}
