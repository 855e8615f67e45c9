// Package ensemble fusiona los sub-scores en una confianza única y resuelve
// dirección, edge y señal dominante.
package ensemble

import (
	"math"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// ReportFloor es la confianza mínima para que un mercado se reporte.
const ReportFloor = 0.2

const (
	edgePerImbalance = 0.1
	maxEdge          = 0.15
)

// Weight es el peso fijo de un sub-detector en la combinación.
type Weight struct {
	Type   domain.SignalType
	Weight float64
}

// Weights es la tabla de pesos. Suma 1.0 y su orden es la prioridad de desempate
// para la señal dominante: ante igualdad de score gana el declarado antes.
var Weights = []Weight{
	{Type: domain.SignalOrderImbalance, Weight: 0.30},
	{Type: domain.SignalVolumeSpike, Weight: 0.20},
	{Type: domain.SignalCongressCorrelation, Weight: 0.25},
	{Type: domain.SignalPriceMomentum, Weight: 0.15},
	{Type: domain.SignalTimingPattern, Weight: 0.10},
}

// TotalWeight devuelve la suma de la tabla de pesos.
func TotalWeight() float64 {
	var total float64
	for _, w := range Weights {
		total += w.Weight
	}
	return total
}

// Result es la salida del combinador.
type Result struct {
	Confidence float64
	Dominant   domain.SignalType
	Evidence   []string
}

// Combine calcula Σ(score_i × weight_i) acotado a [0,1] y elige la señal dominante.
// Los sub-scores ausentes cuentan como 0; cada score se acota a [0,1] antes de ponderar.
func Combine(scores []domain.SubScore) Result {
	byType := make(map[domain.SignalType]domain.SubScore, len(scores))
	for _, s := range scores {
		byType[s.Type] = s
	}

	var (
		res       Result
		bestScore = math.Inf(-1)
	)
	for _, w := range Weights {
		s := byType[w.Type]
		v := domain.Clamp01(s.Score)
		res.Confidence += v * w.Weight
		// Estrictamente mayor: el primero declarado gana los empates.
		if v > bestScore {
			bestScore = v
			res.Dominant = w.Type
		}
	}

	// La evidencia se concatena en el orden de ejecución de los detectores.
	for _, s := range scores {
		res.Evidence = append(res.Evidence, s.Evidence...)
	}

	res.Confidence = domain.Clamp01(res.Confidence)
	return res
}

// Reportable devuelve true si la confianza alcanza ReportFloor.
func Reportable(confidence float64) bool {
	return confidence >= ReportFloor
}

// ResolveDirection traduce el imbalance con signo en posición y edge esperado.
// El edge es |direction| × 0.1 acotado a 0.15; direction 0 → ABSTAIN sin edge.
func ResolveDirection(direction float64) (domain.Position, float64) {
	switch {
	case direction > 0:
		return domain.PositionYes, math.Min(direction*edgePerImbalance, maxEdge)
	case direction < 0:
		return domain.PositionNo, math.Min(-direction*edgePerImbalance, maxEdge)
	default:
		return domain.PositionAbstain, 0
	}
}
