package domain

import "fmt"

// Position es la recomendación direccional para un mercado.
type Position int

const (
	PositionAbstain Position = iota
	PositionYes
	PositionNo
)

func (p Position) String() string {
	switch p {
	case PositionYes:
		return "YES"
	case PositionNo:
		return "NO"
	case PositionAbstain:
		return "ABSTAIN"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Label es la acción de trading ("BUY YES" / "BUY NO"). Vacío para ABSTAIN.
func (p Position) Label() string {
	switch p {
	case PositionYes:
		return "BUY YES"
	case PositionNo:
		return "BUY NO"
	case PositionAbstain:
		return ""
	}
	return ""
}

// SignalType identifica cada sub-detector.
// El orden de declaración es también la prioridad de desempate.
type SignalType int

const (
	SignalOrderImbalance SignalType = iota
	SignalVolumeSpike
	SignalCongressCorrelation
	SignalPriceMomentum
	SignalTimingPattern
)

// String devuelve el nombre serializado del tipo de señal.
func (s SignalType) String() string {
	switch s {
	case SignalOrderImbalance:
		return "order_imbalance"
	case SignalVolumeSpike:
		return "volume_spike"
	case SignalCongressCorrelation:
		return "congress_correlation"
	case SignalPriceMomentum:
		return "price_momentum"
	case SignalTimingPattern:
		return "timing_pattern"
	}
	return fmt.Sprintf("SignalType(%d)", int(s))
}

// Description es el texto humano asociado a la señal dominante.
func (s SignalType) Description() string {
	switch s {
	case SignalOrderImbalance:
		return "Significant order flow imbalance"
	case SignalVolumeSpike:
		return "Unusual volume activity detected"
	case SignalCongressCorrelation:
		return "Congressional trading correlation"
	case SignalPriceMomentum:
		return "Strong price momentum pattern"
	case SignalTimingPattern:
		return "Timing aligned with disclosure windows"
	}
	return "Multiple signals detected"
}

// SubScore es la salida de un sub-detector: score en [0,1] más evidencia.
type SubScore struct {
	Type     SignalType
	Score    float64
	Evidence []string
}

// InsiderSignal es el resultado de la fusión de señales para un mercado.
type InsiderSignal struct {
	Market       MarketSnapshot
	SignalType   SignalType // señal dominante
	Confidence   float64    // [0,1]
	Evidence     []string
	Position     Position
	ExpectedEdge float64 // [0, 0.15]
	SubScores    []SubScore
	BookStatus   FetchStatus // resultado del fetch del book YES
}

// Description es la descripción de la señal dominante.
func (s InsiderSignal) Description() string {
	return s.SignalType.Description()
}
