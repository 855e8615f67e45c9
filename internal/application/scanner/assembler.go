package scanner

import (
	"sort"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// Assemble convierte señales ya ordenadas por confianza descendente en
// recomendaciones. Descarta las que no alcanzan minConfidence y las ABSTAIN,
// y se detiene al llegar a maxResults. No reordena.
func Assemble(signals []domain.InsiderSignal, minConfidence float64, maxResults int) []domain.TradeRecommendation {
	recs := make([]domain.TradeRecommendation, 0)
	if maxResults <= 0 {
		return recs
	}
	for _, s := range signals {
		if s.Confidence < minConfidence {
			continue
		}
		if s.Position == domain.PositionAbstain {
			continue
		}
		recs = append(recs, toRecommendation(s))
		if len(recs) >= maxResults {
			break
		}
	}
	return recs
}

// toRecommendation dimensiona la posición con half-Kelly sobre el precio del lado elegido.
func toRecommendation(s domain.InsiderSignal) domain.TradeRecommendation {
	m := s.Market
	price := m.PriceFor(s.Position)
	stake := domain.StakeForPrice(s.ExpectedEdge, price)

	return domain.TradeRecommendation{
		MarketID:         m.ID,
		MarketQuestion:   m.Question,
		Position:         s.Position,
		Confidence:       s.Confidence,
		CurrentPrice:     price,
		ExpectedEdge:     s.ExpectedEdge,
		SuggestedSizePct: stake * 100,
		SignalType:       s.SignalType,
		Evidence:         s.Evidence,
		TradeURL:         m.TradeURL(),
		PolymarketURL:    m.TradeURL(),
		Expires:          m.EndDate,
	}
}

// rankSignals ordena por confianza descendente. Los empates se resuelven por
// el orden de declaración de la señal dominante y después por la posición
// del mercado en la entrada, de modo que la salida es determinista.
func rankSignals(in []indexedSignal) []domain.InsiderSignal {
	sort.Slice(in, func(i, j int) bool {
		a, b := in[i], in[j]
		if a.signal.Confidence != b.signal.Confidence {
			return a.signal.Confidence > b.signal.Confidence
		}
		if a.signal.SignalType != b.signal.SignalType {
			return a.signal.SignalType < b.signal.SignalType
		}
		return a.index < b.index
	})

	out := make([]domain.InsiderSignal, len(in))
	for i, s := range in {
		out[i] = s.signal
	}
	return out
}
