package detector

import (
	"fmt"
	"math"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	convictionLow       = 0.15
	convictionHigh      = 0.85
	convictionMinVolume = 10_000
	convictionWeight    = 0.5
	discoveryLow        = 0.45
	discoveryHigh       = 0.55
	discoveryMinVolume  = 50_000
	discoveryFloorScore = 0.3
)

// Momentum puntúa dos patrones de precio independientes y se queda con el mayor:
//   - convicción: yes_price fuera de [0.15, 0.85] con volumen 24h > 10k
//     → |yes_price − 0.5| × 2 × 0.5
//   - price discovery: yes_price en [0.45, 0.55] con volumen 24h > 50k → 0.3
func Momentum(m domain.MarketSnapshot) domain.SubScore {
	out := domain.SubScore{Type: domain.SignalPriceMomentum}
	p := m.YesPrice

	if (p > convictionHigh || p < convictionLow) && m.Volume24h > convictionMinVolume {
		conviction := math.Abs(p-0.5) * 2
		out.Score = conviction * convictionWeight
		out.Evidence = append(out.Evidence, fmt.Sprintf(
			"High conviction: %.0f%% YES with %s volume", p*100, domain.FormatUSD(m.Volume24h),
		))
	}

	if p >= discoveryLow && p <= discoveryHigh && m.Volume24h > discoveryMinVolume {
		out.Score = math.Max(out.Score, discoveryFloorScore)
		out.Evidence = append(out.Evidence, fmt.Sprintf(
			"Active price discovery: %.0f%% with high volume", p*100,
		))
	}

	out.Score = domain.Clamp01(out.Score)
	return out
}
