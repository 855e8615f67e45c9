package detector

import (
	"fmt"
	"math"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	// volumeBaselineDays asume ~30 días de vida para estimar el volumen diario esperado.
	volumeBaselineDays = 30
	volumeSpikeRatio   = 2.0
	volumeRatioScale   = 5.0
	highVolumeFloor    = 100_000
	highVolumeScore    = 0.3
)

// Volume detecta volumen 24h anómalo respecto al promedio diario histórico.
//
//	expected = total_volume / 30
//	ratio    = volume_24h / expected
//	score    = min((ratio − 1) / 5, 1)   si ratio > 2
//
// Un volumen 24h > 100k eleva el score a 0.3 como mínimo, independientemente del ratio.
func Volume(m domain.MarketSnapshot) domain.SubScore {
	out := domain.SubScore{Type: domain.SignalVolumeSpike}
	if m.TotalVolume <= 0 {
		return out
	}

	expected := m.TotalVolume / volumeBaselineDays
	ratio := m.Volume24h / expected
	if ratio > volumeSpikeRatio {
		out.Score = math.Min((ratio-1)/volumeRatioScale, 1)
		out.Evidence = append(out.Evidence, fmt.Sprintf(
			"Volume spike: %.1fx normal (%s in 24h)", ratio, domain.FormatUSD(m.Volume24h),
		))
	}

	if m.Volume24h > highVolumeFloor {
		out.Score = math.Max(out.Score, highVolumeScore)
		out.Evidence = append(out.Evidence, "High absolute volume: "+domain.FormatUSD(m.Volume24h))
	}

	out.Score = domain.Clamp01(out.Score)
	return out
}
