package detector

import (
	"fmt"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	timingWindowDays = 7
	timingBaseScore  = 0.4
	timingHighScore  = 0.7
	timingHighVolume = 50_000
)

// Timing marca mercados a punto de resolverse (0 < días ≤ 7) como sospechosos:
// 0.4, o 0.7 si además el volumen 24h supera 50k. Sin fecha de fin → 0.
func Timing(m domain.MarketSnapshot, now time.Time) domain.SubScore {
	out := domain.SubScore{Type: domain.SignalTimingPattern}

	days, ok := m.DaysToResolution(now)
	if !ok || days <= 0 || days > timingWindowDays {
		return out
	}

	out.Score = timingBaseScore
	out.Evidence = append(out.Evidence, fmt.Sprintf("Near resolution: %d days remaining", days))

	if m.Volume24h > timingHighVolume {
		out.Score = timingHighScore
		out.Evidence = append(out.Evidence, "High volume near resolution")
	}
	return out
}
