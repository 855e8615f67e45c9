package detector

import (
	"fmt"
	"math"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	imbalanceThreshold = 0.3
	imbalanceScale     = 0.5
)

// Imbalance evalúa el order flow del token YES.
// Si |imbalance| > 0.3 el score es min(|imbalance|/0.5, 1) y el imbalance con signo
// se devuelve como direction, que es la única fuente de dirección del mercado.
// Un fetch fallido o vacío produce score 0, direction 0 y sin evidencia.
func Imbalance(fetch domain.BookFetch) (score domain.SubScore, direction float64) {
	score = domain.SubScore{Type: domain.SignalOrderImbalance}
	if fetch.Status != domain.FetchSuccess {
		return score, 0
	}

	imbalance := fetch.Book.Imbalance()
	if math.IsNaN(imbalance) || math.Abs(imbalance) <= imbalanceThreshold {
		return score, 0
	}

	score.Score = domain.Clamp01(math.Abs(imbalance) / imbalanceScale)
	if imbalance > 0 {
		score.Evidence = []string{fmt.Sprintf("Strong buy pressure: %.1f%% order imbalance", imbalance*100)}
	} else {
		score.Evidence = []string{fmt.Sprintf("Strong sell pressure: %.1f%% order imbalance", -imbalance*100)}
	}
	return score, imbalance
}
