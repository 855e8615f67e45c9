package congress

import (
	"strings"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// Umbrales de operación inusual.
const (
	unusualAmountHigh = 100_000
	quickDisclosure   = 7 // días
)

// sectorKeywords asocia cada sector con palabras del nombre de la empresa.
var sectorKeywords = map[string][]string{
	"tech":    {"apple", "google", "microsoft", "meta", "amazon", "nvidia"},
	"finance": {"jpmorgan", "bank", "goldman", "morgan stanley", "wells fargo"},
	"defense": {"lockheed", "raytheon", "northrop", "boeing", "general dynamics"},
	"pharma":  {"pfizer", "moderna", "johnson", "merck", "eli lilly"},
	"energy":  {"exxon", "chevron", "conocophillips", "schlumberger"},
}

// Sectors devuelve los sectores reconocidos por BySector.
func Sectors() []string {
	return []string{"tech", "finance", "defense", "pharma", "energy"}
}

// Since devuelve las operaciones con trade_date >= since.
func Since(trades []domain.LegislativeTrade, since time.Time) []domain.LegislativeTrade {
	out := make([]domain.LegislativeTrade, 0, len(trades))
	for _, t := range trades {
		if !t.TradeDate.Before(since) {
			out = append(out, t)
		}
	}
	return out
}

// ByChamber filtra por cámara. ChamberUnknown no filtra.
func ByChamber(trades []domain.LegislativeTrade, chamber domain.Chamber) []domain.LegislativeTrade {
	if chamber == domain.ChamberUnknown {
		return trades
	}
	out := make([]domain.LegislativeTrade, 0, len(trades))
	for _, t := range trades {
		if t.Chamber == chamber {
			out = append(out, t)
		}
	}
	return out
}

// BySector filtra por palabras clave del sector en la descripción del activo.
// Un sector desconocido no filtra.
func BySector(trades []domain.LegislativeTrade, sector string) []domain.LegislativeTrade {
	keywords := sectorKeywords[strings.ToLower(sector)]
	if len(keywords) == 0 {
		return trades
	}
	out := make([]domain.LegislativeTrade, 0, len(trades))
	for _, t := range trades {
		company := strings.ToLower(t.Company)
		for _, kw := range keywords {
			if strings.Contains(company, kw) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// UnusualReasons devuelve por qué una operación es llamativa:
// "large_amount" (banda alta >= $100k) y/o "quick_disclosure" (<= 7 días).
func UnusualReasons(t domain.LegislativeTrade) []string {
	var reasons []string
	if t.AmountHigh >= unusualAmountHigh {
		reasons = append(reasons, "large_amount")
	}
	if t.DisclosureDelayDays() <= quickDisclosure {
		reasons = append(reasons, "quick_disclosure")
	}
	return reasons
}

// Unusual filtra las operaciones con al menos un motivo de UnusualReasons.
func Unusual(trades []domain.LegislativeTrade) []domain.LegislativeTrade {
	out := make([]domain.LegislativeTrade, 0, len(trades))
	for _, t := range trades {
		if len(UnusualReasons(t)) > 0 {
			out = append(out, t)
		}
	}
	return out
}
