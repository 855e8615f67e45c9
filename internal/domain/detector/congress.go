package detector

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	congressMinAmount     = 50_000
	congressScorePerTrade = 0.2
	congressMaxEvidence   = 3
)

// Topic asocia un tema político a las keywords que lo delatan en la pregunta
// del mercado y en la descripción del activo operado.
type Topic struct {
	Key      string
	Keywords []string
}

// PoliticalTopics es la tabla de temas en orden de evaluación.
var PoliticalTopics = []Topic{
	{Key: "president", Keywords: []string{"policy", "executive", "administration"}},
	{Key: "congress", Keywords: []string{"bill", "legislation", "law"}},
	{Key: "fed", Keywords: []string{"interest", "rate", "monetary"}},
	{Key: "sec", Keywords: []string{"securities", "regulation", "crypto"}},
	{Key: "trade", Keywords: []string{"tariff", "import", "export"}},
	{Key: "defense", Keywords: []string{"military", "pentagon", "war"}},
	{Key: "healthcare", Keywords: []string{"medicare", "medicaid", "drug"}},
	{Key: "tech", Keywords: []string{"antitrust", "regulation", "privacy"}},
}

// activeTopics devuelve los temas presentes en la pregunta: la key como palabra
// completa ("fed", no "federal") o cualquiera de sus keywords como substring.
// Reconocer la key amplía el matching por keywords: "Will the Fed hold?" activa
// el tema fed aunque la pregunta no mencione interest, rate ni monetary.
func activeTopics(question string) []Topic {
	q := strings.ToLower(question)
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = true
	}

	var active []Topic
	for _, t := range PoliticalTopics {
		if words[t.Key] || containsAny(q, t.Keywords) {
			active = append(active, t)
		}
	}
	return active
}

// Congress correlaciona el mercado con operaciones declaradas por legisladores.
// Cuenta las operaciones con amount_high >= 50k cuyo activo coincide con algún
// tema activo de la pregunta. score = min(count × 0.2, 1).
func Congress(m domain.MarketSnapshot, trades []domain.LegislativeTrade) domain.SubScore {
	out := domain.SubScore{Type: domain.SignalCongressCorrelation}

	topics := activeTopics(m.Question)
	if len(topics) == 0 {
		return out
	}

	var relevant []domain.LegislativeTrade
	for _, tr := range trades {
		if tr.AmountHigh < congressMinAmount {
			continue
		}
		company := strings.ToLower(tr.Company)
		for _, t := range topics {
			if containsAny(company, t.Keywords) {
				relevant = append(relevant, tr)
				break
			}
		}
	}

	if len(relevant) == 0 {
		return out
	}

	out.Score = math.Min(float64(len(relevant))*congressScorePerTrade, 1)
	for i, tr := range relevant {
		if i >= congressMaxEvidence {
			break
		}
		out.Evidence = append(out.Evidence, fmt.Sprintf(
			"Congressional trade: %s (%s) %s %s in %s",
			tr.Politician, tr.Party, tr.TradeType, domain.FormatUSD(tr.AmountMidpoint()), tr.Ticker,
		))
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
