package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const polymarketEventBase = "https://polymarket.com/event/"

// ErrInvalidMarket indica que un snapshot no tiene los campos mínimos para analizarse.
var ErrInvalidMarket = errors.New("invalid market snapshot")

// MarketSnapshot representa el estado puntual de un mercado binario de Polymarket.
// Se construye una vez por fetch y no se muta durante el análisis.
type MarketSnapshot struct {
	ID          string
	Question    string
	Slug        string
	YesPrice    float64 // precio del token YES, independiente de NoPrice
	NoPrice     float64 // precio del token NO (YesPrice + NoPrice no suma 1 necesariamente)
	Volume24h   float64
	TotalVolume float64
	Liquidity   float64
	EndDate     *time.Time // nil si el mercado no tiene fecha de resolución
	Category    string
	Tokens      []Token
}

// Token es uno de los outcomes del mercado.
type Token struct {
	Outcome string // "Yes" | "No"
	TokenID string
	Price   float64
}

// YesToken devuelve el token cuyo outcome es "yes" (case-insensitive).
func (m MarketSnapshot) YesToken() (Token, bool) {
	for _, t := range m.Tokens {
		if strings.EqualFold(t.Outcome, "yes") {
			return t, true
		}
	}
	return Token{}, false
}

// TradeURL es el link directo para operar el mercado.
func (m MarketSnapshot) TradeURL() string {
	slug := m.Slug
	if slug == "" {
		slug = m.ID
	}
	return polymarketEventBase + slug
}

// PriceFor devuelve el precio del lado elegido. ABSTAIN no tiene precio.
func (m MarketSnapshot) PriceFor(p Position) float64 {
	switch p {
	case PositionYes:
		return m.YesPrice
	case PositionNo:
		return m.NoPrice
	case PositionAbstain:
		return 0
	}
	return 0
}

// DaysToResolution devuelve los días completos hasta EndDate respecto a now.
// Redondea hacia abajo, de modo que 36h son 1 día y -2h son -1 días.
// ok es false si el mercado no tiene fecha.
func (m MarketSnapshot) DaysToResolution(now time.Time) (days int, ok bool) {
	if m.EndDate == nil {
		return 0, false
	}
	d := m.EndDate.Sub(now)
	return int(math.Floor(d.Hours() / 24)), true
}

// Validate comprueba que el snapshot sea analizable.
func (m MarketSnapshot) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidMarket)
	}
	for name, v := range map[string]float64{
		"yes_price": m.YesPrice,
		"no_price":  m.NoPrice,
	} {
		if math.IsNaN(v) || v <= 0 || v >= 1 {
			return fmt.Errorf("%w: %s %v out of (0,1)", ErrInvalidMarket, name, v)
		}
	}
	for name, v := range map[string]float64{
		"volume_24h":   m.Volume24h,
		"total_volume": m.TotalVolume,
		"liquidity":    m.Liquidity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s %v", ErrInvalidMarket, name, v)
		}
	}
	return nil
}

// TruncateQuestion devuelve la pregunta truncada a maxLen caracteres.
// Si la pregunta está vacía usa el id como fallback.
func TruncateQuestion(question, id string, maxLen int) string {
	q := question
	if q == "" {
		q = id
	}
	r := []rune(q)
	if len(r) > maxLen {
		q = string(r[:maxLen-3]) + "..."
	}
	return q
}
