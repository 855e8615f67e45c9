package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidTrade indica un registro de disclosure inutilizable.
var ErrInvalidTrade = errors.New("invalid legislative trade")

// Chamber es la cámara del legislador.
type Chamber int

const (
	ChamberUnknown Chamber = iota
	ChamberHouse
	ChamberSenate
)

func (c Chamber) String() string {
	switch c {
	case ChamberHouse:
		return "House"
	case ChamberSenate:
		return "Senate"
	case ChamberUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("Chamber(%d)", int(c))
}

// ParseChamber acepta "house" / "senate" en cualquier capitalización.
func ParseChamber(s string) (Chamber, bool) {
	switch {
	case strings.EqualFold(s, "house"):
		return ChamberHouse, true
	case strings.EqualFold(s, "senate"):
		return ChamberSenate, true
	}
	return ChamberUnknown, false
}

// TradeType es el sentido de la operación declarada.
type TradeType int

const (
	TradeOther TradeType = iota
	TradeBuy
	TradeSell
)

func (t TradeType) String() string {
	switch t {
	case TradeBuy:
		return "buy"
	case TradeSell:
		return "sell"
	case TradeOther:
		return "other"
	}
	return fmt.Sprintf("TradeType(%d)", int(t))
}

// ParseTradeType interpreta el tipo declarado ("Purchase", "Sale (Partial)",
// "sale_full", "buy", ...). Lo que no es compra ni venta es TradeOther.
func ParseTradeType(s string) TradeType {
	raw := strings.ToLower(s)
	switch {
	case strings.Contains(raw, "purchase"), raw == "buy":
		return TradeBuy
	case strings.Contains(raw, "sale"), raw == "sell":
		return TradeSell
	}
	return TradeOther
}

// LegislativeTrade es una operación bursátil declarada por un cargo público.
type LegislativeTrade struct {
	Politician     string
	Party          string
	Chamber        Chamber
	State          string
	Ticker         string
	Company        string // descripción del activo
	TradeType      TradeType
	AmountLow      float64 // banda declarada
	AmountHigh     float64
	TradeDate      time.Time
	DisclosureDate time.Time
	SourceURL      string
}

// AmountMidpoint es el tamaño estimado (punto medio de la banda).
func (t LegislativeTrade) AmountMidpoint() float64 {
	return (t.AmountLow + t.AmountHigh) / 2
}

// DisclosureDelayDays devuelve los días entre la operación y su publicación.
func (t LegislativeTrade) DisclosureDelayDays() int {
	return int(math.Floor(t.DisclosureDate.Sub(t.TradeDate).Hours() / 24))
}

// Validate descarta registros sin fecha o con bandas incoherentes.
func (t LegislativeTrade) Validate() error {
	if t.TradeDate.IsZero() {
		return fmt.Errorf("%w: missing trade date", ErrInvalidTrade)
	}
	if t.AmountLow < 0 || t.AmountHigh < t.AmountLow {
		return fmt.Errorf("%w: amount band %v-%v", ErrInvalidTrade, t.AmountLow, t.AmountHigh)
	}
	return nil
}
