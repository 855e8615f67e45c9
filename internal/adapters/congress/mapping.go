package congress

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	houseDateLayout  = "2006-01-02"
	senateDateLayout = "01/02/2006"

	houseSourceURL  = "https://disclosures-clerk.house.gov/"
	senateSourceURL = "https://efdsearch.senate.gov/"

	unknownPolitician = "Unknown"
)

// Banda mínima de declaración, usada cuando el importe no se reconoce.
const (
	minBandLow  = 1_001
	minBandHigh = 15_000
)

// amountBands son las bandas estándar de los formularios PTR, ya normalizadas
// (sin "$" ni comas, en minúsculas).
var amountBands = []struct {
	key       string
	low, high float64
}{
	{"1001 - 15000", 1_001, 15_000},
	{"15001 - 50000", 15_001, 50_000},
	{"50001 - 100000", 50_001, 100_000},
	{"100001 - 250000", 100_001, 250_000},
	{"250001 - 500000", 250_001, 500_000},
	{"500001 - 1000000", 500_001, 1_000_000},
	{"1000001 - 5000000", 1_000_001, 5_000_000},
	{"5000001 - 25000000", 5_000_001, 25_000_000},
	{"25000001 - 50000000", 25_000_001, 50_000_000},
	{"over 50000000", 50_000_000, 100_000_000},
}

// ParseAmountRange interpreta una banda de importe ("$1,001 - $15,000",
// "Over $50,000,000"). Si no es una banda estándar intenta "a - b" literal y
// en último caso devuelve la banda mínima.
func ParseAmountRange(raw string) (low, high float64) {
	clean := strings.NewReplacer("$", "", ",", "").Replace(raw)
	norm := strings.ToLower(strings.TrimSpace(clean))

	for _, b := range amountBands {
		if strings.Contains(norm, b.key) {
			return b.low, b.high
		}
	}

	if parts := strings.Split(norm, "-"); len(parts) == 2 {
		lo, errLo := decimal.NewFromString(strings.TrimSpace(parts[0]))
		hi, errHi := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if errLo == nil && errHi == nil {
			return lo.InexactFloat64(), hi.InexactFloat64()
		}
	}

	return minBandLow, minBandHigh
}

// parseFeed decodifica el volcado registro a registro: un registro con tipos
// inesperados se descarta sin invalidar el resto.
func parseFeed(chamber domain.Chamber, body []byte) (trades []domain.LegislativeTrade, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode feed: %w", err)
	}

	trades = make([]domain.LegislativeTrade, 0, len(raw))
	for _, item := range raw {
		var r feedRecord
		if err := json.Unmarshal(item, &r); err != nil {
			skipped++
			continue
		}
		t, err := mapRecord(chamber, r)
		if err != nil {
			skipped++
			continue
		}
		trades = append(trades, t)
	}
	return trades, skipped, nil
}

// mapRecord convierte un feedRecord a domain.LegislativeTrade.
func mapRecord(chamber domain.Chamber, r feedRecord) (domain.LegislativeTrade, error) {
	layout, politician, source := houseDateLayout, r.Representative, houseSourceURL
	if chamber == domain.ChamberSenate {
		layout, politician, source = senateDateLayout, r.Senator, senateSourceURL
	}

	if r.TransactionDate == "" {
		return domain.LegislativeTrade{}, fmt.Errorf("%w: missing transaction date", domain.ErrInvalidTrade)
	}
	tradeDate, err := time.Parse(layout, strings.TrimSpace(r.TransactionDate))
	if err != nil {
		return domain.LegislativeTrade{}, fmt.Errorf("%w: transaction date %q", domain.ErrInvalidTrade, r.TransactionDate)
	}

	disclosureDate := tradeDate
	if r.DisclosureDate != "" {
		if d, err := time.Parse(layout, strings.TrimSpace(r.DisclosureDate)); err == nil {
			disclosureDate = d
		}
	}

	if politician == "" {
		politician = unknownPolitician
	}
	if r.PTRLink != "" {
		source = r.PTRLink
	}

	low, high := ParseAmountRange(r.Amount)

	t := domain.LegislativeTrade{
		Politician:     politician,
		Party:          r.Party,
		Chamber:        chamber,
		State:          r.State,
		Ticker:         r.Ticker,
		Company:        r.AssetDescription,
		TradeType:      domain.ParseTradeType(r.Type),
		AmountLow:      low,
		AmountHigh:     high,
		TradeDate:      tradeDate,
		DisclosureDate: disclosureDate,
		SourceURL:      source,
	}
	if err := t.Validate(); err != nil {
		return domain.LegislativeTrade{}, err
	}
	return t, nil
}
