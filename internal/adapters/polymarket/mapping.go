package polymarket

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// defaultOutcomePrice es el precio asumido cuando Gamma no trae el outcome.
const defaultOutcomePrice = 0.5

// mapGammaMarkets convierte los DTOs de Gamma a snapshots válidos.
// Los mercados malformados se descartan sin abortar el resto.
func mapGammaMarkets(raw []gammaMarket) (markets []domain.MarketSnapshot, skipped int) {
	markets = make([]domain.MarketSnapshot, 0, len(raw))
	for _, r := range raw {
		m, err := mapGammaMarket(r)
		if err != nil {
			skipped++
			continue
		}
		markets = append(markets, m)
	}
	return markets, skipped
}

// mapGammaMarket convierte un gammaMarket DTO a domain.MarketSnapshot.
func mapGammaMarket(r gammaMarket) (domain.MarketSnapshot, error) {
	m := domain.MarketSnapshot{
		ID:       r.ID,
		Question: r.Question,
		Slug:     r.Slug,
		Category: r.Category,
		YesPrice: defaultOutcomePrice,
		NoPrice:  defaultOutcomePrice,
	}
	if m.Slug == "" {
		m.Slug = r.ID
	}

	var err error
	if m.Volume24h, err = numberOrZero(r.Volume24h); err != nil {
		return m, fmt.Errorf("volume24hr: %w", err)
	}
	if m.TotalVolume, err = numberOrZero(r.Volume); err != nil {
		return m, fmt.Errorf("volume: %w", err)
	}
	if m.Liquidity, err = numberOrZero(r.Liquidity); err != nil {
		return m, fmt.Errorf("liquidity: %w", err)
	}

	tokens, err := mapTokens(r)
	if err != nil {
		return m, err
	}
	m.Tokens = tokens
	for _, t := range tokens {
		switch strings.ToLower(t.Outcome) {
		case "yes":
			m.YesPrice = t.Price
		case "no":
			m.NoPrice = t.Price
		}
	}

	if r.EndDate != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, r.EndDate); err == nil {
				end := t.UTC()
				m.EndDate = &end
				break
			}
		}
	}

	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// mapTokens extrae los outcomes: primero la lista de tokens, si no existe
// los arrays codificados en strings.
func mapTokens(r gammaMarket) ([]domain.Token, error) {
	if len(r.Tokens) > 0 {
		tokens := make([]domain.Token, 0, len(r.Tokens))
		for _, t := range r.Tokens {
			price := defaultOutcomePrice
			if t.Price != "" {
				p, err := t.Price.Float64()
				if err != nil {
					return nil, fmt.Errorf("token price: %w", err)
				}
				price = p
			}
			tokens = append(tokens, domain.Token{Outcome: t.Outcome, TokenID: t.TokenID, Price: price})
		}
		return tokens, nil
	}

	if r.Outcomes == "" {
		return nil, nil
	}

	var outcomes, prices, ids []string
	if err := json.Unmarshal([]byte(r.Outcomes), &outcomes); err != nil {
		return nil, fmt.Errorf("outcomes: %w", err)
	}
	if r.OutcomePrices != "" {
		if err := json.Unmarshal([]byte(r.OutcomePrices), &prices); err != nil {
			return nil, fmt.Errorf("outcomePrices: %w", err)
		}
	}
	if r.ClobTokenIDs != "" {
		if err := json.Unmarshal([]byte(r.ClobTokenIDs), &ids); err != nil {
			return nil, fmt.Errorf("clobTokenIds: %w", err)
		}
	}

	tokens := make([]domain.Token, 0, len(outcomes))
	for i, o := range outcomes {
		t := domain.Token{Outcome: o, Price: defaultOutcomePrice}
		if i < len(prices) {
			p, err := decimal.NewFromString(prices[i])
			if err != nil {
				return nil, fmt.Errorf("outcome price %q: %w", prices[i], err)
			}
			t.Price = p.InexactFloat64()
		}
		if i < len(ids) {
			t.TokenID = ids[i]
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func numberOrZero(n json.Number) (float64, error) {
	if n == "" {
		return 0, nil
	}
	return n.Float64()
}

// mapOrderBook convierte la respuesta de /book a domain.OrderBook.
// Los tamaños se parsean con decimal para no perder precisión en la suma de volúmenes.
func mapOrderBook(tokenID string, r orderBookResponse) domain.OrderBook {
	if r.AssetID != "" {
		tokenID = r.AssetID
	}
	return domain.OrderBook{
		TokenID: tokenID,
		Bids:    mapBookEntries(r.Bids),
		Asks:    mapBookEntries(r.Asks),
	}
}

// mapBookEntries convierte entries raw a domain.BookEntry.
// Los niveles con precio o tamaño inválido o no positivo se descartan.
func mapBookEntries(raw []bookEntryRaw) []domain.BookEntry {
	entries := make([]domain.BookEntry, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.Price)
		if err != nil || !price.IsPositive() {
			continue
		}
		size, err := decimal.NewFromString(r.Size)
		if err != nil || !size.IsPositive() {
			continue
		}
		entries = append(entries, domain.BookEntry{
			Price: price.InexactFloat64(),
			Size:  size.InexactFloat64(),
		})
	}
	return entries
}
