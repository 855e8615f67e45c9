package demo

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	bookLevels = 4
	tickSize   = 0.01
)

// Provider genera mercados, orderbooks y disclosures sintéticos. Para una
// misma semilla y el mismo instante de referencia la salida es idéntica.
// Implementa ports.MarketProvider, ports.BookProvider y ports.DisclosureProvider.
type Provider struct {
	markets []domain.MarketSnapshot
	books   map[string]domain.OrderBook
	trades  []domain.LegislativeTrade
}

// NewSource devuelve el generador PCG que usa nomnom para una semilla.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// New construye todo el universo sintético de una vez a partir del generador
// dado. La salida es función únicamente del estado de src y de now.
func New(src rand.Source, now time.Time) *Provider {
	r := rand.New(src)
	p := &Provider{books: make(map[string]domain.OrderBook)}

	for i, tpl := range marketTemplates {
		m := buildMarket(r, i+1, tpl, now)
		p.markets = append(p.markets, m)
		yes, _ := m.YesToken()
		p.books[yes.TokenID] = buildBook(r, yes.TokenID, m.YesPrice, m.Liquidity)
	}

	for _, tpl := range tradeTemplates {
		p.trades = append(p.trades, buildTrade(r, tpl, now))
	}
	sort.SliceStable(p.trades, func(i, j int) bool {
		return p.trades[i].TradeDate.After(p.trades[j].TradeDate)
	})
	return p
}

// FetchMarkets devuelve los mercados ordenados por volumen 24h descendente.
func (p *Provider) FetchMarkets(_ context.Context, limit int) ([]domain.MarketSnapshot, error) {
	out := make([]domain.MarketSnapshot, len(p.markets))
	copy(out, p.markets)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Volume24h > out[j].Volume24h })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// GetMarketBySlug busca un mercado sintético por slug o id.
func (p *Provider) GetMarketBySlug(_ context.Context, slug string) (domain.MarketSnapshot, error) {
	for _, m := range p.markets {
		if m.Slug == slug || m.ID == slug {
			return m, nil
		}
	}
	return domain.MarketSnapshot{}, fmt.Errorf("demo.GetMarketBySlug %q: market not found", slug)
}

// FetchOrderBook devuelve el book del token; un token desconocido es un book vacío.
func (p *Provider) FetchOrderBook(_ context.Context, tokenID string) domain.BookFetch {
	return domain.BookFetched(p.books[tokenID])
}

// FetchDisclosures filtra por cámara (ChamberUnknown = ambas) y fecha.
func (p *Provider) FetchDisclosures(_ context.Context, chamber domain.Chamber, since time.Time) ([]domain.LegislativeTrade, error) {
	out := make([]domain.LegislativeTrade, 0, len(p.trades))
	for _, t := range p.trades {
		if chamber != domain.ChamberUnknown && t.Chamber != chamber {
			continue
		}
		if t.TradeDate.Before(since) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func buildMarket(r *rand.Rand, id int, tpl marketTemplate, now time.Time) domain.MarketSnapshot {
	yes := clamp(round2(tpl.yesPrice+jitter(r, 0.05)), 0.03, 0.97)
	no := round2(1 - yes)
	end := now.Add(time.Duration(tpl.days) * 24 * time.Hour).UTC()
	mid := fmt.Sprintf("demo-%d", id)

	return domain.MarketSnapshot{
		ID:          mid,
		Question:    tpl.question,
		Slug:        tpl.slug,
		Category:    tpl.category,
		YesPrice:    yes,
		NoPrice:     no,
		Volume24h:   math.Round(tpl.volume24h * (0.6 + r.Float64()*1.2)),
		TotalVolume: tpl.total,
		Liquidity:   tpl.liquidity,
		EndDate:     &end,
		Tokens: []domain.Token{
			{Outcome: "Yes", TokenID: mid + "-yes", Price: yes},
			{Outcome: "No", TokenID: mid + "-no", Price: no},
		},
	}
}

// buildBook reparte un volumen proporcional a la liquidez entre bids y asks
// con un sesgo aleatorio en [-0.6, 0.6].
func buildBook(r *rand.Rand, tokenID string, mid, liquidity float64) domain.OrderBook {
	base := liquidity / 200
	skew := jitter(r, 0.6)
	book := domain.OrderBook{TokenID: tokenID}
	book.Bids = buildSide(r, mid, -tickSize, base*(1+skew))
	book.Asks = buildSide(r, mid, tickSize, base*(1-skew))
	return book
}

func buildSide(r *rand.Rand, mid, step, total float64) []domain.BookEntry {
	weights := make([]float64, bookLevels)
	var sum float64
	for i := range weights {
		weights[i] = 0.5 + r.Float64()
		sum += weights[i]
	}
	entries := make([]domain.BookEntry, 0, bookLevels)
	for i, w := range weights {
		price := round2(mid + step*float64(i+1))
		if price <= 0 || price >= 1 {
			continue
		}
		entries = append(entries, domain.BookEntry{
			Price: price,
			Size:  math.Round(total * w / sum),
		})
	}
	return entries
}

func buildTrade(r *rand.Rand, tpl tradeTemplate, now time.Time) domain.LegislativeTrade {
	day := now.UTC().Truncate(24 * time.Hour)
	tradeDate := day.AddDate(0, 0, -(tpl.tradeAgo + r.IntN(3)))
	source := "https://disclosures-clerk.house.gov/"
	if tpl.chamber == domain.ChamberSenate {
		source = "https://efdsearch.senate.gov/"
	}
	return domain.LegislativeTrade{
		Politician:     tpl.politician,
		Party:          tpl.party,
		Chamber:        tpl.chamber,
		State:          tpl.state,
		Ticker:         tpl.ticker,
		Company:        tpl.company,
		TradeType:      tpl.tradeType,
		AmountLow:      tpl.amountLow,
		AmountHigh:     tpl.amountHigh,
		TradeDate:      tradeDate,
		DisclosureDate: tradeDate.AddDate(0, 0, tpl.delay),
		SourceURL:      source,
	}
}

// jitter devuelve un valor uniforme en [-amp, amp].
func jitter(r *rand.Rand, amp float64) float64 {
	return (r.Float64()*2 - 1) * amp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
