package scanner

import (
	"context"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/domain/detector"
	"github.com/alejandrodnm/nomnom/internal/domain/ensemble"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

// Analyzer ejecuta los cinco detectores sobre un mercado y fusiona el resultado.
// No guarda estado entre mercados: puede usarse desde varios goroutines.
type Analyzer struct {
	books ports.BookProvider
	now   func() time.Time
}

// NewAnalyzer crea un Analyzer. Si books es nil el detector de imbalance
// siempre ve un book vacío; si now es nil usa time.Now.
func NewAnalyzer(books ports.BookProvider, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{books: books, now: now}
}

// Analyze calcula los sub-scores, la confianza combinada, la señal dominante
// y la dirección para un mercado. Siempre devuelve una señal; filtrar por
// ReportFloor es responsabilidad del caller.
func (a *Analyzer) Analyze(ctx context.Context, m domain.MarketSnapshot, trades []domain.LegislativeTrade) domain.InsiderSignal {
	fetch := a.fetchYesBook(ctx, m)

	volume := detector.Volume(m)
	imbalance, direction := detector.Imbalance(fetch)
	congress := detector.Congress(m, trades)
	momentum := detector.Momentum(m)
	timing := detector.Timing(m, a.now())

	scores := []domain.SubScore{volume, imbalance, congress, momentum, timing}
	res := ensemble.Combine(scores)
	position, edge := ensemble.ResolveDirection(direction)

	return domain.InsiderSignal{
		Market:       m,
		SignalType:   res.Dominant,
		Confidence:   res.Confidence,
		Evidence:     res.Evidence,
		Position:     position,
		ExpectedEdge: edge,
		SubScores:    scores,
		BookStatus:   fetch.Status,
	}
}

// fetchYesBook pide el book del token YES. Sin token no hay nada que pedir.
func (a *Analyzer) fetchYesBook(ctx context.Context, m domain.MarketSnapshot) domain.BookFetch {
	tok, ok := m.YesToken()
	if !ok || tok.TokenID == "" || a.books == nil {
		return domain.BookFetch{Status: domain.FetchEmpty}
	}
	return a.books.FetchOrderBook(ctx, tok.TokenID)
}
