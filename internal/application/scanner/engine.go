package scanner

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/domain/ensemble"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

// EngineConfig configura el motor de fusión.
type EngineConfig struct {
	Workers int              // goroutines para análisis paralelo (0 = NumCPU*2)
	Now     func() time.Time // reloj para el detector de timing (nil = time.Now)
	Metrics ports.Metrics    // opcional
}

// Engine analiza un lote de mercados contra las operaciones legislativas
// y devuelve recomendaciones dimensionadas. Nunca falla: los registros
// inválidos se descartan y los books inaccesibles cuentan como neutros.
type Engine struct {
	analyzer *Analyzer
	workers  int
	metrics  ports.Metrics
}

// Outcome es el resultado detallado de un Run.
type Outcome struct {
	Signals         []domain.InsiderSignal // reportables, ordenadas
	Recommendations []domain.TradeRecommendation
	MarketsSkipped  int
	TradesSkipped   int
	BookFailures    int
}

// NewEngine crea un Engine que pide los books al provider dado.
func NewEngine(books ports.BookProvider, cfg EngineConfig) *Engine {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Engine{
		analyzer: NewAnalyzer(books, cfg.Now),
		workers:  cfg.Workers,
		metrics:  metrics,
	}
}

// Analyze devuelve como mucho maxResults recomendaciones con confianza >=
// minConfidence, ordenadas por confianza descendente.
func (e *Engine) Analyze(
	ctx context.Context,
	markets []domain.MarketSnapshot,
	trades []domain.LegislativeTrade,
	minConfidence float64,
	maxResults int,
) []domain.TradeRecommendation {
	return e.Run(ctx, markets, trades, minConfidence, maxResults).Recommendations
}

// Run es Analyze con el detalle de señales y descartes.
func (e *Engine) Run(
	ctx context.Context,
	markets []domain.MarketSnapshot,
	trades []domain.LegislativeTrade,
	minConfidence float64,
	maxResults int,
) Outcome {
	var out Outcome

	valid := make([]domain.MarketSnapshot, 0, len(markets))
	for _, m := range markets {
		if err := m.Validate(); err != nil {
			slog.Debug("skipping market", "market_id", m.ID, "err", err)
			out.MarketsSkipped++
			continue
		}
		valid = append(valid, m)
	}

	usable, skipped := usableTrades(trades)
	out.TradesSkipped = skipped

	analyzed := analyzeMarketsConcurrent(ctx, e.analyzer, valid, usable, e.workers)

	reportable := make([]indexedSignal, 0, len(analyzed))
	for _, s := range analyzed {
		e.metrics.ObserveBookFetch(s.signal.BookStatus)
		if s.signal.BookStatus == domain.FetchFailed {
			out.BookFailures++
		}
		if !ensemble.Reportable(s.signal.Confidence) {
			continue
		}
		reportable = append(reportable, s)
	}

	out.Signals = rankSignals(reportable)
	out.Recommendations = Assemble(out.Signals, minConfidence, maxResults)
	return out
}

// AnalyzeOne devuelve la señal completa de un mercado, sin filtrar por
// ReportFloor, para inspección individual.
func (e *Engine) AnalyzeOne(ctx context.Context, m domain.MarketSnapshot, trades []domain.LegislativeTrade) (domain.InsiderSignal, error) {
	if err := m.Validate(); err != nil {
		return domain.InsiderSignal{}, err
	}
	usable, _ := usableTrades(trades)
	s := e.analyzer.Analyze(ctx, m, usable)
	e.metrics.ObserveBookFetch(s.BookStatus)
	return s, nil
}

// usableTrades descarta los registros legislativos inválidos.
func usableTrades(trades []domain.LegislativeTrade) ([]domain.LegislativeTrade, int) {
	usable := make([]domain.LegislativeTrade, 0, len(trades))
	skipped := 0
	for _, t := range trades {
		if err := t.Validate(); err != nil {
			slog.Debug("skipping legislative trade", "politician", t.Politician, "err", err)
			skipped++
			continue
		}
		usable = append(usable, t)
	}
	return usable, skipped
}

type noopMetrics struct{}

func (noopMetrics) ObserveScan(domain.ScanReport, time.Duration) {}
func (noopMetrics) ObserveBookFetch(domain.FetchStatus)          {}
func (noopMetrics) ObserveFeedHealth(string, domain.HealthStatus) {}
