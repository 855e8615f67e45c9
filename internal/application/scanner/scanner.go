package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

// Config contiene la configuración del scanner.
type Config struct {
	ScanInterval    time.Duration
	MarketLimit     int
	DisclosureDays  int
	MinConfidence   float64
	MaxResults      int
	AnalysisWorkers int  // goroutines para análisis paralelo (0 = NumCPU*2)
	Once            bool // un solo ciclo y salir
}

// Scanner es el orquestador del loop de escaneo: fetch de mercados y
// disclosures una vez por scan, análisis, notificación y métricas.
type Scanner struct {
	cfg         Config
	markets     ports.MarketProvider
	disclosures ports.DisclosureProvider
	notifier    ports.Notifier
	metrics     ports.Metrics
	engine      *Engine
	now         func() time.Time
}

// Deps agrupa los colaboradores del Scanner. Disclosures, Notifier y Metrics
// son opcionales.
type Deps struct {
	Markets     ports.MarketProvider
	Books       ports.BookProvider
	Disclosures ports.DisclosureProvider
	Notifier    ports.Notifier
	Metrics     ports.Metrics
	Now         func() time.Time
}

// New crea un Scanner con todas las dependencias inyectadas.
func New(cfg Config, deps Deps) *Scanner {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Scanner{
		cfg:         cfg,
		markets:     deps.Markets,
		disclosures: deps.Disclosures,
		notifier:    deps.Notifier,
		metrics:     metrics,
		engine: NewEngine(deps.Books, EngineConfig{
			Workers: cfg.AnalysisWorkers,
			Now:     now,
			Metrics: metrics,
		}),
		now: now,
	}
}

// Run ejecuta el loop de escaneo hasta que el contexto se cancele.
// Si cfg.Once está activo, solo ejecuta un ciclo y devuelve su error.
func (s *Scanner) Run(ctx context.Context) error {
	slog.Info("scanner starting",
		"interval", s.cfg.ScanInterval,
		"once", s.cfg.Once,
		"min_confidence", s.cfg.MinConfidence,
		"max_results", s.cfg.MaxResults,
	)

	if err := s.runCycle(ctx); err != nil {
		slog.Error("scan cycle failed", "err", err)
		if s.cfg.Once {
			return err
		}
	}

	if s.cfg.Once || s.cfg.ScanInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				slog.Error("scan cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un scan y devuelve el reporte sin notificar.
func (s *Scanner) RunOnce(ctx context.Context) (domain.ScanReport, error) {
	return s.scan(ctx)
}

// AnalyzeMarket devuelve la señal completa de un mercado buscado por slug.
func (s *Scanner) AnalyzeMarket(ctx context.Context, slug string) (domain.InsiderSignal, error) {
	m, err := s.markets.GetMarketBySlug(ctx, slug)
	if err != nil {
		return domain.InsiderSignal{}, fmt.Errorf("scanner.AnalyzeMarket: %w", err)
	}
	trades := s.fetchDisclosures(ctx)
	signal, err := s.engine.AnalyzeOne(ctx, m, trades)
	if err != nil {
		return domain.InsiderSignal{}, fmt.Errorf("scanner.AnalyzeMarket: %w", err)
	}
	return signal, nil
}

// runCycle ejecuta un scan completo, notifica y registra métricas.
func (s *Scanner) runCycle(ctx context.Context) error {
	start := time.Now()

	report, err := s.scan(ctx)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	duration := time.Since(start)
	s.metrics.ObserveScan(report, duration)

	slog.Info("scan cycle complete",
		"scan_id", report.ScanID,
		"markets", report.MarketsFetched,
		"skipped", report.MarketsSkipped,
		"disclosures", report.Disclosures,
		"book_failures", report.BookFailures,
		"signals", report.Signals,
		"recommendations", len(report.Recommendations),
		"duration", duration.Round(time.Millisecond),
	)
	return nil
}

// scan hace fetch de mercados y disclosures y pasa ambos por el Engine.
// Solo falla si no se pueden obtener los mercados.
func (s *Scanner) scan(ctx context.Context) (domain.ScanReport, error) {
	report := domain.ScanReport{
		ScanID:        uuid.NewString(),
		StartedAt:     s.now(),
		MinConfidence: s.cfg.MinConfidence,
	}

	markets, err := s.markets.FetchMarkets(ctx, s.cfg.MarketLimit)
	if err != nil {
		return report, fmt.Errorf("scanner.scan: fetch markets: %w", err)
	}
	report.MarketsFetched = len(markets)

	// Una sola descarga por scan, compartida en solo lectura por todos los mercados.
	trades := s.fetchDisclosures(ctx)
	report.Disclosures = len(trades)

	out := s.engine.Run(ctx, markets, trades, s.cfg.MinConfidence, s.cfg.MaxResults)
	report.MarketsSkipped = out.MarketsSkipped
	report.BookFailures = out.BookFailures
	report.Signals = len(out.Signals)
	report.Recommendations = out.Recommendations
	return report, nil
}

// fetchDisclosures descarga las operaciones legislativas recientes.
// Un fallo se loguea y el scan continúa sin correlación legislativa.
func (s *Scanner) fetchDisclosures(ctx context.Context) []domain.LegislativeTrade {
	if s.disclosures == nil {
		return nil
	}
	days := s.cfg.DisclosureDays
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)

	trades, err := s.disclosures.FetchDisclosures(ctx, domain.ChamberUnknown, since)
	if err != nil {
		slog.Warn("disclosure fetch failed, continuing without congress data", "err", err)
		return nil
	}
	return trades
}
