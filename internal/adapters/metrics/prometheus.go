package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const namespace = "nomnom"

var healthStates = []domain.HealthStatus{
	domain.HealthUnknown,
	domain.HealthHealthy,
	domain.HealthDegraded,
	domain.HealthDown,
	domain.HealthNotConfigured,
}

// Recorder implementa ports.Metrics con Prometheus sobre un registry inyectado.
type Recorder struct {
	scansTotal      prometheus.Counter
	scanDuration    prometheus.Histogram
	marketsFetched  prometheus.Gauge
	marketsSkipped  prometheus.Counter
	disclosures     prometheus.Gauge
	signals         prometheus.Gauge
	recommendations *prometheus.CounterVec
	bookFetches     *prometheus.CounterVec
	feedStatus      *prometheus.GaugeVec
}

// New registra las métricas en reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		scansTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Total number of completed scans",
		}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Duration of a full scan in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		marketsFetched: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "markets_fetched",
			Help:      "Markets fetched in the last scan",
		}),
		marketsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "markets_skipped_total",
			Help:      "Malformed markets skipped by the engine",
		}),
		disclosures: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disclosures",
			Help:      "Legislative disclosures loaded in the last scan",
		}),
		signals: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "signals",
			Help:      "Signals above the report floor in the last scan",
		}),
		recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendations emitted by position and dominant signal",
		}, []string{"position", "signal_type"}),
		bookFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "book_fetches_total",
			Help:      "Order book fetches by result",
		}, []string{"status"}),
		feedStatus: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_status",
			Help:      "Current health of each data feed (1 for the active status)",
		}, []string{"feed", "status"}),
	}
}

// ObserveScan registra el resultado de un scan.
func (r *Recorder) ObserveScan(report domain.ScanReport, duration time.Duration) {
	r.scansTotal.Inc()
	r.scanDuration.Observe(duration.Seconds())
	r.marketsFetched.Set(float64(report.MarketsFetched))
	r.marketsSkipped.Add(float64(report.MarketsSkipped))
	r.disclosures.Set(float64(report.Disclosures))
	r.signals.Set(float64(report.Signals))
	for _, rec := range report.Recommendations {
		r.recommendations.WithLabelValues(rec.Position.String(), rec.SignalType.String()).Inc()
	}
}

// ObserveBookFetch cuenta un fetch de orderbook por resultado.
func (r *Recorder) ObserveBookFetch(status domain.FetchStatus) {
	r.bookFetches.WithLabelValues(status.String()).Inc()
}

// ObserveFeedHealth marca el estado activo del feed y pone el resto a 0.
func (r *Recorder) ObserveFeedHealth(feed string, status domain.HealthStatus) {
	for _, s := range healthStates {
		v := 0.0
		if s == status {
			v = 1
		}
		r.feedStatus.WithLabelValues(feed, s.String()).Set(v)
	}
}
