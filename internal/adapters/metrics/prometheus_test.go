package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/nomnom/internal/adapters/metrics"
	"github.com/alejandrodnm/nomnom/internal/domain"
)

func TestRecorder_ObserveScan(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	report := domain.ScanReport{
		MarketsFetched: 100,
		MarketsSkipped: 2,
		Disclosures:    340,
		Signals:        7,
		Recommendations: []domain.TradeRecommendation{
			{Position: domain.PositionYes, SignalType: domain.SignalOrderImbalance},
			{Position: domain.PositionYes, SignalType: domain.SignalOrderImbalance},
			{Position: domain.PositionNo, SignalType: domain.SignalCongressCorrelation},
		},
	}
	r.ObserveScan(report, 3*time.Second)
	r.ObserveScan(report, time.Second)

	expected := `
# HELP nomnom_recommendations_total Recommendations emitted by position and dominant signal
# TYPE nomnom_recommendations_total counter
nomnom_recommendations_total{position="NO",signal_type="congress_correlation"} 2
nomnom_recommendations_total{position="YES",signal_type="order_imbalance"} 4
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "nomnom_recommendations_total"))

	count, err := testutil.GatherAndCount(reg, "nomnom_scan_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		m := mf.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			values[mf.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			values[mf.GetName()] = m.GetGauge().GetValue()
		}
	}
	assert.Equal(t, 2.0, values["nomnom_scans_total"])
	assert.Equal(t, 100.0, values["nomnom_markets_fetched"])
	assert.Equal(t, 4.0, values["nomnom_markets_skipped_total"])
	assert.Equal(t, 340.0, values["nomnom_disclosures"])
	assert.Equal(t, 7.0, values["nomnom_signals"])
}

func TestRecorder_ObserveBookFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.ObserveBookFetch(domain.FetchSuccess)
	r.ObserveBookFetch(domain.FetchSuccess)
	r.ObserveBookFetch(domain.FetchFailed)

	expected := `
# HELP nomnom_book_fetches_total Order book fetches by result
# TYPE nomnom_book_fetches_total counter
nomnom_book_fetches_total{status="failed"} 1
nomnom_book_fetches_total{status="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "nomnom_book_fetches_total"))
}

func TestRecorder_ObserveFeedHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := metrics.New(reg)

	r.ObserveFeedHealth("polymarket_gamma", domain.HealthDown)
	r.ObserveFeedHealth("polymarket_gamma", domain.HealthHealthy)

	count, err := testutil.GatherAndCount(reg, "nomnom_feed_status")
	require.NoError(t, err)
	assert.Equal(t, 5, count, "una serie por estado posible")

	expected := `
# HELP nomnom_feed_status Current health of each data feed (1 for the active status)
# TYPE nomnom_feed_status gauge
nomnom_feed_status{feed="polymarket_gamma",status="degraded"} 0
nomnom_feed_status{feed="polymarket_gamma",status="down"} 0
nomnom_feed_status{feed="polymarket_gamma",status="healthy"} 1
nomnom_feed_status{feed="polymarket_gamma",status="not_configured"} 0
nomnom_feed_status{feed="polymarket_gamma",status="unknown"} 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "nomnom_feed_status"))
}

func TestRecorder_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
