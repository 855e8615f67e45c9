package feeds_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alejandrodnm/nomnom/internal/application/feeds"
	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockProber struct {
	mu      sync.Mutex
	results map[string]ports.ProbeResult
	calls   map[string]int
	headers map[string]map[string]string
}

func newMockProber(results map[string]ports.ProbeResult) *mockProber {
	return &mockProber{
		results: results,
		calls:   map[string]int{},
		headers: map[string]map[string]string{},
	}
}

func (m *mockProber) Probe(_ context.Context, endpoint string, headers map[string]string) ports.ProbeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[endpoint]++
	m.headers[endpoint] = headers
	return m.results[endpoint]
}

type mockMetrics struct {
	mu    sync.Mutex
	feeds map[string]domain.HealthStatus
}

func (m *mockMetrics) ObserveScan(domain.ScanReport, time.Duration) {}
func (m *mockMetrics) ObserveBookFetch(domain.FetchStatus)          {}
func (m *mockMetrics) ObserveFeedHealth(feed string, status domain.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeds[feed] = status
}

// --- Tests ---

func catalog(quiverKey string) []feeds.Feed {
	return feeds.DefaultCatalog(feeds.Endpoints{
		GammaBase:    "http://gamma.test/",
		CLOBBase:     "http://clob.test",
		HouseURL:     "http://house.test/all.json",
		SenateURL:    "http://senate.test/all.json",
		QuiverURL:    "http://quiver.test/congress",
		QuiverAPIKey: quiverKey,
	})
}

func TestDefaultCatalog(t *testing.T) {
	c := catalog("")
	require.Len(t, c, 5)

	ids := make([]string, 0, len(c))
	for _, f := range c {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{
		"polymarket_gamma", "polymarket_clob", "house_stock_watcher", "senate_stock_watcher", "quiver_quant",
	}, ids)
	assert.Equal(t, "http://gamma.test/markets?limit=1", c[0].Endpoint)
	assert.Equal(t, "http://clob.test/markets", c[1].Endpoint)
	assert.True(t, c[4].RequiresAuth)

	noBase := feeds.DefaultCatalog(feeds.Endpoints{})
	assert.Empty(t, noBase[0].Endpoint)
	assert.Equal(t, "https://api.quiverquant.com/beta/live/congresstrading", noBase[4].Endpoint)
}

func TestMonitor_CheckAll(t *testing.T) {
	prober := newMockProber(map[string]ports.ProbeResult{
		"http://gamma.test/markets?limit=1": {StatusCode: 200, Items: 1, Latency: 120 * time.Millisecond},
		"http://clob.test/markets":          {StatusCode: 429},
		"http://house.test/all.json":        {StatusCode: 403},
		"http://senate.test/all.json":       {Err: errors.New("dial tcp: connection refused")},
	})
	metrics := &mockMetrics{feeds: map[string]domain.HealthStatus{}}
	m := feeds.NewMonitor(catalog(""), prober, metrics)

	statuses := m.CheckAll(context.Background())
	require.Len(t, statuses, 5)

	assert.Equal(t, domain.HealthHealthy, statuses[0].Status)
	assert.Equal(t, 1, statuses[0].Items)
	assert.Equal(t, 120*time.Millisecond, statuses[0].Latency)
	assert.False(t, statuses[0].LastCheck.IsZero())

	assert.Equal(t, domain.HealthDegraded, statuses[1].Status)
	assert.Equal(t, "Rate limited", statuses[1].Message)

	assert.Equal(t, domain.HealthNotConfigured, statuses[2].Status)
	assert.Equal(t, "Authentication required", statuses[2].Message)

	assert.Equal(t, domain.HealthDown, statuses[3].Status)
	assert.Contains(t, statuses[3].Message, "connection refused")

	// Quiver sin API key no se consulta
	assert.Equal(t, domain.HealthNotConfigured, statuses[4].Status)
	assert.Equal(t, "Requires api_key authentication", statuses[4].Message)
	assert.Zero(t, prober.calls["http://quiver.test/congress"])

	s := m.Summary()
	assert.Equal(t, domain.FeedSummary{Total: 5, Healthy: 1, Degraded: 1, Down: 1, NotConfigured: 2}, s)
	assert.InDelta(t, 20.0, s.HealthPercentage(), 1e-9)

	assert.Equal(t, domain.HealthHealthy, metrics.feeds["polymarket_gamma"])
	assert.Equal(t, domain.HealthNotConfigured, metrics.feeds["quiver_quant"])
	assert.Len(t, metrics.feeds, 5)
}

func TestMonitor_QuiverWithKey(t *testing.T) {
	prober := newMockProber(map[string]ports.ProbeResult{
		"http://quiver.test/congress": {StatusCode: 200, Items: 250},
	})
	m := feeds.NewMonitor(catalog("secret"), prober, nil)

	st, err := m.Check(context.Background(), "quiver_quant")
	require.NoError(t, err)
	assert.Equal(t, domain.HealthHealthy, st.Status)
	assert.Equal(t, 250, st.Items)
	assert.Equal(t, "Token secret", prober.headers["http://quiver.test/congress"]["Authorization"])
}

func TestMonitor_OtherStatusIsDown(t *testing.T) {
	prober := newMockProber(map[string]ports.ProbeResult{
		"http://clob.test/markets": {StatusCode: 502},
	})
	m := feeds.NewMonitor(catalog(""), prober, nil)

	st, err := m.Check(context.Background(), "polymarket_clob")
	require.NoError(t, err)
	assert.Equal(t, domain.HealthDown, st.Status)
	assert.Equal(t, "HTTP 502", st.Message)
}

func TestMonitor_TimeoutMessage(t *testing.T) {
	prober := newMockProber(map[string]ports.ProbeResult{
		"http://house.test/all.json": {Err: context.DeadlineExceeded},
	})
	m := feeds.NewMonitor(catalog(""), prober, nil)

	st, err := m.Check(context.Background(), "house_stock_watcher")
	require.NoError(t, err)
	assert.Equal(t, domain.HealthDown, st.Status)
	assert.Equal(t, "Timeout", st.Message)
}

func TestMonitor_BreakerOpenIsDegraded(t *testing.T) {
	prober := newMockProber(nil)
	c := catalog("")
	c[1].Breaker = ports.BreakerFunc(func() bool { return true })
	m := feeds.NewMonitor(c, prober, nil)

	st, err := m.Check(context.Background(), "polymarket_clob")
	require.NoError(t, err)
	assert.Equal(t, domain.HealthDegraded, st.Status)
	assert.Equal(t, "Circuit breaker open", st.Message)
	assert.Zero(t, prober.calls["http://clob.test/markets"])
}

func TestMonitor_NoEndpoint(t *testing.T) {
	m := feeds.NewMonitor(feeds.DefaultCatalog(feeds.Endpoints{}), newMockProber(nil), nil)

	st, err := m.Check(context.Background(), "polymarket_gamma")
	require.NoError(t, err)
	assert.Equal(t, domain.HealthNotConfigured, st.Status)
	assert.Equal(t, "No API endpoint configured", st.Message)
}

func TestMonitor_UnknownFeed(t *testing.T) {
	m := feeds.NewMonitor(catalog(""), newMockProber(nil), nil)

	_, err := m.Check(context.Background(), "kalshi")
	assert.True(t, errors.Is(err, feeds.ErrUnknownFeed))
}

func TestMonitor_InitialStateUnknown(t *testing.T) {
	m := feeds.NewMonitor(catalog(""), newMockProber(nil), nil)

	s := m.Summary()
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 5, s.Unknown)
	assert.Zero(t, s.HealthPercentage())

	byCat := m.ByCategory()
	assert.Len(t, byCat[feeds.CategoryPredictionMarkets], 2)
	assert.Len(t, byCat[feeds.CategoryCongressional], 3)
}
