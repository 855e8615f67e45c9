package feeds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

// ErrUnknownFeed indica un id de feed fuera del catálogo.
var ErrUnknownFeed = errors.New("unknown feed")

const maxMessageLen = 100

// Monitor chequea la salud de un catálogo de feeds y guarda el último
// resultado de cada uno. Es seguro para uso concurrente.
type Monitor struct {
	feeds   []Feed
	prober  ports.Prober
	metrics ports.Metrics
	now     func() time.Time

	mu       sync.RWMutex
	statuses map[string]domain.FeedStatus
}

// NewMonitor crea un Monitor con todos los feeds en estado Unknown.
// metrics puede ser nil.
func NewMonitor(feeds []Feed, prober ports.Prober, metrics ports.Metrics) *Monitor {
	m := &Monitor{
		feeds:    feeds,
		prober:   prober,
		metrics:  metrics,
		now:      time.Now,
		statuses: make(map[string]domain.FeedStatus, len(feeds)),
	}
	for _, f := range feeds {
		m.statuses[f.ID] = initialStatus(f)
	}
	return m
}

// Check chequea un feed por id.
func (m *Monitor) Check(ctx context.Context, id string) (domain.FeedStatus, error) {
	for _, f := range m.feeds {
		if f.ID == id {
			return m.check(ctx, f), nil
		}
	}
	return domain.FeedStatus{}, fmt.Errorf("feeds.Check %q: %w", id, ErrUnknownFeed)
}

// CheckAll chequea todos los feeds en paralelo y devuelve los estados en el
// orden del catálogo.
func (m *Monitor) CheckAll(ctx context.Context) []domain.FeedStatus {
	out := make([]domain.FeedStatus, len(m.feeds))
	var wg sync.WaitGroup
	for i, f := range m.feeds {
		wg.Add(1)
		go func(i int, f Feed) {
			defer wg.Done()
			out[i] = m.check(ctx, f)
		}(i, f)
	}
	wg.Wait()

	s := domain.Summarize(out)
	slog.Info("feed health check complete",
		"total", s.Total,
		"healthy", s.Healthy,
		"degraded", s.Degraded,
		"down", s.Down,
		"not_configured", s.NotConfigured,
	)
	return out
}

// Statuses devuelve el último estado conocido de cada feed, en orden de catálogo.
func (m *Monitor) Statuses() []domain.FeedStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.FeedStatus, 0, len(m.feeds))
	for _, f := range m.feeds {
		out = append(out, m.statuses[f.ID])
	}
	return out
}

// Summary resume el último estado conocido.
func (m *Monitor) Summary() domain.FeedSummary {
	return domain.Summarize(m.Statuses())
}

// ByCategory agrupa el último estado conocido por categoría.
func (m *Monitor) ByCategory() map[string][]domain.FeedStatus {
	out := make(map[string][]domain.FeedStatus)
	for _, s := range m.Statuses() {
		out[s.Category] = append(out[s.Category], s)
	}
	return out
}

func (m *Monitor) check(ctx context.Context, f Feed) domain.FeedStatus {
	st := initialStatus(f)
	st.LastCheck = m.now()

	switch {
	case f.Endpoint == "":
		st.Status = domain.HealthNotConfigured
		st.Message = "No API endpoint configured"
	case f.RequiresAuth && f.APIKey == "":
		st.Status = domain.HealthNotConfigured
		st.Message = "Requires api_key authentication"
	case f.Breaker != nil && f.Breaker.BreakerOpen():
		st.Status = domain.HealthDegraded
		st.Message = "Circuit breaker open"
	default:
		res := m.prober.Probe(ctx, f.Endpoint, f.headers())
		st.Latency = res.Latency
		st.Status, st.Message = classify(res)
		if st.Status == domain.HealthHealthy {
			st.Items = res.Items
		}
	}

	m.mu.Lock()
	m.statuses[f.ID] = st
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ObserveFeedHealth(f.ID, st.Status)
	}
	slog.Debug("feed checked",
		"feed", f.ID,
		"status", st.Status.String(),
		"latency", st.Latency.Round(time.Millisecond),
		"message", st.Message,
	)
	return st
}

// classify traduce el resultado de un probe a estado de salud.
func classify(res ports.ProbeResult) (domain.HealthStatus, string) {
	if res.Err != nil {
		return domain.HealthDown, errorMessage(res.Err)
	}
	switch res.StatusCode {
	case http.StatusOK:
		return domain.HealthHealthy, ""
	case http.StatusTooManyRequests:
		return domain.HealthDegraded, "Rate limited"
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.HealthNotConfigured, "Authentication required"
	}
	return domain.HealthDown, fmt.Sprintf("HTTP %d", res.StatusCode)
}

func errorMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "Timeout"
	}
	msg := err.Error()
	if len(msg) > maxMessageLen {
		msg = msg[:maxMessageLen]
	}
	return msg
}

func initialStatus(f Feed) domain.FeedStatus {
	return domain.FeedStatus{
		ID:       f.ID,
		Name:     f.Name,
		Category: f.Category,
		Endpoint: f.Endpoint,
		Status:   domain.HealthUnknown,
	}
}
