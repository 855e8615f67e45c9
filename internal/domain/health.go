package domain

import (
	"fmt"
	"time"
)

// HealthStatus es el estado de salud de un feed de datos.
type HealthStatus int

const (
	HealthUnknown HealthStatus = iota
	HealthHealthy
	HealthDegraded
	HealthDown
	HealthNotConfigured
)

func (h HealthStatus) String() string {
	switch h {
	case HealthUnknown:
		return "unknown"
	case HealthHealthy:
		return "healthy"
	case HealthDegraded:
		return "degraded"
	case HealthDown:
		return "down"
	case HealthNotConfigured:
		return "not_configured"
	}
	return fmt.Sprintf("HealthStatus(%d)", int(h))
}

// FeedStatus es el último resultado de chequear un feed.
type FeedStatus struct {
	ID        string
	Name      string
	Category  string
	Endpoint  string
	Status    HealthStatus
	LastCheck time.Time
	Latency   time.Duration
	Items     int
	Message   string
}

// FeedSummary cuenta los feeds por estado.
type FeedSummary struct {
	Total         int
	Healthy       int
	Degraded      int
	Down          int
	NotConfigured int
	Unknown       int
}

// HealthPercentage es el porcentaje de feeds sanos con un decimal. 0 si no hay feeds.
func (s FeedSummary) HealthPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return round(float64(s.Healthy)/float64(s.Total)*100, 1)
}

// Summarize cuenta los feeds por estado.
func Summarize(feeds []FeedStatus) FeedSummary {
	s := FeedSummary{Total: len(feeds)}
	for _, f := range feeds {
		switch f.Status {
		case HealthHealthy:
			s.Healthy++
		case HealthDegraded:
			s.Degraded++
		case HealthDown:
			s.Down++
		case HealthNotConfigured:
			s.NotConfigured++
		case HealthUnknown:
			s.Unknown++
		}
	}
	return s
}
