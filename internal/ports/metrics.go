package ports

import (
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// Metrics registra la actividad del scanner.
type Metrics interface {
	ObserveScan(report domain.ScanReport, duration time.Duration)
	ObserveBookFetch(status domain.FetchStatus)
	ObserveFeedHealth(feed string, status domain.HealthStatus)
}
