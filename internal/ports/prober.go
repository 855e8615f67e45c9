package ports

import (
	"context"
	"time"
)

// ProbeResult es el resultado crudo de consultar el endpoint de un feed.
type ProbeResult struct {
	StatusCode int // 0 si no hubo respuesta
	Latency    time.Duration
	Items      int // elementos en la respuesta JSON (array) o 1 (objeto)
	Err        error
}

// Prober consulta el endpoint de un feed para el monitor de salud.
type Prober interface {
	Probe(ctx context.Context, endpoint string, headers map[string]string) ProbeResult
}

// BreakerReporter expone el estado del circuit breaker de un cliente.
type BreakerReporter interface {
	BreakerOpen() bool
}

// BreakerFunc adapta una función al interfaz BreakerReporter.
type BreakerFunc func() bool

// BreakerOpen llama a f().
func (f BreakerFunc) BreakerOpen() bool { return f() }
