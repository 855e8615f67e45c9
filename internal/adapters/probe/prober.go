package probe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alejandrodnm/nomnom/internal/ports"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "nomnom/0.1.0"
)

// Prober implementa ports.Prober con un GET simple por feed.
type Prober struct {
	http *resty.Client
}

// New crea un Prober con el timeout dado (10s si es <= 0).
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", userAgent)
	return &Prober{http: client}
}

// Probe hace GET al endpoint y mide latencia. Con 200 cuenta los elementos
// del JSON: longitud si es un array, 1 si es un objeto.
func (p *Prober) Probe(ctx context.Context, endpoint string, headers map[string]string) ports.ProbeResult {
	start := time.Now()
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(endpoint)
	res := ports.ProbeResult{Latency: time.Since(start)}
	if err != nil {
		res.Err = err
		return res
	}

	res.StatusCode = resp.StatusCode()
	if res.StatusCode == 200 {
		res.Items = countItems(resp.Body())
	}
	return res
}

func countItems(body []byte) int {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return 0
	}
	switch x := v.(type) {
	case []interface{}:
		return len(x)
	case map[string]interface{}:
		return 1
	}
	return 0
}
