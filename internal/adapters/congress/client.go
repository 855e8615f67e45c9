package congress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	DefaultHouseURL  = "https://house-stock-watcher-data.s3-us-west-2.amazonaws.com/data/all_transactions.json"
	DefaultSenateURL = "https://senate-stock-watcher-data.s3-us-west-2.amazonaws.com/aggregate/all_transactions.json"

	defaultTimeout = 30 * time.Second
	userAgent      = "nomnom/0.1.0"
)

// ErrUnknownChamber indica una cámara sin feed asociado.
var ErrUnknownChamber = errors.New("unknown chamber")

// Config contiene los endpoints de los feeds de disclosures.
type Config struct {
	HouseURL  string
	SenateURL string
	Timeout   time.Duration
}

// Client descarga los volcados completos de House y Senate Stock Watcher.
// Cada feed tiene su propio circuit breaker.
type Client struct {
	http     *resty.Client
	urls     map[domain.Chamber]string
	breakers map[domain.Chamber]*gobreaker.CircuitBreaker
}

// NewClient crea el cliente con los endpoints por defecto donde falten.
func NewClient(cfg Config) *Client {
	if cfg.HouseURL == "" {
		cfg.HouseURL = DefaultHouseURL
	}
	if cfg.SenateURL == "" {
		cfg.SenateURL = DefaultSenateURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := resty.New()
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", userAgent)

	return &Client{
		http: client,
		urls: map[domain.Chamber]string{
			domain.ChamberHouse:  cfg.HouseURL,
			domain.ChamberSenate: cfg.SenateURL,
		},
		breakers: map[domain.Chamber]*gobreaker.CircuitBreaker{
			domain.ChamberHouse:  newFeedBreaker("house_disclosures"),
			domain.ChamberSenate: newFeedBreaker("senate_disclosures"),
		},
	}
}

func newFeedBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 5 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// BreakerOpen indica si el breaker del feed de la cámara está abierto.
func (c *Client) BreakerOpen(chamber domain.Chamber) bool {
	b, ok := c.breakers[chamber]
	return ok && b.State() == gobreaker.StateOpen
}

// FetchChamber descarga y parsea el feed completo de una cámara, ordenado
// por trade_date descendente. Los registros inutilizables se descartan.
func (c *Client) FetchChamber(ctx context.Context, chamber domain.Chamber) ([]domain.LegislativeTrade, error) {
	endpoint, ok := c.urls[chamber]
	if !ok {
		return nil, fmt.Errorf("congress.FetchChamber: %w: %v", ErrUnknownChamber, chamber)
	}

	start := time.Now()
	out, err := c.breakers[chamber].Execute(func() (interface{}, error) {
		resp, err := c.http.R().SetContext(ctx).Get(endpoint)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("status %d", resp.StatusCode())
		}
		return resp.Body(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("congress.FetchChamber %s: %w", chamber, err)
	}

	trades, skipped, err := parseFeed(chamber, out.([]byte))
	if err != nil {
		return nil, fmt.Errorf("congress.FetchChamber %s: %w", chamber, err)
	}
	sortByTradeDate(trades)

	slog.Debug("disclosure feed fetched",
		"chamber", chamber.String(),
		"trades", len(trades),
		"skipped", skipped,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return trades, nil
}

// FetchDisclosures implementa ports.DisclosureProvider sin cache.
func (c *Client) FetchDisclosures(ctx context.Context, chamber domain.Chamber, since time.Time) ([]domain.LegislativeTrade, error) {
	return collect(ctx, c.FetchChamber, chamber, since)
}
