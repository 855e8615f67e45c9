package polymarket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const (
	gammaMarketsPath   = "/markets"
	defaultMarketLimit = 100
)

// ErrMarketNotFound indica que Gamma no conoce el slug pedido.
var ErrMarketNotFound = errors.New("market not found")

// FetchMarkets devuelve los mercados activos ordenados por volumen 24h descendente.
// Los mercados malformados se descartan con un log de debug.
func (c *Client) FetchMarkets(ctx context.Context, limit int) ([]domain.MarketSnapshot, error) {
	if limit <= 0 {
		limit = defaultMarketLimit
	}
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("active", "true")
	q.Set("closed", "false")
	q.Set("order", "volume24hr")
	q.Set("ascending", "false")

	var resp []gammaMarket
	u := c.gammaBase + gammaMarketsPath + "?" + q.Encode()
	if err := c.get(ctx, c.gammaLimiter, u, &resp); err != nil {
		return nil, fmt.Errorf("gamma.FetchMarkets: %w", err)
	}

	markets, skipped := mapGammaMarkets(resp)
	if skipped > 0 {
		slog.Debug("skipped malformed markets", "skipped", skipped)
	}
	slog.Debug("gamma markets fetched", "total", len(resp), "valid", len(markets))
	return markets, nil
}

// GetMarketBySlug devuelve un único mercado por su slug.
func (c *Client) GetMarketBySlug(ctx context.Context, slug string) (domain.MarketSnapshot, error) {
	if slug == "" {
		return domain.MarketSnapshot{}, fmt.Errorf("gamma.GetMarketBySlug: %w", ErrMarketNotFound)
	}

	var resp gammaMarket
	u := c.gammaBase + gammaMarketsPath + "/" + url.PathEscape(slug)
	if err := c.get(ctx, c.gammaLimiter, u, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.MarketSnapshot{}, fmt.Errorf("gamma.GetMarketBySlug %q: %w", slug, ErrMarketNotFound)
		}
		return domain.MarketSnapshot{}, fmt.Errorf("gamma.GetMarketBySlug %q: %w", slug, err)
	}
	if resp.Slug == "" {
		resp.Slug = slug
	}

	m, err := mapGammaMarket(resp)
	if err != nil {
		return domain.MarketSnapshot{}, fmt.Errorf("gamma.GetMarketBySlug %q: %w", slug, err)
	}
	return m, nil
}
