package ports

import (
	"context"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// MarketProvider obtiene snapshots de mercados de Polymarket.
type MarketProvider interface {
	// FetchMarkets devuelve hasta limit mercados activos ordenados por volumen 24h.
	// Los registros malformados se descartan; solo falla si la fuente no responde.
	FetchMarkets(ctx context.Context, limit int) ([]domain.MarketSnapshot, error)

	// GetMarketBySlug devuelve un único mercado.
	GetMarketBySlug(ctx context.Context, slug string) (domain.MarketSnapshot, error)
}
