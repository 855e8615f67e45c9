package congress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
	"github.com/alejandrodnm/nomnom/internal/ports"
)

// ChamberFetcher descarga el feed completo de una cámara.
type ChamberFetcher interface {
	FetchChamber(ctx context.Context, chamber domain.Chamber) ([]domain.LegislativeTrade, error)
}

type fetchFunc func(ctx context.Context, chamber domain.Chamber) ([]domain.LegislativeTrade, error)

// CachedProvider implementa ports.DisclosureProvider sobre un DisclosureCache.
// Un feed se vuelve a descargar solo cuando su copia supera el TTL; si la
// descarga falla se sirve la copia caducada.
type CachedProvider struct {
	source ChamberFetcher
	cache  ports.DisclosureCache
	ttl    time.Duration
	now    func() time.Time
}

// NewCachedProvider crea el provider. now nil usa time.Now.
func NewCachedProvider(source ChamberFetcher, cache ports.DisclosureCache, ttl time.Duration, now func() time.Time) *CachedProvider {
	if now == nil {
		now = time.Now
	}
	return &CachedProvider{source: source, cache: cache, ttl: ttl, now: now}
}

// FetchDisclosures implementa ports.DisclosureProvider.
func (p *CachedProvider) FetchDisclosures(ctx context.Context, chamber domain.Chamber, since time.Time) ([]domain.LegislativeTrade, error) {
	return collect(ctx, p.fetchChamber, chamber, since)
}

func (p *CachedProvider) fetchChamber(ctx context.Context, chamber domain.Chamber) ([]domain.LegislativeTrade, error) {
	cached, fetchedAt, ok, err := p.cache.LoadDisclosures(ctx, chamber)
	if err != nil {
		slog.Warn("disclosure cache read failed", "chamber", chamber.String(), "err", err)
		ok = false
	}
	age := p.now().Sub(fetchedAt)
	if ok && age < p.ttl {
		slog.Debug("disclosure cache hit", "chamber", chamber.String(), "age", age.Round(time.Second))
		return cached, nil
	}

	fresh, err := p.source.FetchChamber(ctx, chamber)
	if err != nil {
		if ok {
			slog.Warn("disclosure feed failed, using stale cache",
				"chamber", chamber.String(),
				"age", age.Round(time.Second),
				"err", err,
			)
			return cached, nil
		}
		return nil, err
	}

	if err := p.cache.SaveDisclosures(ctx, chamber, fresh, p.now()); err != nil {
		slog.Warn("disclosure cache write failed", "chamber", chamber.String(), "err", err)
	}
	return fresh, nil
}

// collect descarga las cámaras pedidas (ChamberUnknown = ambas), filtra por
// fecha y mezcla. Solo falla si fallan todas las cámaras.
func collect(ctx context.Context, fetch fetchFunc, chamber domain.Chamber, since time.Time) ([]domain.LegislativeTrade, error) {
	chambers, err := chambersFor(chamber)
	if err != nil {
		return nil, fmt.Errorf("congress.FetchDisclosures: %w", err)
	}

	all := make([]domain.LegislativeTrade, 0)
	var errs []error
	for _, ch := range chambers {
		trades, err := fetch(ctx, ch)
		if err != nil {
			slog.Warn("disclosure feed unavailable", "chamber", ch.String(), "err", err)
			errs = append(errs, err)
			continue
		}
		all = append(all, Since(trades, since)...)
	}
	if len(errs) == len(chambers) {
		return nil, fmt.Errorf("congress.FetchDisclosures: %w", errors.Join(errs...))
	}

	sortByTradeDate(all)
	return all, nil
}

func chambersFor(chamber domain.Chamber) ([]domain.Chamber, error) {
	switch chamber {
	case domain.ChamberUnknown:
		return []domain.Chamber{domain.ChamberHouse, domain.ChamberSenate}, nil
	case domain.ChamberHouse, domain.ChamberSenate:
		return []domain.Chamber{chamber}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownChamber, chamber)
}

// sortByTradeDate ordena por trade_date descendente; el orden de empates es estable.
func sortByTradeDate(trades []domain.LegislativeTrade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].TradeDate.After(trades[j].TradeDate)
	})
}
