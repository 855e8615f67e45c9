package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// DisclosureProvider obtiene las operaciones declaradas por legisladores.
type DisclosureProvider interface {
	// FetchDisclosures devuelve las operaciones con trade_date >= since de la
	// cámara dada (ChamberUnknown = ambas), ordenadas por trade_date descendente.
	FetchDisclosures(ctx context.Context, chamber domain.Chamber, since time.Time) ([]domain.LegislativeTrade, error)
}

// DisclosureCache persiste operaciones descargadas para no repetir el fetch
// de los feeds completos en cada scan.
type DisclosureCache interface {
	// SaveDisclosures reemplaza las operaciones cacheadas de la cámara.
	SaveDisclosures(ctx context.Context, chamber domain.Chamber, trades []domain.LegislativeTrade, fetchedAt time.Time) error

	// LoadDisclosures devuelve las operaciones cacheadas y cuándo se descargaron.
	// ok es false si la cámara nunca se cacheó.
	LoadDisclosures(ctx context.Context, chamber domain.Chamber) (trades []domain.LegislativeTrade, fetchedAt time.Time, ok bool, err error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
