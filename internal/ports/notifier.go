package ports

import (
	"context"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// Notifier presenta el resultado de un scan al usuario.
type Notifier interface {
	// Notify muestra las recomendaciones en el orden recibido.
	Notify(ctx context.Context, report domain.ScanReport) error
}
