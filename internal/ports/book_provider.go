package ports

import (
	"context"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// BookProvider obtiene el orderbook de un token del CLOB.
type BookProvider interface {
	// FetchOrderBook nunca devuelve error: el BookFetch distingue éxito,
	// book vacío y fallo con motivo. El timeout lo aplica la implementación.
	FetchOrderBook(ctx context.Context, tokenID string) domain.BookFetch
}
