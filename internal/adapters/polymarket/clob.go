package polymarket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

const bookPath = "/book"

var errMissingToken = errors.New("missing token id")

// FetchOrderBook obtiene el orderbook de un token con timeout acotado.
// Nunca devuelve error: el resultado distingue book con niveles, book vacío
// (incluido 404) y fetch fallido con su motivo.
func (c *Client) FetchOrderBook(ctx context.Context, tokenID string) domain.BookFetch {
	if tokenID == "" {
		return domain.BookFailed(errMissingToken)
	}

	ctx, cancel := context.WithTimeout(ctx, c.bookTimeout)
	defer cancel()

	out, err := c.booksBreaker.Execute(func() (interface{}, error) {
		var resp orderBookResponse
		u := c.clobBase + bookPath + "?token_id=" + url.QueryEscape(tokenID)
		if err := c.get(ctx, c.booksLimiter, u, &resp); err != nil {
			return nil, err
		}
		return resp, nil
	})

	if errors.Is(err, ErrNotFound) {
		return domain.BookFetched(domain.OrderBook{TokenID: tokenID})
	}
	if err != nil {
		slog.Debug("order book fetch failed", "token_id", tokenID, "err", err)
		return domain.BookFailed(fmt.Errorf("clob.FetchOrderBook: %w", err))
	}

	return domain.BookFetched(mapOrderBook(tokenID, out.(orderBookResponse)))
}
