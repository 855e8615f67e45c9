package domain

import "fmt"

// OrderBook es el snapshot de niveles bid/ask de un token.
// No se asume ningún orden entre niveles: las métricas solo agregan.
type OrderBook struct {
	TokenID string
	Bids    []BookEntry
	Asks    []BookEntry
}

// BookEntry es un nivel de precio en el orderbook.
type BookEntry struct {
	Price float64
	Size  float64
}

// BidVolume suma el tamaño de todos los bids.
func (ob OrderBook) BidVolume() float64 {
	var total float64
	for _, b := range ob.Bids {
		total += b.Size
	}
	return total
}

// AskVolume suma el tamaño de todos los asks.
func (ob OrderBook) AskVolume() float64 {
	var total float64
	for _, a := range ob.Asks {
		total += a.Size
	}
	return total
}

// IsEmpty devuelve true si el book no tiene niveles.
func (ob OrderBook) IsEmpty() bool {
	return len(ob.Bids) == 0 && len(ob.Asks) == 0
}

// Imbalance calcula (bid - ask) / (bid + ask).
// Positivo = presión compradora, negativo = vendedora. 0 si el book está vacío.
func (ob OrderBook) Imbalance() float64 {
	bid := ob.BidVolume()
	ask := ob.AskVolume()
	total := bid + ask
	if total == 0 {
		return 0
	}
	return (bid - ask) / total
}

// FetchStatus es el resultado de pedir datos a un colaborador externo.
type FetchStatus int

const (
	FetchSuccess FetchStatus = iota
	FetchEmpty               // el colaborador respondió pero sin datos
	FetchFailed              // no se pudo obtener (red, breaker abierto, timeout)
)

func (s FetchStatus) String() string {
	switch s {
	case FetchSuccess:
		return "success"
	case FetchEmpty:
		return "empty"
	case FetchFailed:
		return "failed"
	}
	return fmt.Sprintf("FetchStatus(%d)", int(s))
}

// BookFetch distingue "no hay señal" de "no se pudo obtener el book".
type BookFetch struct {
	Status FetchStatus
	Book   OrderBook
	Reason string // solo con FetchFailed
}

// BookFetched construye un BookFetch a partir de un book recibido.
// Un book sin niveles se reporta como FetchEmpty.
func BookFetched(book OrderBook) BookFetch {
	if book.IsEmpty() {
		return BookFetch{Status: FetchEmpty, Book: book}
	}
	return BookFetch{Status: FetchSuccess, Book: book}
}

// BookFailed construye un BookFetch fallido con el motivo dado.
func BookFailed(err error) BookFetch {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return BookFetch{Status: FetchFailed, Reason: reason}
}
