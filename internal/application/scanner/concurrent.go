package scanner

// concurrent.go — worker pool para análisis paralelo de mercados.
//
// El único paso bloqueante por mercado es el fetch del book YES; con N workers
// los fetches se solapan y el rate limiter del cliente marca el ritmo.

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alejandrodnm/nomnom/internal/domain"
)

// indexedSignal conserva la posición del mercado en la entrada para que el
// orden final no dependa del scheduling de los workers.
type indexedSignal struct {
	index  int
	signal domain.InsiderSignal
}

// analyzeMarketsConcurrent analiza todos los mercados en paralelo usando un worker pool.
// Los trades se comparten en solo lectura entre todos los workers.
//
// Si workers <= 0 usa runtime.NumCPU() × 2.
func analyzeMarketsConcurrent(
	ctx context.Context,
	analyzer *Analyzer,
	markets []domain.MarketSnapshot,
	trades []domain.LegislativeTrade,
	workers int,
) []indexedSignal {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if workers > len(markets) {
		workers = len(markets)
	}

	type work struct {
		index  int
		market domain.MarketSnapshot
	}

	workCh := make(chan work, len(markets))
	resultCh := make(chan indexedSignal, len(markets))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for w := range workCh {
				resultCh <- indexedSignal{
					index:  w.index,
					signal: analyzer.Analyze(ctx, w.market, trades),
				}
			}
		}()
	}

	for i, m := range markets {
		workCh <- work{index: i, market: m}
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := make([]indexedSignal, 0, len(markets))
	for r := range resultCh {
		out = append(out, r)
	}

	slog.Debug("concurrent analysis complete",
		"markets", len(markets),
		"signals", len(out),
		"workers", workers,
	)
	return out
}
