// Package quote fetches the latest prices of the holdings.
//
// The engine never calls a price feed itself: quotes are fetched here,
// stored in the ledger, and turned into daily changes with Daily.
package quote

import (
	"context"
	"fmt"
	"sync"

	"github.com/etnz/holdings"
	"github.com/rs/zerolog"
)

// Quote is the latest known price of a ticker.
type Quote struct {
	Ticker        string
	Current       holdings.Money
	PreviousClose holdings.Money // PreviousClose is zero when unknown.
}

// Provider fetches quotes from a market data source.
type Provider interface {
	Quote(ctx context.Context, ticker string) (Quote, error)
}

// maxInFlight bounds the concurrent requests of FetchAll.
const maxInFlight = 8

// FetchAll fetches the quotes of every ticker concurrently.
//
// A failing ticker is logged and reported in errs, it never prevents the
// others from being fetched. quotes is keyed by ticker.
func FetchAll(ctx context.Context, p Provider, tickers []string, logger zerolog.Logger) (quotes map[string]Quote, errs []error) {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, maxInFlight)
	)
	quotes = make(map[string]Quote, len(tickers))

	for _, ticker := range tickers {
		ticker := ticker
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", ticker, ctx.Err()))
				mu.Unlock()
				return
			}

			q, err := p.Quote(ctx, ticker)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn().Err(err).Str("ticker", ticker).Msg("quote unavailable")
				errs = append(errs, fmt.Errorf("%s: %w", ticker, err))
				return
			}
			logger.Debug().Str("ticker", ticker).Str("price", q.Current.String()).Msg("quote fetched")
			quotes[ticker] = q
		}()
	}
	wg.Wait()
	return quotes, errs
}

// Daily returns the daily change of qty shares quoted by q.
func Daily(q Quote, qty holdings.Quantity) holdings.DailyChange {
	return holdings.NewDailyChange(q.Current, q.PreviousClose, qty)
}

// Held is the daily change of a ledger holding from its stored prices, to be
// passed to Ledger.Valuate.
func Held(h holdings.Holding) holdings.DailyChange {
	return Daily(Quote{Ticker: h.Ticker, Current: h.CurrentPrice, PreviousClose: h.PreviousClose}, holdings.Position(h.Transactions))
}
