package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/quote"
	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "update holding prices from eodhd.com provider"
}
func (*updateCmd) Usage() string {
	return `pcs update

  Fetches the latest and previous close prices of every open holding from
  eodhd.com and records them in the ledger. Tickers are EODHD codes, e.g. AAPL.US.
  Responses are cached for the day.
`
}
func (c *updateCmd) SetFlags(f *flag.FlagSet) {}
func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		return exit(updatePrices(ctx, s, l))
	})
}

// updatePrices fetches the quotes of the open holdings and stores them.
// It fails only if no quote could be fetched.
func updatePrices(ctx context.Context, s *session, l *holdings.Ledger) error {
	if s.cfg.EODHDAPIKey == "" {
		return fmt.Errorf("an EODHD API key is required, use -eodhd-api-key or %s", EnvEODHDAPIKey)
	}
	tickers := l.Tickers()
	if len(tickers) == 0 {
		fmt.Fprintln(stdout, "No open holdings to update.")
		return nil
	}

	client := quote.DailyClient(s.cfg.CacheDir, s.log)
	provider := quote.NewEODHD(s.cfg.QuoteURL, s.cfg.EODHDAPIKey, l.Currency(), client, s.log)
	quotes, errs := quote.FetchAll(ctx, provider, tickers, s.log)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("no price updated: %w", errors.Join(errs...))
	}

	for _, ticker := range tickers {
		q, ok := quotes[ticker]
		if !ok {
			continue
		}
		if err := l.SetPrice(ticker, q.Current, q.PreviousClose); err != nil {
			return err
		}
		if err := s.store.SetPrice(ctx, ticker, q.Current, q.PreviousClose); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s (previous close %s)\n", holdings.HoldingID(ticker), q.Current, q.PreviousClose)
	}
	return nil
}
