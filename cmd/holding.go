package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/quote"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	update bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the valuation of every open holding" }
func (*holdingsCmd) Usage() string {
	return `pcs holdings [-u]

  Displays the open holdings with their market value, cost basis, and their
  daily, holding and total P&L.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "update with latest prices before calculating the report")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		if c.update {
			if err := updatePrices(ctx, s, l); err != nil {
				return exit(err)
			}
		}
		printMarkdown(renderer.HoldingsMarkdown(l.Valuate(quote.Held), l.Currency()))
		return subcommands.ExitSuccess
	})
}

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	ticker string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the detailed valuation of one holding" }
func (*holdingCmd) Usage() string {
	return `pcs holding -t <ticker>

  Displays every figure of a holding, open or closed, and the lots still held.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Security ticker")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		h, ok := l.Holding(c.ticker)
		if !ok {
			return exit(fmt.Errorf("%w: %q", holdings.ErrUnknownHolding, c.ticker))
		}
		v := holdings.Valuate(h, quote.Held(h))
		printMarkdown(renderer.HoldingMarkdown(v, holdings.OpenLots(h.Transactions)))
		return subcommands.ExitSuccess
	})
}
