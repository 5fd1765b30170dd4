package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

// --- Declare Command ---

type declareCmd struct {
	ticker string
	name   string
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare a holding, or rename it" }
func (*declareCmd) Usage() string {
	return `declare -t <ticker> [-n <name>]

  Declares a holding with an optional display name. Declaring an existing
  holding renames it.
`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.StringVar(&c.name, "n", "", "Display name of the holding")
}

func (c *declareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		l.Declare(c.ticker, c.name)
		if err := s.store.Declare(ctx, c.ticker, c.name); err != nil {
			return exit(err)
		}
		h, _ := l.Holding(c.ticker)
		fmt.Fprintf(stdout, "Declared %s (%s)\n", h.ID, h.Label())
		return subcommands.ExitSuccess
	})
}

// --- Price Command ---

type priceCmd struct {
	ticker        string
	current       decimalFlag
	previousClose decimalFlag
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "set the latest price of a holding" }
func (*priceCmd) Usage() string {
	return `price -t <ticker> -p <price> [-prev <previous close>]

  Records the current price of a holding, and optionally the previous close
  used for the daily P&L.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Var(&c.current, "p", "Current price per share")
	f.Var(&c.previousClose, "prev", "Previous close price per share")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || !c.current.IsPositive() || c.previousClose.IsNegative() {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		cur := l.Currency()
		current, prev := holdings.M(c.current.Decimal, cur), holdings.M(c.previousClose.Decimal, cur)
		if err := l.SetPrice(c.ticker, current, prev); err != nil {
			return exit(err)
		}
		if err := s.store.SetPrice(ctx, c.ticker, current, prev); err != nil {
			return exit(err)
		}
		fmt.Fprintf(stdout, "%s price set to %s\n", holdings.HoldingID(c.ticker), current)
		return subcommands.ExitSuccess
	})
}

// --- Cash Command ---

type cashCmd struct {
	amount decimalFlag
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "set the cash balance" }
func (*cashCmd) Usage() string {
	return `cash -a <amount>

  Sets the cash balance of the portfolio, in the ledger currency.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.amount, "a", "Cash balance")
}

func (c *cashCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.amount.set {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		cash := holdings.M(c.amount.Decimal, l.Currency())
		if err := l.SetCash(cash); err != nil {
			return exit(err)
		}
		if err := s.store.SetCash(ctx, cash); err != nil {
			return exit(err)
		}
		fmt.Fprintf(stdout, "Cash set to %s\n", cash)
		return subcommands.ExitSuccess
	})
}
