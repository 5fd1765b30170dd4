package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

// appendTransaction records tx for ticker in the ledger, then in the store.
func appendTransaction(ctx context.Context, s *session, l *holdings.Ledger, ticker string, tx holdings.Transaction) error {
	if err := l.Append(ticker, tx); err != nil {
		return err
	}
	if err := s.store.AppendTransaction(ctx, ticker, tx); err != nil {
		return fmt.Errorf("error writing to ledger %q: %w", s.cfg.Ledger, err)
	}
	s.log.Info().Str("ticker", ticker).Str("kind", tx.Kind.String()).Str("id", tx.ID).Msg("transaction recorded")
	fmt.Fprintf(stdout, "Recorded %s of %s %s on %s\n", tx.Kind, tx.Quantity, holdings.HoldingID(ticker), tx.Date)
	return nil
}

// tradeFlags are the flags shared by buy and sell.
type tradeFlags struct {
	date     string
	ticker   string
	quantity decimalFlag
	price    decimalFlag
	fee      decimalFlag
	memo     string
}

func (c *tradeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), today if missing")
	f.StringVar(&c.ticker, "t", "", "Security ticker")
	f.Var(&c.quantity, "q", "Number of shares")
	f.Var(&c.price, "p", "Price per share")
	f.Var(&c.fee, "fee", "Total fee of the trade")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

// transaction builds the transaction with build, or reports a usage error.
func (c *tradeFlags) transaction(l *holdings.Ledger, f *flag.FlagSet, build func(holdings.Transaction) holdings.Transaction) (holdings.Transaction, subcommands.ExitStatus) {
	if c.ticker == "" || !c.quantity.IsPositive() || c.price.IsNegative() || c.fee.IsNegative() {
		f.Usage()
		return holdings.Transaction{}, subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return holdings.Transaction{}, subcommands.ExitUsageError
	}
	cur := l.Currency()
	return build(holdings.Transaction{
		Date:     day,
		Quantity: holdings.Q(c.quantity.Decimal),
		Price:    holdings.M(c.price.Decimal, cur),
		Fee:      holdings.M(c.fee.Decimal, cur),
		Memo:     c.memo,
	}), subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -t <ticker> -q <quantity> -p <price> [-fee <fee>] [-d <date>] [-m <memo>]

  Purchases shares of a security. The holding is declared if needed.
`
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		tx, status := c.transaction(l, f, func(t holdings.Transaction) holdings.Transaction {
			return holdings.NewBuy(t.Date, t.Quantity, t.Price, t.Fee, t.Memo)
		})
		if status != subcommands.ExitSuccess {
			return status
		}
		return exit(appendTransaction(ctx, s, l, c.ticker, tx))
	})
}

// --- Sell Command ---

type sellCmd struct {
	tradeFlags
	force bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -t <ticker> -q <quantity> -p <price> [-fee <fee>] [-d <date>] [-m <memo>] [-force]

  Sells shares of a security, first bought first sold.
  Selling more shares than held is refused unless -force is given.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.tradeFlags.SetFlags(f)
	f.BoolVar(&c.force, "force", false, "record the sale even if it exceeds the position")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		tx, status := c.transaction(l, f, func(t holdings.Transaction) holdings.Transaction {
			return holdings.NewSell(t.Date, t.Quantity, t.Price, t.Fee, t.Memo)
		})
		if status != subcommands.ExitSuccess {
			return status
		}
		if !c.force {
			if err := validateSell(l, c.ticker, tx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		return exit(appendTransaction(ctx, s, l, c.ticker, tx))
	})
}

// validateSell checks tx against the holding for ticker, declared or not.
func validateSell(l *holdings.Ledger, ticker string, tx holdings.Transaction) error {
	h, ok := l.Holding(ticker)
	if !ok {
		h = holdings.NewHolding(ticker, "")
	}
	return holdings.ValidateTransaction(h, tx)
}

// --- Dividend Command ---

type dividendCmd struct {
	date     string
	ticker   string
	perShare decimalFlag
	quantity decimalFlag
	memo     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment for a security" }
func (*dividendCmd) Usage() string {
	return `dividend -t <ticker> -p <per share> [-q <quantity>] [-d <date>] [-m <memo>]

  Records a dividend payment of a per share amount. The quantity defaults to the
  shares currently held. Dividends never change the position.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Payment date (YYYY-MM-DD), today if missing")
	f.StringVar(&c.ticker, "t", "", "Security ticker receiving the dividend")
	f.Var(&c.perShare, "p", "Dividend per share")
	f.Var(&c.quantity, "q", "Number of shares entitled, the current position if missing")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note")
}

func (c *dividendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || !c.perShare.IsPositive() || c.quantity.IsNegative() {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		qty := holdings.Q(c.quantity.Decimal)
		if !c.quantity.set {
			h, _ := l.Holding(c.ticker)
			qty = holdings.Position(h.Transactions)
		}
		tx := holdings.NewDividend(day, qty, holdings.M(c.perShare.Decimal, l.Currency()), c.memo)
		return exit(appendTransaction(ctx, s, l, c.ticker, tx))
	})
}
