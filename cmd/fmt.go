package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pcs fmt

  Validates and rewrites the ledger. A JSONL ledger is written back with one
  declaration per holding followed by its transactions, the latest prices and
  the cash balance, dropping superseded price and cash lines.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		if err := s.store.Save(ctx, l); err != nil {
			return exit(fmt.Errorf("formatting ledger %q: %w", s.cfg.Ledger, err))
		}
		fmt.Fprintf(os.Stderr, "Formatted ledger %q\n", s.cfg.Ledger)
		return subcommands.ExitSuccess
	})
}

type copyCmd struct {
	to string
}

func (*copyCmd) Name() string { return "copy" }
func (*copyCmd) Synopsis() string {
	return "copy the ledger to another file or database"
}
func (*copyCmd) Usage() string {
	return `pcs copy -to <path>

  Copies the whole ledger to path, replacing its content. The destination
  format follows its extension, so copy converts between JSONL files and
  SQLite databases.

Usage Examples:
# Moves a JSONL ledger into SQLite.
$ pcs -ledger-file ledger.jsonl copy -to ledger.db
`
}

func (c *copyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "", "Destination ledger path")
}

func (c *copyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.to == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		if c.to == s.cfg.Ledger {
			return exit(fmt.Errorf("cannot copy %q onto itself", c.to))
		}
		dst, err := OpenStore(c.to, s.log)
		if err != nil {
			return exit(err)
		}
		defer dst.Close()
		if err := dst.Save(ctx, l); err != nil {
			return exit(fmt.Errorf("copying ledger to %q: %w", c.to, err))
		}
		fmt.Fprintf(stdout, "Copied %d holdings to %s\n", len(l.Holdings()), c.to)
		return subcommands.ExitSuccess
	})
}
