package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/quote"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	update bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio performance summary" }
func (*summaryCmd) Usage() string {
	return `pcs summary [-u]

  Displays the portfolio totals: market value, cash, total assets and the
  daily, holding and total P&L.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "update with latest prices before calculating the report")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		if c.update {
			if err := updatePrices(ctx, s, l); err != nil {
				return exit(err)
			}
		}
		summary := holdings.Summarize(l.Valuate(quote.Held), l.Cash())
		if summary.Skipped > 0 {
			s.log.Warn().Int("holdings", summary.Skipped).Msg("holdings in another currency left out of the summary")
		}
		printMarkdown(renderer.SummaryMarkdown(summary))
		return subcommands.ExitSuccess
	})
}

// chartCmd holds the flags for the 'chart' subcommand.
type chartCmd struct {
	top int
	png string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "display the concentration of the portfolio" }
func (*chartCmd) Usage() string {
	return `pcs chart [-top <n>] [-png <file>]

  Displays the share of the largest holdings in the portfolio market value,
  the others grouped together. With -png it also draws them as a donut chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", holdings.DefaultTopBuckets, "Number of holdings shown before grouping the rest")
	f.StringVar(&c.png, "png", "", "Write a donut chart to this PNG file")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runLedger(ctx, func(s *session, l *holdings.Ledger) subcommands.ExitStatus {
		buckets := holdings.Concentration(l.Valuate(nil), c.top)
		printMarkdown(renderer.ConcentrationMarkdown(buckets))
		if c.png == "" {
			return subcommands.ExitSuccess
		}
		return exit(writeChart(c.png, buckets))
	})
}

// writeChart draws buckets into the PNG file at path.
func writeChart(path string, buckets []holdings.Bucket) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := renderer.DonutPNG(buckets, out); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Chart written to %s\n", path)
	return nil
}
