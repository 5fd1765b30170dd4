// Package cmd implements the CLI application to track the holdings of a
// stock portfolio.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/holdings"
	"github.com/etnz/holdings/logging"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// Command is a subcommand and the group it is listed in.
type Command struct {
	subcommands.Command
	Group string
}

// Commands lists every subcommand of pcs.
var Commands = []Command{
	{&declareCmd{}, "ledger"},
	{&buyCmd{}, "transactions"},
	{&sellCmd{}, "transactions"},
	{&dividendCmd{}, "transactions"},
	{&priceCmd{}, "ledger"},
	{&cashCmd{}, "ledger"},
	{&updateCmd{}, "ledger"},
	{&fmtCmd{}, "ledger"},
	{&copyCmd{}, "ledger"},

	{&holdingsCmd{}, "reports"},
	{&holdingCmd{}, "reports"},
	{&summaryCmd{}, "reports"},
	{&chartCmd{}, "reports"},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile      = flag.String("ledger-file", "", "Path to the ledger: a JSONL file, or a SQLite database if it ends with .db or .sqlite (default \""+defaultLedger+"\")")
	configFile      = flag.String("config", defaultConfig, "Path to the optional TOML configuration file")
	defaultCurrency = flag.String("default-currency", "", "Currency of a new ledger (default \""+defaultCurrencyCode+"\")")
	eodhdAPIKey     = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read the environment variable \""+EnvEODHDAPIKey+"\". You can get one at https://eodhd.com/")
	rawMarkdown     = flag.Bool("raw", false, "Print reports as raw markdown")
	// Verbose enables debug logs.
	Verbose = flag.Bool("v", false, "Verbose logging")
)

// session is what a command run works with: the resolved configuration,
// the logger and the open ledger store.
type session struct {
	cfg   Config
	log   zerolog.Logger
	store Store
}

// newSession loads the configuration and opens the ledger store.
func newSession() (*session, error) {
	// a missing .env file is not an error.
	_ = godotenv.Load()

	cfg, err := resolveConfig(*configFile, os.Getenv, flagConfig())
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.logging())

	store, err := OpenStore(cfg.Ledger, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: logger, store: store}, nil
}

// Close closes the ledger store.
func (s *session) Close() error { return s.store.Close() }

// ledger loads the ledger. A ledger without currency is given the
// configured one.
func (s *session) ledger(ctx context.Context) (*holdings.Ledger, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ledger %q: %w", s.cfg.Ledger, err)
	}
	if l.Currency() != "" {
		return l, nil
	}
	if err := s.store.SetCurrency(ctx, s.cfg.Currency); err != nil {
		return nil, err
	}
	s.log.Info().Str("currency", s.cfg.Currency).Msg("ledger currency set")
	return s.store.Load(ctx)
}

// runLedger opens a session and runs f with the loaded ledger.
func runLedger(ctx context.Context, f func(*session, *holdings.Ledger) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := newSession()
	if err != nil {
		return exit(err)
	}
	defer s.Close()

	l, err := s.ledger(ctx)
	if err != nil {
		return exit(err)
	}
	return f(s, l)
}

// exit reports err the subcommands way.
func exit(err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal, or prints it raw if asked to
// or if rendering fails.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
