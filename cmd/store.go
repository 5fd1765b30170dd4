package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/logging"
	"github.com/etnz/holdings/sqlite"
	"github.com/rs/zerolog"
)

// Store persists a ledger.
//
// Writes are incremental; Save replaces the whole ledger.
type Store interface {
	Load(ctx context.Context) (*holdings.Ledger, error)
	Save(ctx context.Context, l *holdings.Ledger) error

	SetCurrency(ctx context.Context, currency string) error
	Declare(ctx context.Context, ticker, name string) error
	AppendTransaction(ctx context.Context, ticker string, tx holdings.Transaction) error
	SetPrice(ctx context.Context, ticker string, current, previousClose holdings.Money) error
	SetCash(ctx context.Context, cash holdings.Money) error

	Close() error
}

var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*fileStore)(nil)
)

// OpenStore opens the ledger at path: a SQLite database for the .db and
// .sqlite extensions, a JSONL file otherwise.
func OpenStore(path string, logger zerolog.Logger) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.Open(path, logger)
	default:
		return &fileStore{path: path, log: logging.Component(logger, "jsonl")}, nil
	}
}

// fileStore is a ledger in a JSONL file. Writes append lines, the last
// price and cash lines win.
type fileStore struct {
	path string
	log  zerolog.Logger
}

// Load decodes the ledger file. A missing file is an empty ledger.
func (s *fileStore) Load(ctx context.Context) (*holdings.Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Str("path", s.path).Msg("ledger does not exist yet")
		return holdings.NewLedger(""), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return holdings.DecodeLedger(f)
}

// Save rewrites the ledger file in canonical form.
func (s *fileStore) Save(ctx context.Context, l *holdings.Ledger) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("error creating ledger file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := holdings.EncodeLedger(tmp, l); err != nil {
		tmp.Close()
		return fmt.Errorf("error encoding ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error replacing ledger file %q: %w", s.path, err)
	}
	s.log.Info().Str("path", s.path).Msg("ledger saved")
	return nil
}

func (s *fileStore) SetCurrency(ctx context.Context, currency string) error {
	l, err := s.Load(ctx)
	if err != nil {
		return err
	}
	switch l.Currency() {
	case currency:
		return nil
	case "":
		return s.append(func(w io.Writer) error { return holdings.EncodeInit(w, currency) })
	default:
		return fmt.Errorf("%w: ledger is in %s, not %s", holdings.ErrCurrencyMismatch, l.Currency(), currency)
	}
}

func (s *fileStore) Declare(ctx context.Context, ticker, name string) error {
	return s.append(func(w io.Writer) error { return holdings.EncodeDeclaration(w, ticker, name) })
}

func (s *fileStore) AppendTransaction(ctx context.Context, ticker string, tx holdings.Transaction) error {
	return s.append(func(w io.Writer) error { return holdings.EncodeTransaction(w, ticker, tx) })
}

func (s *fileStore) SetPrice(ctx context.Context, ticker string, current, previousClose holdings.Money) error {
	return s.append(func(w io.Writer) error { return holdings.EncodePrice(w, ticker, current, previousClose) })
}

func (s *fileStore) SetCash(ctx context.Context, cash holdings.Money) error {
	return s.append(func(w io.Writer) error { return holdings.EncodeCash(w, cash) })
}

func (s *fileStore) Close() error { return nil }

// append opens the ledger file in append mode, creating it if it doesn't exist.
func (s *fileStore) append(write func(io.Writer) error) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q: %w", s.path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing to ledger file %q: %w", s.path, err)
	}
	return f.Close()
}
