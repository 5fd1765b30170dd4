package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/etnz/holdings/sqlite"
	"github.com/rs/zerolog"
)

func TestOpenStore_ByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ledger.db", "ledger.SQLITE"} {
		s, err := OpenStore(filepath.Join(dir, name), zerolog.Nop())
		if err != nil {
			t.Fatalf("OpenStore(%q) error = %v", name, err)
		}
		if _, ok := s.(*sqlite.Store); !ok {
			t.Errorf("OpenStore(%q) = %T, want a SQLite store", name, s)
		}
		s.Close()
	}
	s, err := OpenStore(filepath.Join(dir, "ledger.jsonl"), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*fileStore); !ok {
		t.Errorf("OpenStore(ledger.jsonl) = %T, want a file store", s)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.jsonl")
	s, _ := OpenStore(path, zerolog.Nop())

	l, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() of a missing file error = %v", err)
	}
	if l.Currency() != "" || len(l.Holdings()) != 0 {
		t.Fatalf("Load() of a missing file = %v, want an empty ledger", l)
	}

	usd := func(v float64) holdings.Money { return holdings.M(v, "USD") }
	buy := holdings.NewBuy(date.New(2025, 1, 10), holdings.Q(10), usd(164.67), usd(1), "")
	steps := []error{
		s.SetCurrency(ctx, "USD"),
		s.SetCurrency(ctx, "USD"),
		s.Declare(ctx, "AAPL", "Apple"),
		s.AppendTransaction(ctx, "AAPL", buy),
		s.SetPrice(ctx, "AAPL", usd(200), usd(190)),
		s.SetPrice(ctx, "AAPL", usd(223.52), usd(222.52)),
		s.SetCash(ctx, usd(412)),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}
	if err := s.SetCurrency(ctx, "EUR"); !errors.Is(err, holdings.ErrCurrencyMismatch) {
		t.Errorf("SetCurrency(EUR) error = %v, want %v", err, holdings.ErrCurrencyMismatch)
	}

	l, err = s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	h, ok := l.Holding("AAPL")
	if !ok || h.Name != "Apple" || len(h.Transactions) != 1 || !h.Transactions[0].Equal(buy) {
		t.Fatalf("Holding(AAPL) = %+v", h)
	}
	if !h.CurrentPrice.Equal(usd(223.52)) || !l.Cash().Equal(usd(412)) {
		t.Errorf("last price and cash did not win: %v, %v", h.CurrentPrice, l.Cash())
	}

	if err := s.Save(ctx, l); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), "\n"); got != 5 {
		t.Errorf("saved ledger has %d lines, want 5:\n%s", got, content)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Save() left temporary files: %v", entries)
	}
}
