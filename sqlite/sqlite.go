// Package sqlite stores a ledger in a SQLite database.
//
// Holdings and transactions keep their insertion order through an
// autoincrement sequence, so that a loaded ledger replays exactly like the
// JSONL file it may have been copied from.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/etnz/holdings/logging"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// settings keys.
const (
	keyCurrency = "currency"
	keyCash     = "cash"
)

// Store is a ledger persisted in SQLite. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens, or creates, the database at path.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:  db,
		log: logging.Component(logger, "sqlite"),
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	s.log.Debug().Str("path", path).Msg("ledger database opened")
	return s, nil
}

// initSchema creates all required tables and indexes.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holdings (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		ticker TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		current_price TEXT NOT NULL DEFAULT '0',
		previous_close TEXT NOT NULL DEFAULT '0'
	);

	CREATE TABLE IF NOT EXISTS transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		holding_id TEXT NOT NULL REFERENCES holdings(id),
		date TEXT NOT NULL,
		kind TEXT NOT NULL,
		quantity TEXT NOT NULL,
		price TEXT NOT NULL,
		fee TEXT NOT NULL DEFAULT '0',
		memo TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_holding ON transactions(holding_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// querier is the subset of *sql.DB and *sql.Tx used to write.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Load reads the whole ledger.
func (s *Store) Load(ctx context.Context) (*holdings.Ledger, error) {
	currency, err := s.setting(ctx, keyCurrency)
	if err != nil {
		return nil, err
	}
	l := holdings.NewLedger(currency)

	cash, err := s.setting(ctx, keyCash)
	if err != nil {
		return nil, err
	}
	if cash != "" {
		amount, err := decimal.NewFromString(cash)
		if err != nil {
			return nil, fmt.Errorf("invalid cash setting %q: %w", cash, err)
		}
		if err := l.SetCash(holdings.M(amount, currency)); err != nil {
			return nil, err
		}
	}

	tickers, err := s.loadHoldings(ctx, l)
	if err != nil {
		return nil, err
	}
	if err := s.loadTransactions(ctx, l, tickers); err != nil {
		return nil, err
	}
	s.log.Debug().Int("holdings", len(tickers)).Msg("ledger loaded")
	return l, nil
}

// loadHoldings declares every holding in l and returns their tickers by ID.
func (s *Store) loadHoldings(ctx context.Context, l *holdings.Ledger) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ticker, name, current_price, previous_close
		FROM holdings
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	tickers := make(map[string]string)
	for rows.Next() {
		var (
			id, ticker, name       string
			current, previousClose decimal.Decimal
		)
		if err := rows.Scan(&id, &ticker, &name, &current, &previousClose); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		tickers[id] = ticker
		l.Declare(ticker, name)
		cur := l.Currency()
		if err := l.SetPrice(ticker, holdings.M(current, cur), holdings.M(previousClose, cur)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}
	return tickers, nil
}

func (s *Store) loadTransactions(ctx context.Context, l *holdings.Ledger, tickers map[string]string) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, holding_id, date, kind, quantity, price, fee, memo
		FROM transactions
		ORDER BY seq ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tx                   holdings.Transaction
			holdingID, day, kind string
			quantity, price, fee decimal.Decimal
		)
		if err := rows.Scan(&tx.ID, &holdingID, &day, &kind, &quantity, &price, &fee, &tx.Memo); err != nil {
			return fmt.Errorf("failed to scan transaction: %w", err)
		}
		if tx.Date, err = date.Parse(day); err != nil {
			return fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		if tx.Kind, err = holdings.ParseKind(kind); err != nil {
			return fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
		tx.Quantity = holdings.Q(quantity)
		tx.Price = holdings.M(price, l.Currency())
		tx.Fee = holdings.M(fee, l.Currency())

		ticker, ok := tickers[holdingID]
		if !ok {
			return fmt.Errorf("transaction %s: %w: %s", tx.ID, holdings.ErrUnknownHolding, holdingID)
		}
		if err := l.Append(ticker, tx); err != nil {
			return fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating transactions: %w", err)
	}
	return nil
}

// Save replaces the stored ledger with l.
func (s *Store) Save(ctx context.Context, l *holdings.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"transactions", "holdings", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if l.Currency() != "" {
		if err := putSetting(ctx, tx, keyCurrency, l.Currency()); err != nil {
			return err
		}
	}
	if err := putSetting(ctx, tx, keyCash, l.Cash().Decimal().String()); err != nil {
		return err
	}

	count := 0
	for _, h := range l.Holdings() {
		if err := declare(ctx, tx, h.Ticker, h.Name); err != nil {
			return err
		}
		if err := setPrice(ctx, tx, h.Ticker, h.CurrentPrice, h.PreviousClose); err != nil {
			return err
		}
		for _, t := range h.Transactions {
			if err := insertTransaction(ctx, tx, h.ID, t); err != nil {
				return err
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Info().Int("transactions", count).Msg("ledger saved")
	return nil
}

// SetCurrency records the ledger currency. It fails if a different one is
// already recorded.
func (s *Store) SetCurrency(ctx context.Context, currency string) error {
	current, err := s.setting(ctx, keyCurrency)
	if err != nil {
		return err
	}
	if current != "" && current != currency {
		return fmt.Errorf("%w: ledger is in %s, not %s", holdings.ErrCurrencyMismatch, current, currency)
	}
	return putSetting(ctx, s.db, keyCurrency, currency)
}

// SetCash records the cash balance.
func (s *Store) SetCash(ctx context.Context, cash holdings.Money) error {
	return putSetting(ctx, s.db, keyCash, cash.Decimal().String())
}

// Declare registers a holding, or renames it when name is not empty.
func (s *Store) Declare(ctx context.Context, ticker, name string) error {
	return declare(ctx, s.db, ticker, name)
}

// AppendTransaction appends tx to the holding for ticker, declaring it if needed.
// tx is expected to be validated against the ledger already.
func (s *Store) AppendTransaction(ctx context.Context, ticker string, tx holdings.Transaction) error {
	if tx.ID == "" {
		tx.ID = holdings.NewID()
	}
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := declare(ctx, sqlTx, ticker, ""); err != nil {
		return err
	}
	if err := insertTransaction(ctx, sqlTx, holdings.HoldingID(ticker), tx); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.log.Debug().Str("ticker", ticker).Str("kind", tx.Kind.String()).Str("id", tx.ID).Msg("transaction appended")
	return nil
}

// SetPrice records the latest prices of a declared holding.
func (s *Store) SetPrice(ctx context.Context, ticker string, current, previousClose holdings.Money) error {
	return setPrice(ctx, s.db, ticker, current, previousClose)
}

func (s *Store) setting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

func putSetting(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

func declare(ctx context.Context, q querier, ticker, name string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO holdings (id, ticker, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = CASE WHEN excluded.name = '' THEN name ELSE excluded.name END
	`, holdings.HoldingID(ticker), ticker, name)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", ticker, err)
	}
	return nil
}

func setPrice(ctx context.Context, q querier, ticker string, current, previousClose holdings.Money) error {
	res, err := q.ExecContext(ctx, `
		UPDATE holdings SET current_price = ?, previous_close = ? WHERE id = ?
	`, current.Decimal(), previousClose.Decimal(), holdings.HoldingID(ticker))
	if err != nil {
		return fmt.Errorf("failed to update price of %s: %w", ticker, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", holdings.ErrUnknownHolding, ticker)
	}
	return nil
}

func insertTransaction(ctx context.Context, q querier, holdingID string, tx holdings.Transaction) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO transactions (id, holding_id, date, kind, quantity, price, fee, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tx.ID, holdingID, tx.Date.String(), tx.Kind.String(), tx.Quantity.Decimal(), tx.Price.Decimal(), tx.Fee.Decimal(), tx.Memo)
	if err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", tx.Kind, tx.ID, err)
	}
	return nil
}
