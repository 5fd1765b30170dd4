package holdings

import (
	"fmt"
	"slices"
)

// Ledger is the record of every holding and its transactions, plus the cash
// balance, all in a single currency.
//
// Holdings are kept in declaration order. Ledger is not safe for concurrent
// use; its readers return copies that are.
type Ledger struct {
	currency string
	cash     Money
	holdings []Holding
	index    map[string]int  // holding position by ID
	ids      map[string]bool // transaction IDs in use
}

// NewLedger creates an empty ledger in currency.
func NewLedger(currency string) *Ledger {
	return &Ledger{
		currency: currency,
		cash:     M(0, currency),
		index:    make(map[string]int),
		ids:      make(map[string]bool),
	}
}

// Currency returns the ledger currency.
func (l *Ledger) Currency() string { return l.currency }

// Cash returns the cash balance.
func (l *Ledger) Cash() Money { return l.cash }

// SetCash replaces the cash balance.
func (l *Ledger) SetCash(cash Money) error {
	cash, err := l.inCurrency(cash)
	if err != nil {
		return err
	}
	l.cash = cash
	return nil
}

// Declare registers a holding for ticker, or renames it if it exists.
// An empty name keeps the current one.
func (l *Ledger) Declare(ticker, name string) {
	id := HoldingID(ticker)
	if i, ok := l.index[id]; ok {
		if name != "" {
			l.holdings[i].Name = name
		}
		return
	}
	l.index[id] = len(l.holdings)
	l.holdings = append(l.holdings, NewHolding(ticker, name))
}

// Append adds transactions to the holding for ticker, declaring it if needed.
// Each transaction must have a valid shape, an ID not used yet in the ledger,
// and be in the ledger currency; amounts without currency are assumed in the
// ledger currency.
//
// Append does not check the position, see ValidateTransaction.
func (l *Ledger) Append(ticker string, txs ...Transaction) error {
	l.Declare(ticker, "")
	h := &l.holdings[l.index[HoldingID(ticker)]]
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%s on %s: %w", tx.Kind, tx.Date, err)
		}
		var err error
		if tx.Price, err = l.inCurrency(tx.Price); err != nil {
			return err
		}
		if tx.Fee, err = l.inCurrency(tx.Fee); err != nil {
			return err
		}
		if tx.ID == "" {
			tx.ID = NewID()
		}
		if l.ids[tx.ID] {
			return fmt.Errorf("%s on %s: %w: duplicate id %q", tx.Kind, tx.Date, ErrInvalidTransaction, tx.ID)
		}
		l.ids[tx.ID] = true
		h.Transactions = append(h.Transactions, tx)
	}
	return nil
}

// SetPrice records the latest prices of the holding for ticker.
func (l *Ledger) SetPrice(ticker string, current, previousClose Money) error {
	i, ok := l.index[HoldingID(ticker)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHolding, ticker)
	}
	var err error
	if current, err = l.inCurrency(current); err != nil {
		return err
	}
	if previousClose, err = l.inCurrency(previousClose); err != nil {
		return err
	}
	l.holdings[i].CurrentPrice = current
	l.holdings[i].PreviousClose = previousClose
	return nil
}

// Holding returns a copy of the holding for ticker.
func (l *Ledger) Holding(ticker string) (Holding, bool) {
	i, ok := l.index[HoldingID(ticker)]
	if !ok {
		return Holding{}, false
	}
	h := l.holdings[i]
	h.Transactions = slices.Clone(h.Transactions)
	return h, true
}

// Holdings returns a copy of every holding in declaration order, closed ones included.
func (l *Ledger) Holdings() []Holding {
	res := make([]Holding, len(l.holdings))
	for i, h := range l.holdings {
		h.Transactions = slices.Clone(h.Transactions)
		res[i] = h
	}
	return res
}

// Tickers returns the tickers of the holdings still held.
func (l *Ledger) Tickers() []string {
	var res []string
	for _, h := range l.holdings {
		if Position(h.Transactions).IsPositive() {
			res = append(res, h.Ticker)
		}
	}
	return res
}

// Valuate valuates every holding. daily supplies the daily change of a
// holding; it can be nil when there is none.
func (l *Ledger) Valuate(daily func(Holding) DailyChange) []Valuation {
	vals := make([]Valuation, 0, len(l.holdings))
	for _, h := range l.Holdings() {
		var d DailyChange
		if daily != nil {
			d = daily(h)
		}
		vals = append(vals, Valuate(h, d))
	}
	return vals
}

// inCurrency labels m with the ledger currency, or fails if m is in another one.
func (l *Ledger) inCurrency(m Money) (Money, error) {
	if m.cur != "" && l.currency != "" && m.cur != l.currency {
		return m, fmt.Errorf("%w: %s amount in a %s ledger", ErrCurrencyMismatch, m.cur, l.currency)
	}
	return m.In(l.currency), nil
}
