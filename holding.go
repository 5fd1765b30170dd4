package holdings

import (
	"slices"
	"strings"
)

// Holding is one security's full position: display metadata, the latest
// known prices and the transactions in insertion order.
//
// A Holding is a plain value. Derived figures are never stored, use Valuate.
type Holding struct {
	ID            string // ID is the uppercase ticker, see HoldingID.
	Ticker        string
	Name          string
	CurrentPrice  Money // CurrentPrice is refreshed by the price feed.
	PreviousClose Money // PreviousClose is refreshed by the price feed.
	Transactions  []Transaction
}

// HoldingID returns the unique key of a holding for ticker.
func HoldingID(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// NewHolding returns an empty holding for ticker.
func NewHolding(ticker, name string) Holding {
	return Holding{
		ID:     HoldingID(ticker),
		Ticker: strings.TrimSpace(ticker),
		Name:   name,
	}
}

// Label returns the name to display for h.
func (h Holding) Label() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Ticker
}

// With returns a copy of h with txs appended. h is left untouched.
func (h Holding) With(txs ...Transaction) Holding {
	h.Transactions = append(slices.Clip(h.Transactions), txs...)
	return h
}

// Chronological returns a copy of the transactions sorted by date. Transactions
// on the same day keep their insertion order.
func (h Holding) Chronological() []Transaction {
	return chronological(h.Transactions)
}

func chronological(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	return sorted
}

// Position returns the net number of shares held: buys minus sells.
func Position(txs []Transaction) Quantity {
	var q Quantity
	for _, tx := range txs {
		q = q.Add(tx.shares())
	}
	return q
}

// ValidateTransaction checks tx against the holding it would be appended to.
// On top of Transaction.Validate, a sell must not make the position negative,
// neither on its date nor on any later date.
//
// The engine itself accepts over-sold ledgers, this check belongs to the
// ingestion of new transactions.
func ValidateTransaction(h Holding, tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if tx.Kind != Sell {
		return nil
	}
	txs := append(slices.Clone(h.Transactions), tx)
	added := len(txs) - 1
	order := make([]int, len(txs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return txs[a].Date.Compare(txs[b].Date) })

	// lowest is the smallest position from the date of tx onwards.
	var running, lowest Quantity
	seen := false
	for _, i := range order {
		running = running.Add(txs[i].shares())
		if i == added {
			seen, lowest = true, running
		}
		if seen && running.LessThan(lowest) {
			lowest = running
		}
	}
	if lowest.IsNegative() {
		return &OverSellError{Ticker: h.Ticker, Held: tx.Quantity.Add(lowest).clamp(), Sold: tx.Quantity}
	}
	return nil
}

// OverSellError details an ErrOverSell.
type OverSellError struct {
	Ticker string
	Held   Quantity
	Sold   Quantity
}

func (e *OverSellError) Error() string {
	return "cannot sell " + e.Sold.String() + " " + e.Ticker + ": only " + e.Held.String() + " held"
}

func (e *OverSellError) Unwrap() error { return ErrOverSell }
