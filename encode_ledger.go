package holdings

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType identifies a line in the JSONL ledger.
type CommandType string

// Command types of the JSONL ledger.
const (
	CmdInit        CommandType = "init"
	CmdDeclare     CommandType = "declare"
	CmdBuy         CommandType = "buy"
	CmdSell        CommandType = "sell"
	CmdDividend    CommandType = "dividend"
	CmdUpdatePrice CommandType = "update-price"
	CmdCash        CommandType = "cash"
)

// record is the union of every field a ledger line can carry.
type record struct {
	Command       CommandType     `json:"command"`
	ID            string          `json:"id"`
	Date          date.Date       `json:"date"`
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Fee           decimal.Decimal `json:"fee"`
	PreviousClose decimal.Decimal `json:"previousClose"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Memo          string          `json:"memo"`
}

// DecodeLedger reads a JSONL ledger, one command per line.
//
// Transactions are appended in file order, which is their insertion order.
// A transaction on an undeclared ticker declares it. The ledger currency is
// set by the "init" line, or else by the first amount carrying a currency.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger("")
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var rec record
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: could not decode %q: %w", line, string(lineBytes), err)
		}
		if err := ledger.apply(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return ledger, nil
}

// apply replays a decoded record into the ledger.
func (l *Ledger) apply(rec record) error {
	if l.currency == "" && rec.Currency != "" {
		l.currency = rec.Currency
		l.cash = l.cash.In(rec.Currency)
	}
	money := func(d decimal.Decimal) Money { return M(d, rec.Currency) }

	switch rec.Command {
	case CmdInit:
		if rec.Currency == "" {
			return fmt.Errorf("%s: currency is missing", rec.Command)
		}
		return nil
	case CmdDeclare:
		if rec.Ticker == "" {
			return fmt.Errorf("%s: ticker is missing", rec.Command)
		}
		l.Declare(rec.Ticker, rec.Name)
		return nil
	case CmdBuy, CmdSell, CmdDividend:
		if rec.Ticker == "" {
			return fmt.Errorf("%s: ticker is missing", rec.Command)
		}
		kind, err := ParseKind(string(rec.Command))
		if err != nil {
			return err
		}
		if l.ids[rec.ID] {
			// A repeated id is a copy-paste of another line, it gets its own.
			rec.ID = ""
		}
		return l.Append(rec.Ticker, Transaction{
			ID:       rec.ID,
			Date:     rec.Date,
			Kind:     kind,
			Quantity: Q(rec.Quantity),
			Price:    money(rec.Price),
			Fee:      money(rec.Fee),
			Memo:     rec.Memo,
		})
	case CmdUpdatePrice:
		return l.SetPrice(rec.Ticker, money(rec.Price), money(rec.PreviousClose))
	case CmdCash:
		return l.SetCash(money(rec.Amount))
	default:
		return fmt.Errorf("unknown command %q", rec.Command)
	}
}

// EncodeLedger writes the whole ledger as JSONL: the currency, the cash
// balance, then each holding's declaration, transactions and latest prices.
func EncodeLedger(w io.Writer, l *Ledger) error {
	bw := bufio.NewWriter(w)

	if l.currency != "" {
		if err := EncodeInit(bw, l.currency); err != nil {
			return err
		}
	}
	if !l.cash.IsZero() {
		if err := EncodeCash(bw, l.cash); err != nil {
			return err
		}
	}
	for _, h := range l.holdings {
		if err := EncodeDeclaration(bw, h.Ticker, h.Name); err != nil {
			return err
		}
		for _, tx := range h.Transactions {
			if err := EncodeTransaction(bw, h.Ticker, tx); err != nil {
				return err
			}
		}
		if !h.CurrentPrice.IsZero() || !h.PreviousClose.IsZero() {
			if err := EncodePrice(bw, h.Ticker, h.CurrentPrice, h.PreviousClose); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// EncodeInit writes the line setting the ledger currency.
func EncodeInit(w io.Writer, currency string) error {
	var o jsonObjectWriter
	o.Append("command", CmdInit).Append("currency", currency)
	return writeLine(w, &o)
}

// EncodeDeclaration writes the line declaring a holding for ticker.
func EncodeDeclaration(w io.Writer, ticker, name string) error {
	var o jsonObjectWriter
	o.Append("command", CmdDeclare).Append("ticker", ticker).Optional("name", name)
	return writeLine(w, &o)
}

// EncodeTransaction writes a single transaction line for ticker.
func EncodeTransaction(w io.Writer, ticker string, tx Transaction) error {
	return writeLine(w, transactionRecord(ticker, tx))
}

// EncodePrice writes the line recording the latest prices of ticker.
func EncodePrice(w io.Writer, ticker string, current, previousClose Money) error {
	return writeLine(w, priceRecord(ticker, current, previousClose))
}

// EncodeCash writes the line setting the cash balance.
func EncodeCash(w io.Writer, cash Money) error {
	return writeLine(w, cashRecord(cash))
}

func writeLine(w io.Writer, o *jsonObjectWriter) error {
	b, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func transactionRecord(ticker string, tx Transaction) *jsonObjectWriter {
	var o jsonObjectWriter
	o.Append("command", tx.Kind.String())
	o.Append("id", tx.ID)
	o.Append("date", tx.Date)
	o.Append("ticker", ticker)
	o.Append("quantity", tx.Quantity)
	o.Decimal("price", tx.Price.Decimal(), false)
	o.Decimal("fee", tx.Fee.Decimal(), true)
	o.Optional("currency", tx.Price.Currency())
	o.Optional("memo", tx.Memo)
	return &o
}

func priceRecord(ticker string, current, previousClose Money) *jsonObjectWriter {
	var o jsonObjectWriter
	o.Append("command", CmdUpdatePrice)
	o.Append("ticker", ticker)
	o.Decimal("price", current.Decimal(), false)
	o.Decimal("previousClose", previousClose.Decimal(), true)
	o.Optional("currency", cur(current, previousClose))
	return &o
}

func cashRecord(cash Money) *jsonObjectWriter {
	var o jsonObjectWriter
	o.Append("command", CmdCash)
	o.Decimal("amount", cash.Decimal(), false)
	o.Optional("currency", cash.Currency())
	return &o
}
