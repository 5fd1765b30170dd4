package holdings

import (
	"fmt"

	"github.com/etnz/holdings/date"
	"github.com/google/uuid"
)

// Kind identifies the nature of a Transaction.
//
// The set of kinds is closed. Formulas never switch on Kind directly, they go
// through byKind, so that adding a kind breaks every formula at compile time.
type Kind int

// Transaction kinds. The zero Kind is invalid.
const (
	Buy Kind = iota + 1
	Sell
	Dividend
)

// byKind selects the value matching kind k. An invalid kind selects the zero value.
func byKind[T any](k Kind, buy, sell, dividend T) T {
	switch k {
	case Buy:
		return buy
	case Sell:
		return sell
	case Dividend:
		return dividend
	}
	var zero T
	return zero
}

func (k Kind) String() string {
	return byKind(k, "buy", "sell", "dividend")
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	return byKind(k, true, true, true)
}

// ParseKind parses a command name into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Buy, Sell, Dividend} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction is one immutable ledger event on a holding.
type Transaction struct {
	ID       string    // ID is an opaque unique identifier, assigned at creation.
	Date     date.Date // Date is the day the event happened.
	Kind     Kind
	Quantity Quantity // Quantity of shares traded, or the shares a dividend is paid on.
	Price    Money    // Price per share, or dividend amount per share.
	Fee      Money    // Fee is the trading commission. Always zero for dividends.
	Memo     string   // Memo is an optional note.
}

// NewBuy creates a new Buy transaction with a fresh ID.
func NewBuy(day date.Date, quantity Quantity, price, fee Money, memo string) Transaction {
	return newTransaction(Buy, day, quantity, price, fee, memo)
}

// NewSell creates a new Sell transaction with a fresh ID.
func NewSell(day date.Date, quantity Quantity, price, fee Money, memo string) Transaction {
	return newTransaction(Sell, day, quantity, price, fee, memo)
}

// NewDividend creates a new Dividend transaction with a fresh ID.
// perShare is paid on quantity shares; quantity may be zero.
func NewDividend(day date.Date, quantity Quantity, perShare Money, memo string) Transaction {
	return newTransaction(Dividend, day, quantity, perShare, Money{cur: perShare.cur}, memo)
}

func newTransaction(kind Kind, day date.Date, quantity Quantity, price, fee Money, memo string) Transaction {
	return Transaction{
		ID:       NewID(),
		Date:     day,
		Kind:     kind,
		Quantity: quantity,
		Price:    price,
		Fee:      fee,
		Memo:     memo,
	}
}

// NewID returns a new random transaction identifier.
func NewID() string { return uuid.NewString() }

// Equal reports whether t and o carry the same values.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Date == o.Date && t.Kind == o.Kind && t.Memo == o.Memo &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) && t.Fee.Equal(o.Fee)
}

// Validate checks the shape of the transaction: a known kind, a date, and
// non-negative numbers. It says nothing about the position it applies to.
func (t Transaction) Validate() error {
	switch {
	case !t.Kind.IsValid():
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidTransaction, t.Kind)
	case t.Date.IsZero():
		return fmt.Errorf("%w: %s has no date", ErrInvalidTransaction, t.Kind)
	case t.Quantity.IsNegative():
		return fmt.Errorf("%w: %s quantity must not be negative, got %s", ErrInvalidTransaction, t.Kind, t.Quantity)
	case !t.Quantity.IsInteger():
		return fmt.Errorf("%w: %s quantity must be a whole number of shares, got %s", ErrInvalidTransaction, t.Kind, t.Quantity)
	case t.Price.IsNegative():
		return fmt.Errorf("%w: %s price must not be negative, got %s", ErrInvalidTransaction, t.Kind, t.Price)
	case t.Fee.IsNegative():
		return fmt.Errorf("%w: %s fee must not be negative, got %s", ErrInvalidTransaction, t.Kind, t.Fee)
	case t.Kind == Dividend && !t.Fee.IsZero():
		return fmt.Errorf("%w: dividend cannot have a fee", ErrInvalidTransaction)
	case t.Kind != Dividend && t.Quantity.IsZero():
		return fmt.Errorf("%w: %s quantity must be positive", ErrInvalidTransaction, t.Kind)
	}
	return nil
}

// The accessors below clamp negative inputs to zero, so that the engine
// degrades numerically on malformed data instead of failing.

func (t Transaction) quantity() Quantity { return t.Quantity.clamp() }
func (t Transaction) price() Money       { return t.Price.clamp() }
func (t Transaction) fee() Money         { return t.Fee.clamp() }

// gross is quantity×price.
func (t Transaction) gross() Money { return t.price().Mul(t.quantity()) }

// shares is the signed effect on the position: dividends never move it.
func (t Transaction) shares() Quantity {
	q := t.quantity()
	return byKind(t.Kind, q, q.Neg(), Quantity{})
}

// cost is the cash spent on a buy, fee included.
func (t Transaction) cost() Money {
	return byKind(t.Kind, t.gross().Add(t.fee()), Money{}, Money{})
}

// proceeds is the cash received from a sell, net of fee.
func (t Transaction) proceeds() Money {
	return byKind(t.Kind, Money{}, t.gross().Sub(t.fee()), Money{})
}

// income is the dividend received.
func (t Transaction) income() Money {
	return byKind(t.Kind, Money{}, Money{}, t.gross())
}

// retired is the number of shares a sell takes out of the lots.
func (t Transaction) retired() Quantity {
	return byKind(t.Kind, Quantity{}, t.quantity(), Quantity{})
}
