package holdings

import (
	"testing"
	"time"

	"github.com/etnz/holdings/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create dates in 2025.
func day(month, d int) date.Date { return date.New(2025, time.Month(month), d) }

func buy(on date.Date, qty int, price, fee float64) Transaction {
	return NewBuy(on, Q(qty), USD(price), USD(fee), "")
}

func sell(on date.Date, qty int, price, fee float64) Transaction {
	return NewSell(on, Q(qty), USD(price), USD(fee), "")
}

func dividend(on date.Date, qty int, perShare float64) Transaction {
	return NewDividend(on, Q(qty), USD(perShare), "")
}

func holding(ticker string, price float64, txs ...Transaction) Holding {
	h := NewHolding(ticker, ticker+" Inc.")
	h.CurrentPrice = USD(price)
	return h.With(txs...)
}

func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got.Decimal(), want.Decimal())
	}
}

func assertPercent(t *testing.T, name string, got, want Percent) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
