package holdings

import (
	"github.com/etnz/holdings/date"
)

// Lot is what remains of a single buy after FIFO retirement.
type Lot struct {
	Date     date.Date
	Quantity Quantity // Quantity still held from this buy.
	Cost     Money    // Cost of those shares, fee prorated.
}

// CostBasis returns the cost per share of the lot.
func (l Lot) CostBasis() Money {
	if l.Quantity.IsZero() {
		return Money{cur: l.Cost.cur}
	}
	return l.Cost.Div(l.Quantity)
}

type lots []Lot

// buyLots returns one lot per buy, oldest first, same-day buys in insertion order.
func buyLots(txs []Transaction) lots {
	var l lots
	for _, tx := range chronological(txs) {
		if tx.Kind != Buy {
			continue
		}
		l = append(l, Lot{Date: tx.Date, Quantity: tx.quantity(), Cost: tx.cost()})
	}
	return l
}

// retire walks the lots oldest first and takes quantity shares out of them.
// It returns the lots left and the cost of the retired shares. A lot's cost,
// fee included, leaves pro rata to the shares taken from it.
//
// When quantity exceeds the lots, every lot is retired and the excess is
// ignored.
func (l lots) retire(quantity Quantity) (remaining lots, retiredCost Money) {
	for i, current := range l {
		if !quantity.IsPositive() {
			remaining = append(remaining, l[i:]...)
			break
		}
		if current.Quantity.IsZero() {
			remaining = append(remaining, current)
			continue
		}
		taken := current.Quantity.Min(quantity)
		cost := current.Cost.Mul(taken).Div(current.Quantity)
		retiredCost = retiredCost.Add(cost)
		quantity = quantity.Sub(taken)

		if left := current.Quantity.Sub(taken); left.IsPositive() {
			remaining = append(remaining, Lot{Date: current.Date, Quantity: left, Cost: current.Cost.Sub(cost)})
		}
	}
	return remaining, retiredCost
}

func (l lots) cost() Money {
	var total Money
	for _, lot := range l {
		total = total.Add(lot.Cost)
	}
	return total
}

// currencyOf returns the first currency label found on the amounts of txs.
func currencyOf(txs []Transaction) string {
	for _, tx := range txs {
		if tx.Price.cur != "" {
			return tx.Price.cur
		}
		if tx.Fee.cur != "" {
			return tx.Fee.cur
		}
	}
	return ""
}

// relabeled returns a copy of txs with every amount labelled currency.
func relabeled(txs []Transaction, currency string) []Transaction {
	if currency == "" {
		return txs
	}
	res := make([]Transaction, len(txs))
	for i, tx := range txs {
		tx.Price, tx.Fee = tx.Price.as(currency), tx.Fee.as(currency)
		res[i] = tx
	}
	return res
}

// sold returns the total number of shares sold, regardless of the sell dates.
func sold(txs []Transaction) Quantity {
	var q Quantity
	for _, tx := range txs {
		q = q.Add(tx.retired())
	}
	return q
}

// CostOfCurrentHoldings returns the cost, fees included, of the shares still
// held, assuming the oldest shares are sold first.
//
// Sells are matched in aggregate against the buy queue, their dates are not
// compared to the buy dates. It returns zero when nothing is held.
func CostOfCurrentHoldings(txs []Transaction) Money {
	txs = relabeled(txs, currencyOf(txs))
	if !Position(txs).IsPositive() {
		return Money{}
	}
	buys := buyLots(txs)
	_, retired := buys.retire(sold(txs))
	return buys.cost().Sub(retired)
}

// OpenLots returns the lots still held after FIFO retirement, oldest first.
// It returns nil when nothing is held.
func OpenLots(txs []Transaction) []Lot {
	txs = relabeled(txs, currencyOf(txs))
	if !Position(txs).IsPositive() {
		return nil
	}
	remaining, _ := buyLots(txs).retire(sold(txs))
	return remaining
}
