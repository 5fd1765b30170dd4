package holdings

// DailyChange is the P&L of the day for one holding.
//
// It is computed by the price feed collaborator from the previous close, the
// engine only carries it along.
type DailyChange struct {
	PL      Money
	Percent Percent
}

// NewDailyChange returns the change of quantity shares moving from
// previousClose to current. It is zero when either price is unknown.
func NewDailyChange(current, previousClose Money, quantity Quantity) DailyChange {
	if !current.IsPositive() || !previousClose.IsPositive() || !quantity.IsPositive() {
		return DailyChange{}
	}
	pl := current.Sub(previousClose).Mul(quantity)
	return DailyChange{
		PL:      pl,
		Percent: backSolved(pl, current.Mul(quantity)),
	}
}

// Valuation is the complete P&L view of a single holding.
type Valuation struct {
	HoldingID    string
	Ticker       string
	Name         string
	CurrentPrice Money

	TotalQuantity  Quantity // TotalQuantity is shares bought minus shares sold.
	TotalCost      Money    // TotalCost is the cost of every buy, fees included.
	TotalSoldValue Money    // TotalSoldValue is the proceeds of every sell, net of fees.

	// CostOfCurrentHoldings is the FIFO cost of the shares still held.
	CostOfCurrentHoldings Money
	CostBasis             Money // CostBasis is the cost per share still held.
	MarketValue           Money

	HoldingPL        Money // HoldingPL is the unrealized P&L of the shares held.
	HoldingPLPercent Percent
	TotalPL          Money // TotalPL is realized plus unrealized P&L.
	TotalPLPercent   Percent

	CumulativeDividend Money

	DailyPL        Money
	DailyPLPercent Percent
}

// currency returns the first currency label found on the amounts of v.
func (v Valuation) currency() string {
	for _, m := range []Money{v.MarketValue, v.CurrentPrice, v.TotalCost, v.TotalSoldValue,
		v.CostOfCurrentHoldings, v.HoldingPL, v.TotalPL, v.CumulativeDividend, v.DailyPL} {
		if m.cur != "" {
			return m.cur
		}
	}
	return ""
}

// IsOpen reports whether the holding still has shares. Closed (or over-sold)
// holdings are left out of the portfolio views.
func (v Valuation) IsOpen() bool { return v.TotalQuantity.IsPositive() }

// Label returns the name to display for the valuated holding.
func (v Valuation) Label() string {
	if v.Name != "" {
		return v.Name
	}
	return v.Ticker
}

// Equal reports whether v and w hold exactly the same figures.
func (v Valuation) Equal(w Valuation) bool {
	return v.HoldingID == w.HoldingID && v.Ticker == w.Ticker && v.Name == w.Name &&
		v.CurrentPrice.Equal(w.CurrentPrice) &&
		v.TotalQuantity.Equal(w.TotalQuantity) &&
		v.TotalCost.Equal(w.TotalCost) &&
		v.TotalSoldValue.Equal(w.TotalSoldValue) &&
		v.CostOfCurrentHoldings.Equal(w.CostOfCurrentHoldings) &&
		v.CostBasis.Equal(w.CostBasis) &&
		v.MarketValue.Equal(w.MarketValue) &&
		v.HoldingPL.Equal(w.HoldingPL) && v.HoldingPLPercent == w.HoldingPLPercent &&
		v.TotalPL.Equal(w.TotalPL) && v.TotalPLPercent == w.TotalPLPercent &&
		v.CumulativeDividend.Equal(w.CumulativeDividend) &&
		v.DailyPL.Equal(w.DailyPL) && v.DailyPLPercent == w.DailyPLPercent
}

// Valuate computes the P&L view of h at its current price.
//
// It never fails: missing prices give a zero market value, and every
// percentage with a zero base is zero. The valuation is in the currency of
// the transactions; a price or daily change labelled otherwise is taken as
// an amount in that currency.
func Valuate(h Holding, daily DailyChange) Valuation {
	cur := currencyOf(h.Transactions)
	if cur == "" {
		cur = h.CurrentPrice.cur
	}
	txs := relabeled(h.Transactions, cur)
	zero := Money{cur: cur}
	v := Valuation{
		HoldingID:          h.ID,
		Ticker:             h.Ticker,
		Name:               h.Name,
		CurrentPrice:       h.CurrentPrice.as(cur).clamp(),
		TotalCost:          zero,
		TotalSoldValue:     zero,
		CumulativeDividend: zero,
		DailyPL:            daily.PL.as(cur),
		DailyPLPercent:     daily.Percent,
	}

	for _, tx := range txs {
		v.TotalQuantity = v.TotalQuantity.Add(tx.shares())
		v.TotalCost = v.TotalCost.Add(tx.cost())
		v.TotalSoldValue = v.TotalSoldValue.Add(tx.proceeds())
		v.CumulativeDividend = v.CumulativeDividend.Add(tx.income())
	}

	v.CostOfCurrentHoldings = CostOfCurrentHoldings(txs).In(cur)
	v.MarketValue = v.CurrentPrice.Mul(v.TotalQuantity)

	v.CostBasis, v.HoldingPL = zero, zero
	if v.TotalQuantity.IsPositive() {
		v.CostBasis = v.CostOfCurrentHoldings.Div(v.TotalQuantity)
		v.HoldingPL = v.MarketValue.Sub(v.CostOfCurrentHoldings)
	}
	if v.CostOfCurrentHoldings.IsPositive() {
		v.HoldingPLPercent = ratio(v.HoldingPL, v.CostOfCurrentHoldings)
	}

	v.TotalPL = v.MarketValue.Add(v.TotalSoldValue).Sub(v.TotalCost)
	if v.TotalCost.IsPositive() {
		v.TotalPLPercent = ratio(v.TotalPL, v.TotalCost)
	}
	return v
}
