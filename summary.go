package holdings

// Summary is the portfolio-wide roll-up of the open holdings.
type Summary struct {
	Holdings int   // Holdings is the number of open holdings summed.
	Skipped  int   // Skipped counts open holdings left out for their currency.
	Cash     Money // Cash is the cash balance, carried for display only.

	TotalMarketValue Money
	TotalDailyPL     Money
	TotalHoldingPL   Money
	TotalPL          Money

	TotalDailyPLPercent   Percent
	TotalHoldingPLPercent Percent
	TotalPLPercent        Percent
}

// TotalAssets returns the market value plus the cash balance.
func (s Summary) TotalAssets() Money {
	return s.TotalMarketValue.Add(s.Cash)
}

// Summarize sums the open valuations. Closed holdings are skipped.
//
// The totals are in the currency of cash, or of the first open valuation
// when cash has none. Open valuations in another currency are left out and
// counted in Skipped.
//
// Each percentage is computed on the value before the change,
// total/(marketValue-total), and is zero when that base is zero.
func Summarize(vals []Valuation, cash Money) Summary {
	var s Summary
	ref := cash.cur
	for _, v := range vals {
		if !v.IsOpen() {
			continue
		}
		c := v.currency()
		if ref == "" {
			ref = c
		}
		if !sameCurrency(c, ref) {
			s.Skipped++
			continue
		}
		s.Holdings++
		s.TotalMarketValue = s.TotalMarketValue.Add(v.MarketValue.as(ref))
		s.TotalDailyPL = s.TotalDailyPL.Add(v.DailyPL.as(ref))
		s.TotalHoldingPL = s.TotalHoldingPL.Add(v.HoldingPL.as(ref))
		s.TotalPL = s.TotalPL.Add(v.TotalPL.as(ref))
	}
	s.Cash = cash.as(ref)

	s.TotalDailyPLPercent = backSolved(s.TotalDailyPL, s.TotalMarketValue)
	s.TotalHoldingPLPercent = backSolved(s.TotalHoldingPL, s.TotalMarketValue)
	s.TotalPLPercent = backSolved(s.TotalPL, s.TotalMarketValue)
	return s
}

// backSolved returns change as a percent of the value it was made from:
// change/(value-change)×100.
func backSolved(change, value Money) Percent {
	return ratio(change, value.Sub(change))
}
