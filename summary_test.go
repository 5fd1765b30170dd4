package holdings

import "testing"

func TestSummarize(t *testing.T) {
	vals := []Valuation{
		Valuate(holding("UP", 110, buy(day(1, 1), 10, 100, 0)), DailyChange{PL: USD(20)}),
		Valuate(holding("DOWN", 180, buy(day(1, 1), 5, 200, 0)), DailyChange{PL: USD(-10)}),
		// closed position, left out of every total
		Valuate(holding("GONE", 30, buy(day(1, 1), 1, 10, 0), sell(day(1, 2), 1, 20, 0)), DailyChange{PL: USD(99)}),
	}
	s := Summarize(vals, USD(500))

	if s.Holdings != 2 {
		t.Errorf("Holdings = %d, want 2", s.Holdings)
	}
	assertMoney(t, "TotalMarketValue", s.TotalMarketValue, USD(2000))
	assertMoney(t, "TotalDailyPL", s.TotalDailyPL, USD(10))
	assertMoney(t, "TotalHoldingPL", s.TotalHoldingPL, USD(0))
	assertMoney(t, "TotalPL", s.TotalPL, USD(0))
	assertMoney(t, "Cash", s.Cash, USD(500))
	assertMoney(t, "TotalAssets", s.TotalAssets(), USD(2500))

	// 10 / (2000 - 10)
	assertPercent(t, "TotalDailyPLPercent", s.TotalDailyPLPercent, 0.50251256)
	assertPercent(t, "TotalHoldingPLPercent", s.TotalHoldingPLPercent, 0)
	assertPercent(t, "TotalPLPercent", s.TotalPLPercent, 0)
}

func TestSummarize_BackSolvedPercent(t *testing.T) {
	open := func(mv, pl float64) Valuation {
		return Valuation{TotalQuantity: Q(1), MarketValue: USD(mv), HoldingPL: USD(pl), TotalPL: USD(pl)}
	}
	tests := []struct {
		name string
		vals []Valuation
		want Percent
	}{
		{"gain", []Valuation{open(150, 50)}, 50},
		{"loss", []Valuation{open(50, -50)}, -50},
		{"change equals value", []Valuation{open(100, 100)}, 0},
		{"nothing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.vals, Money{})
			assertPercent(t, "TotalPLPercent", s.TotalPLPercent, tt.want)
			assertPercent(t, "TotalHoldingPLPercent", s.TotalHoldingPLPercent, tt.want)
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, USD(42))
	if s.Holdings != 0 || !s.TotalMarketValue.IsZero() || !s.TotalPL.IsZero() {
		t.Errorf("Summarize(nil) = %+v, want zero totals", s)
	}
	assertMoney(t, "TotalAssets", s.TotalAssets(), USD(42))
}
