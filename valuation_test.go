package holdings

import (
	"testing"
)

func TestValuate_EndToEnd(t *testing.T) {
	h := holding("AAPL", 223.52,
		buy(day(1, 10), 10, 164.67, 0),
		buy(day(2, 10), 20, 167.48, 0),
		sell(day(3, 10), 5, 178.09, 0),
	)
	v := Valuate(h, DailyChange{})

	if got, want := v.TotalQuantity, Q(25); !got.Equal(want) {
		t.Errorf("TotalQuantity = %v, want %v", got, want)
	}
	assertMoney(t, "TotalCost", v.TotalCost, USD(4996.3))
	assertMoney(t, "TotalSoldValue", v.TotalSoldValue, USD(890.45))
	assertMoney(t, "MarketValue", v.MarketValue, USD(5588))
	assertMoney(t, "TotalPL", v.TotalPL, USD(1482.15))
	assertMoney(t, "CostOfCurrentHoldings", v.CostOfCurrentHoldings, USD(4172.95))
	assertMoney(t, "CostBasis", v.CostBasis, USD(166.918))
	assertMoney(t, "HoldingPL", v.HoldingPL, USD(1415.05))
	assertPercent(t, "HoldingPLPercent", v.HoldingPLPercent, 33.91006362)
	assertPercent(t, "TotalPLPercent", v.TotalPLPercent, 29.66495206)

	if got, want := v.TotalPL.Round().String(), "$1,482.15"; got != want {
		t.Errorf("TotalPL.String() = %q, want %q", got, want)
	}
}

func TestValuate_Fees(t *testing.T) {
	h := holding("ACME", 12,
		buy(day(1, 1), 10, 10, 5),
		sell(day(1, 2), 4, 11, 2),
	)
	v := Valuate(h, DailyChange{})

	assertMoney(t, "TotalCost", v.TotalCost, USD(105))
	assertMoney(t, "TotalSoldValue", v.TotalSoldValue, USD(42))
	assertMoney(t, "CostOfCurrentHoldings", v.CostOfCurrentHoldings, USD(63))
	assertMoney(t, "CostBasis", v.CostBasis, USD(10.5))
	assertMoney(t, "MarketValue", v.MarketValue, USD(72))
	assertMoney(t, "HoldingPL", v.HoldingPL, USD(9))
	assertMoney(t, "TotalPL", v.TotalPL, USD(9))
}

func TestValuate_ZeroBaseGuards(t *testing.T) {
	t.Run("empty holding", func(t *testing.T) {
		v := Valuate(holding("NONE", 10), DailyChange{})
		for name, m := range map[string]Money{
			"TotalCost":             v.TotalCost,
			"TotalSoldValue":        v.TotalSoldValue,
			"CostOfCurrentHoldings": v.CostOfCurrentHoldings,
			"CostBasis":             v.CostBasis,
			"MarketValue":           v.MarketValue,
			"HoldingPL":             v.HoldingPL,
			"TotalPL":               v.TotalPL,
			"CumulativeDividend":    v.CumulativeDividend,
		} {
			if !m.IsZero() {
				t.Errorf("%s = %v, want 0", name, m)
			}
		}
		if !v.TotalQuantity.IsZero() {
			t.Errorf("TotalQuantity = %v, want 0", v.TotalQuantity)
		}
		if v.HoldingPLPercent != 0 || v.TotalPLPercent != 0 {
			t.Errorf("percents = %v, %v, want 0", v.HoldingPLPercent, v.TotalPLPercent)
		}
	})

	t.Run("free shares", func(t *testing.T) {
		v := Valuate(holding("GIFT", 10, buy(day(1, 1), 10, 0, 0)), DailyChange{})
		assertMoney(t, "MarketValue", v.MarketValue, USD(100))
		assertMoney(t, "HoldingPL", v.HoldingPL, USD(100))
		assertMoney(t, "TotalPL", v.TotalPL, USD(100))
		if v.HoldingPLPercent != 0 {
			t.Errorf("HoldingPLPercent = %v, want 0", v.HoldingPLPercent)
		}
		if v.TotalPLPercent != 0 {
			t.Errorf("TotalPLPercent = %v, want 0", v.TotalPLPercent)
		}
	})

	t.Run("missing price", func(t *testing.T) {
		h := holding("STALE", 0, buy(day(1, 1), 10, 10, 0))
		h.CurrentPrice = Money{}
		v := Valuate(h, DailyChange{})
		if !v.MarketValue.IsZero() {
			t.Errorf("MarketValue = %v, want 0", v.MarketValue)
		}
		assertMoney(t, "HoldingPL", v.HoldingPL, USD(-100))
		assertPercent(t, "HoldingPLPercent", v.HoldingPLPercent, -100)
	})
}

func TestValuate_DividendExclusion(t *testing.T) {
	base := holding("DIV", 110, buy(day(1, 1), 10, 100, 1))
	with := base.With(dividend(day(6, 1), 10, 0.5), dividend(day(12, 1), 0, 0.5))

	b, w := Valuate(base, DailyChange{}), Valuate(with, DailyChange{})
	if !b.TotalQuantity.Equal(w.TotalQuantity) {
		t.Errorf("TotalQuantity changed by dividends: %v -> %v", b.TotalQuantity, w.TotalQuantity)
	}
	assertMoney(t, "TotalCost", w.TotalCost, b.TotalCost)
	assertMoney(t, "TotalSoldValue", w.TotalSoldValue, b.TotalSoldValue)
	assertMoney(t, "CostOfCurrentHoldings", w.CostOfCurrentHoldings, b.CostOfCurrentHoldings)
	assertMoney(t, "TotalPL", w.TotalPL, b.TotalPL)
	assertMoney(t, "CumulativeDividend", w.CumulativeDividend, USD(5))
	if !b.CumulativeDividend.IsZero() {
		t.Errorf("CumulativeDividend without dividends = %v, want 0", b.CumulativeDividend)
	}
}

func TestValuate_RealizedVersusUnrealized(t *testing.T) {
	h := holding("EXIT", 160,
		buy(day(1, 1), 10, 100, 0),
		sell(day(2, 1), 10, 150, 0),
	)
	v := Valuate(h, DailyChange{})

	if !v.TotalQuantity.IsZero() {
		t.Fatalf("TotalQuantity = %v, want 0", v.TotalQuantity)
	}
	if v.IsOpen() {
		t.Error("IsOpen() = true for a fully sold holding")
	}
	if !v.HoldingPL.IsZero() || v.HoldingPLPercent != 0 {
		t.Errorf("HoldingPL = %v (%v), want 0", v.HoldingPL, v.HoldingPLPercent)
	}
	assertMoney(t, "TotalPL", v.TotalPL, USD(500))
	assertPercent(t, "TotalPLPercent", v.TotalPLPercent, 50)
	if v.TotalPL.Equal(v.HoldingPL) {
		t.Error("TotalPL and HoldingPL must differ once gains are realized")
	}
	if !v.CostBasis.IsZero() {
		t.Errorf("CostBasis = %v, want 0", v.CostBasis)
	}
}

func TestValuate_DailyChangeIsPassedThrough(t *testing.T) {
	daily := DailyChange{PL: USD(-12.5), Percent: -1.25}
	v := Valuate(holding("AAPL", 100, buy(day(1, 1), 10, 90, 0)), daily)
	assertMoney(t, "DailyPL", v.DailyPL, daily.PL)
	if v.DailyPLPercent != daily.Percent {
		t.Errorf("DailyPLPercent = %v, want %v", v.DailyPLPercent, daily.Percent)
	}
}

func TestValuate_ClampsNegativeInputs(t *testing.T) {
	bad := Transaction{ID: "x", Date: day(1, 1), Kind: Buy, Quantity: Q(10), Price: USD(10), Fee: USD(-5)}
	v := Valuate(holding("BAD", 10, bad), DailyChange{})
	assertMoney(t, "TotalCost", v.TotalCost, USD(100))

	unknown := Transaction{ID: "y", Date: day(1, 2), Quantity: Q(10), Price: USD(10)}
	v = Valuate(holding("BAD", 10, bad, unknown), DailyChange{})
	if !v.TotalQuantity.Equal(Q(10)) {
		t.Errorf("TotalQuantity = %v, an invalid kind must not count", v.TotalQuantity)
	}
}

func TestValuate_Idempotent(t *testing.T) {
	h := holding("AAPL", 223.52,
		buy(day(1, 10), 10, 164.67, 1.5),
		buy(day(2, 10), 20, 167.48, 1.5),
		sell(day(3, 10), 7, 178.09, 2),
		dividend(day(4, 1), 23, 0.24),
	)
	daily := DailyChange{PL: USD(10), Percent: 0.2}
	first, second := Valuate(h, daily), Valuate(h, daily)
	if !first.Equal(second) {
		t.Errorf("Valuate() is not idempotent:\n%+v\n%+v", first, second)
	}
	if len(h.Transactions) != 4 || h.Transactions[2].Kind != Sell {
		t.Error("Valuate() modified the holding transactions")
	}
}

func TestNewDailyChange(t *testing.T) {
	tests := []struct {
		name              string
		current, previous Money
		qty               int
		pl                Money
		percent           Percent
	}{
		{"up", USD(110), USD(100), 10, USD(100), 10},
		{"down", USD(90), USD(100), 5, USD(-50), -10},
		{"no previous close", USD(90), Money{}, 5, Money{}, 0},
		{"no current price", Money{}, USD(100), 5, Money{}, 0},
		{"nothing held", USD(110), USD(100), 0, Money{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDailyChange(tt.current, tt.previous, Q(tt.qty))
			if !got.PL.Decimal().Equal(tt.pl.Decimal()) {
				t.Errorf("PL = %v, want %v", got.PL.Decimal(), tt.pl.Decimal())
			}
			assertPercent(t, "Percent", got.Percent, tt.percent)
		})
	}
}
