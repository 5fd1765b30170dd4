package holdings

import (
	"fmt"
	"testing"
)

// worth returns an open valuation named name with a market value of mv.
func worth(name string, mv float64) Valuation {
	return Valuation{Name: name, TotalQuantity: Q(1), MarketValue: USD(mv)}
}

func labels(buckets []Bucket) string {
	var s string
	for _, b := range buckets {
		s += fmt.Sprintf("%s=%s ", b.Label, b.Value.Decimal())
	}
	return s
}

func TestConcentration(t *testing.T) {
	tests := []struct {
		name string
		vals []Valuation
		top  int
		want string
	}{
		{
			name: "four holdings keep input order",
			vals: []Valuation{worth("A", 100), worth("B", 400), worth("C", 300), worth("D", 200)},
			want: "A=100 B=400 C=300 D=200 ",
		},
		{
			name: "five holdings get an Other bucket",
			vals: []Valuation{worth("A", 100), worth("B", 400), worth("C", 300), worth("D", 200), worth("E", 50)},
			want: "B=400 C=300 D=200 A=100 Other=50 ",
		},
		{
			name: "ties keep input order",
			vals: []Valuation{worth("A", 1), worth("B", 1), worth("C", 1), worth("D", 1), worth("E", 1), worth("F", 1)},
			want: "A=1 B=1 C=1 D=1 Other=2 ",
		},
		{
			name: "closed holdings are ignored",
			vals: []Valuation{worth("A", 1), {Name: "Z", MarketValue: USD(1000)}, worth("B", 2), worth("C", 3), worth("D", 4)},
			want: "A=1 B=2 C=3 D=4 ",
		},
		{
			name: "custom top",
			vals: []Valuation{worth("A", 1), worth("B", 2), worth("C", 3)},
			top:  2,
			want: "C=3 B=2 Other=1 ",
		},
		{
			name: "zero total",
			vals: []Valuation{worth("A", 0), worth("B", 0)},
			want: "",
		},
		{
			name: "nothing",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labels(Concentration(tt.vals, tt.top)); got != tt.want {
				t.Errorf("Concentration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConcentration_Shares(t *testing.T) {
	vals := []Valuation{worth("A", 100), worth("B", 400), worth("C", 300), worth("D", 200), worth("E", 50)}
	got := Concentration(vals, DefaultTopBuckets)

	want := []Percent{38.0952381, 28.5714286, 19.0476190, 9.5238095, 4.7619048}
	if len(got) != len(want) {
		t.Fatalf("Concentration() returned %d buckets, want %d", len(got), len(want))
	}
	var total Percent
	for i, b := range got {
		assertPercent(t, b.Label, b.Share, want[i])
		total += b.Share
	}
	assertPercent(t, "sum of shares", total, 100)

	if got[len(got)-1].Label != OtherLabel {
		t.Errorf("last bucket = %q, want %q", got[len(got)-1].Label, OtherLabel)
	}
	// the smallest holding alone makes the Other bucket
	assertMoney(t, "Other", got[4].Value, USD(50))
	if vals[0].Name != "A" {
		t.Error("Concentration() reordered its input")
	}
}
