package holdings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a ratio expressed in percent (12.5 means 12.5%).
type Percent float64

// Equal compares percentages up to 1e-4.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// ratio returns num/den×100, computed exactly before the float conversion.
// A zero denominator yields 0, never NaN or infinity.
func ratio(num, den Money) Percent {
	if den.IsZero() {
		return 0
	}
	return Percent(num.value.Div(den.value).Mul(hundred).InexactFloat64())
}
