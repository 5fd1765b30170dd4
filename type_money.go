package holdings

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a single currency.
//
// The empty currency is "weak": it takes the currency of the other operand
// in binary operations, so that zero values can be summed into anything.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money from any numeric value and a currency code.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(2)
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// In returns the same amount labelled with currency, if m has none yet.
func (m Money) In(currency string) Money {
	if m.cur != "" {
		return m
	}
	return Money{value: m.value, cur: currency}
}

// as returns the same amount labelled with currency, whatever its label.
// An empty currency leaves m unchanged.
func (m Money) as(currency string) Money {
	if currency == "" {
		return m
	}
	return Money{value: m.value, cur: currency}
}

// sameCurrency reports whether amounts labelled a and b can be combined.
func sameCurrency(a, b string) bool { return a == "" || b == "" || a == b }

// Round returns m rounded to its currency fraction digits.
func (m Money) Round() Money {
	fraction := 2
	if m.cur != "" {
		fraction = m.currency().Fraction
	}
	return Money{value: m.value.Round(int32(fraction)), cur: m.cur}
}

// AsFloat is reserved to outputs that need a float (charts). Calculations stay exact.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// clamp returns m, or zero in the same currency if m is negative.
func (m Money) clamp() Money {
	if m.IsNegative() {
		return Money{cur: m.cur}
	}
	return m
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}
