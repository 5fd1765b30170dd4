package holdings

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Buy, Sell, Dividend} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseKind("split"); err == nil {
		t.Error("ParseKind(split) expected an error")
	}
	if Kind(0).IsValid() || Kind(0).String() != "" {
		t.Error("the zero Kind must be invalid")
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		ok   bool
	}{
		{"buy", buy(day(1, 1), 1, 10, 1), true},
		{"free buy", buy(day(1, 1), 1, 0, 0), true},
		{"sell", sell(day(1, 1), 1, 10, 1), true},
		{"dividend", dividend(day(1, 1), 10, 0.5), true},
		{"dividend on no shares", dividend(day(1, 1), 0, 0.5), true},
		{"zero buy", buy(day(1, 1), 0, 10, 0), false},
		{"zero sell", sell(day(1, 1), 0, 10, 0), false},
		{"negative price", buy(day(1, 1), 1, -10, 0), false},
		{"negative fee", sell(day(1, 1), 1, 10, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTransaction) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidTransaction)
			}
		})
	}
}

func TestNewTransaction_UniqueIDs(t *testing.T) {
	a, b := buy(day(1, 1), 1, 1, 0), buy(day(1, 1), 1, 1, 0)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs = %q, %q, want distinct non empty IDs", a.ID, b.ID)
	}
	if a.Equal(b) {
		t.Error("Equal() = true for transactions with different IDs")
	}
	b.ID = a.ID
	if !a.Equal(b) {
		t.Error("Equal() = false for identical transactions")
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{USD(1482.154), "$1,482.15"},
		{USD(-3.5), "-$3.50"},
		{M(12.5, ""), "12.50"},
		{Money{}, "0.00"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if got := USD(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want %q", got, "-")
	}
	if got := USD(2).SignedString(); got != "+$2.00" {
		t.Errorf("SignedString(2) = %q, want %q", got, "+$2.00")
	}
}

func TestMoney_CurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding USD to EUR did not panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}
