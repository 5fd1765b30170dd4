package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// decimalFlag is a flag.Value for exact amounts and quantities.
type decimalFlag struct {
	decimal.Decimal
	set bool // set is true once the flag was given.
}

func (d *decimalFlag) String() string { return d.Decimal.String() }

func (d *decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	d.Decimal, d.set = v, true
	return nil
}

// parseDay parses a command line date, today if empty.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
