package holdings

import "errors"

var (
	// ErrInvalidTransaction is returned for transactions with an invalid shape
	// (unknown kind, negative quantity, ...).
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrOverSell is returned when a sell exceeds the position it applies to.
	ErrOverSell = errors.New("sell exceeds position")
	// ErrUnknownHolding is returned when a ticker is not declared in the ledger.
	ErrUnknownHolding = errors.New("unknown holding")
	// ErrCurrencyMismatch is returned when an amount is not in the ledger currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)
