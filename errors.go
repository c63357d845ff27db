package tracker

import "errors"

// Every failure an operation can produce wraps one of these sentinels, so the
// presentation layer can classify it with errors.Is and translate it into a
// user-visible message. The engine itself never logs or retries, and an error
// always leaves the prior state untouched.
var (
	// ErrValidation reports invalid input: an empty title, a non-positive
	// amount, or an unparseable date.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound reports an update or remove for an id that is not in the ledger.
	ErrNotFound = errors.New("transaction not found")

	// ErrInsufficientFunds reports a withdrawal exceeding the savings balance
	// or a deposit exceeding the available ledger balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrImportParse reports an import payload that is unreadable as a whole.
	// Individual malformed rows never produce it; they degrade to defaults.
	ErrImportParse = errors.New("cannot parse import data")
)
