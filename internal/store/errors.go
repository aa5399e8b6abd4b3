package store

import "errors"

// Business-rule errors surfaced to callers. Handlers map these to HTTP
// statuses with errors.Is; the wrapped messages carry the limiting values.
var (
	// ErrNotFound means the referenced product, officer or transaction
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock means an issue asked for more units than the
	// product has available.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrExceedsRemaining means a return asked for more units than are
	// still outstanding on the transaction.
	ErrExceedsRemaining = errors.New("return quantity exceeds remaining")

	// ErrAlreadyReturned means the transaction is fully returned and
	// accepts no further returns.
	ErrAlreadyReturned = errors.New("already fully returned")

	// ErrSourceUnavailable means the configured spreadsheet could not be
	// located or opened.
	ErrSourceUnavailable = errors.New("spreadsheet source unavailable")
)
