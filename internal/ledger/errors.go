package ledger

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("amount must be > 0")
	// ErrSelfTransfer indicates source and destination are the same card.
	ErrSelfTransfer = errors.New("cannot transfer to the same card")
	// ErrInsufficientFunds indicates the source balance does not cover
	// the requested amount. Nothing is mutated.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrDestinationNotFound indicates the destination card does not exist.
	ErrDestinationNotFound = errors.New("destination account not found")
	// ErrNotFound indicates an unknown account on a read.
	ErrNotFound = errors.New("account not found")
	// ErrConflict indicates concurrent transfers kept colliding on the
	// same accounts after internal retries. The caller may retry.
	ErrConflict = errors.New("transfer conflicted, retry")
	// ErrStorageUnavailable indicates the underlying store is unreachable.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
