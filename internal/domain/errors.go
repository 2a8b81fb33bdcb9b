package domain

import "errors"

var (
	ErrInvalidKind          = errors.New("invalid event kind")
	ErrAccountLocked        = errors.New("account locked")
	ErrMissingAmount        = errors.New("missing amount")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrClientMismatch       = errors.New("transaction belongs to another client")
	ErrNotDisputed          = errors.New("transaction not disputed")
	ErrDuplicateTransaction = errors.New("duplicate transaction id")
)

// Rejections lists every per-event rejection error. Anything else returned
// while processing an event is a fault, not a rejection.
var Rejections = []error{
	ErrInvalidKind,
	ErrAccountLocked,
	ErrMissingAmount,
	ErrInsufficientFunds,
	ErrTransactionNotFound,
	ErrClientMismatch,
	ErrNotDisputed,
	ErrDuplicateTransaction,
}

// RejectionReason returns the sentinel that err wraps, or nil when err is not
// a per-event rejection.
func RejectionReason(err error) error {
	for _, r := range Rejections {
		if errors.Is(err, r) {
			return r
		}
	}
	return nil
}
