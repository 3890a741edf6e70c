package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound - the referenced farmer, purchaser or trade does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidTrade - required monetary fields missing or not positive.
	ErrInvalidTrade = errors.New("invalid trade entry")

	// ErrInvalidAmount - payment amount must be greater than zero.
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
)

// RecalcError reports a persistence failure while writing a recalculated
// balance. The primary record (trade or payment) was already persisted when
// this happens, so the party's stored balance is stale until the
// recalculation is retried. Never swallowed.
type RecalcError struct {
	PartyKind string // "farmer" or "purchaser"
	PartyID   uint
	Err       error
}

func (e *RecalcError) Error() string {
	return fmt.Sprintf("balance recalculation failed for %s %d: %v", e.PartyKind, e.PartyID, e.Err)
}

func (e *RecalcError) Unwrap() error { return e.Err }
