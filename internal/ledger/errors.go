package ledger

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned before any store interaction when the movement
// request itself is malformed (unknown kind, non-positive quantity or id).
var ErrInvalidInput = errors.New("invalid movement input")

// ErrProductNotFound is returned when no balance row exists for the product.
var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError rejects an outbound movement larger than the current
// balance. Carries the numbers so callers can surface them verbatim.
type InsufficientStockError struct {
	Balance   int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("current balance (%d) insufficient for outbound of %d", e.Balance, e.Requested)
}

// BelowThresholdError rejects an outbound movement that would leave the
// balance under the product's minimum-stock floor.
type BelowThresholdError struct {
	Threshold int
	Resulting int
}

func (e *BelowThresholdError) Error() string {
	return fmt.Sprintf("balance would fall to %d, below the minimum threshold (%d)", e.Resulting, e.Threshold)
}

// StoreError wraps any infrastructure failure inside the transaction. The
// transaction is rolled back before it is reported, so re-submission is safe.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
