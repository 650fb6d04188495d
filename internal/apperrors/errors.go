package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the capability required for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrStoreUnavailable indicates the document store could not be reached.
// A posting that fails with this error is considered not committed and is
// safe to retry thanks to the source-event idempotency key.
var ErrStoreUnavailable = errors.New("document store unavailable")

// ErrUnbalanced indicates a journal entry whose debit and credit totals
// differ beyond the rounding tolerance. Match with errors.Is; use errors.As
// with *UnbalancedEntryError to recover the computed totals.
var ErrUnbalanced = errors.New("journal entry does not balance")

// UnbalancedEntryError carries both computed totals so callers (and the
// manual-entry form) can show the operator the exact discrepancy.
type UnbalancedEntryError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry does not balance: debits %s, credits %s", e.Debits.String(), e.Credits.String())
}

func (e *UnbalancedEntryError) Unwrap() error {
	return ErrUnbalanced
}
