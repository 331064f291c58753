package usecase

import (
	"errors"
	"fmt"

	"sterkbouw_quotes/internal/domain/entities"
)

var (
	ErrInvalidWorkRequestID = errors.New("invalid work request id")
	ErrInvalidQuoteID       = errors.New("invalid quote id")
	ErrInvalidUserID        = errors.New("invalid user id")
	ErrInvalidApproval      = errors.New("invalid approval input")
	ErrInvalidCostInput     = errors.New("invalid cost input")

	ErrWorkRequestNotFound = errors.New("work request not found")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteAlreadyExists  = errors.New("quote already exists for this work request")

	// ErrQuoteExpired is distinct from a state conflict: the quote was
	// approvable once but its validity window has closed.
	ErrQuoteExpired = errors.New("quote validity window has passed")

	// ErrAllocationFailed wraps numbering backend failures. A quote is never
	// created with an unallocated identifier.
	ErrAllocationFailed = errors.New("quote number allocation failed")

	// ErrRenderingFailed wraps renderer failures and timeouts. By the time it
	// is returned the generation_failed state has already been persisted.
	ErrRenderingFailed = errors.New("document rendering failed")
)

// StateConflictError reports an action attempted from the wrong state. It
// always carries the status actually found so callers can react without a
// second read.
type StateConflictError struct {
	QuoteID  string
	Expected []entities.QuoteStatus
	Actual   entities.QuoteStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("quote %s is %q, expected one of %v", e.QuoteID, e.Actual, e.Expected)
}

func newStateConflict(quoteID string, actual entities.QuoteStatus, expected ...entities.QuoteStatus) *StateConflictError {
	return &StateConflictError{QuoteID: quoteID, Expected: expected, Actual: actual}
}
