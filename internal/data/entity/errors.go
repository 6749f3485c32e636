package entity

import "errors"

// Domain outcomes of the booking flow. Handlers map each of these to a
// distinct HTTP status with errors.Is, so callers can tell a retryable
// re-selection (conflict, insufficient, expired) apart from a denied
// request or an infrastructure failure.
var (
	// ErrSlotConflict: the slot was reserved by another booking between
	// selection and submission.
	ErrSlotConflict = errors.New("slot no longer available")

	// ErrInsufficientBalance: the balance has fewer remaining minutes
	// than the booking needs.
	ErrInsufficientBalance = errors.New("insufficient ticket balance")

	// ErrBalanceExpired: the balance's validity window has passed.
	ErrBalanceExpired = errors.New("ticket balance expired")

	// ErrOwnershipMismatch: slot/teacher or balance/student pairing does
	// not match the requester's actual relationships.
	ErrOwnershipMismatch = errors.New("resource does not belong to requester")

	// ErrInvalidTransition: booking status change not allowed from the
	// current state.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrNotFound = errors.New("not found")
)
