package errors

import "fmt"

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates a failed authentication attempt
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation indicates a malformed or invariant-violating input
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// ErrPricingMismatch indicates the client-submitted total does not match
// the server-side recomputation. The order boundary fails closed on it.
type ErrPricingMismatch struct {
	Expected string
	Got      string
}

func (e *ErrPricingMismatch) Error() string {
	return fmt.Sprintf("pricing mismatch: server computed %s, client submitted %s", e.Expected, e.Got)
}

// ErrCartConflict indicates the cart changed during checkout (items removed
// by availability validation) and the order cannot proceed as submitted.
type ErrCartConflict struct {
	Removed []string
}

func (e *ErrCartConflict) Error() string {
	return fmt.Sprintf("cart changed during checkout, %d item(s) no longer available", len(e.Removed))
}

// ErrAvailabilityUnavailable indicates the availability snapshot could not
// be fetched. Display callers may fall back; the order boundary must not.
type ErrAvailabilityUnavailable struct {
	Cause error
}

func (e *ErrAvailabilityUnavailable) Error() string {
	return fmt.Sprintf("availability snapshot unavailable: %v", e.Cause)
}

func (e *ErrAvailabilityUnavailable) Unwrap() error {
	return e.Cause
}

// ErrInvalidStateTransition indicates an illegal order status change
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}
