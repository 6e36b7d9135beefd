package engine

import (
	"errors"
	"fmt"
)

// ErrNotAuthorized is returned when the caller has no resolvable user and
// household. It carries no detail on purpose: authorization failures must not
// leak whether household-scoped data exists.
var ErrNotAuthorized = errors.New("not authorized")

// ErrNotFound is returned when a referenced entity is absent from the
// caller's household.
var ErrNotFound = errors.New("not found")

// ErrNoItemsSelected is returned by shopping-list promotion when, after
// filtering to the household's pending entries, nothing remains.
var ErrNoItemsSelected = errors.New("no items selected")

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidStateError reports an operation attempted on an entity in the wrong
// lifecycle state, such as settling a bill that is not pending.
type InvalidStateError struct {
	Entity string
	State  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s is %s", e.Entity, e.State)
}

// ConflictError reports a violated uniqueness invariant.
type ConflictError struct {
	Invariant string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Invariant)
}
