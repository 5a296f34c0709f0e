package deferred

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyResolved is returned when Resolve, Reject, or Cancel is
	// called on a deferred whose outcome has already been finalized.
	ErrAlreadyResolved = errors.New("deferred: already resolved")

	// ErrAlreadyCancelled is returned when Resolve, Reject, or Cancel is
	// called on a deferred whose resolution was caused by an earlier
	// cancellation.
	ErrAlreadyCancelled = errors.New("deferred: already cancelled")

	// ErrAlreadyChained is returned when Resolve or Reject is called on a
	// deferred that has been made the target of a ChainTo call, as such a
	// deferred gets its outcome from its source only.
	ErrAlreadyChained = errors.New("deferred: already chained to another deferred")

	// ErrReentrantCancel is returned when Cancel is called on a deferred
	// from inside one of its own running handlers.
	ErrReentrantCancel = errors.New("deferred: cancel called from a running handler")

	// ErrCancelled is the synthesized failure outcome produced when a
	// deferred is cancelled and its canceller, if any, doesn't supply an
	// outcome of its own.
	ErrCancelled = errors.New("deferred: cancelled")
)

var (
	// ErrQueueOverflow is returned by Queue.Put when the queue already
	// holds its maximum number of pending values.
	ErrQueueOverflow = errors.New("deferred: queue overflow")

	// ErrQueueUnderflow is returned by Queue.Get when too many gets are
	// already waiting for a value.
	ErrQueueUnderflow = errors.New("deferred: queue underflow")
)

// PanicError wraps a panic value recovered from a handler, so that the
// panic continues down the chain as an ordinary failure outcome.
type PanicError struct {
	V any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("deferred: handler panicked: %v", e.V)
}

// UnhandledFailure wraps a failure outcome that drained to the end of its
// handler chain without any errback consuming it.
// It's passed to the unhandled-failure handler (see OnUnhandledFailure),
// never returned from any call.
type UnhandledFailure struct {
	id  uuid.UUID
	err error
}

func (e *UnhandledFailure) Error() string {
	return fmt.Sprintf("unhandled failure in deferred(%s): %s", e.id, e.err)
}

func (e *UnhandledFailure) Unwrap() error {
	return e.err
}

// ID returns the identity of the deferred the failure drained off of.
func (e *UnhandledFailure) ID() uuid.UUID {
	return e.id
}

func newUnhandledFailure(id uuid.UUID, err error) *UnhandledFailure {
	return &UnhandledFailure{id: id, err: err}
}

// FirstError is the failure a List rejects with when FireOnOneError is
// set, recording which of its deferreds failed first.
type FirstError struct {
	Idx int
	err error
}

func (e *FirstError) Error() string {
	return fmt.Sprintf("deferred: first error, at index %d: %s", e.Idx, e.err)
}

func (e *FirstError) Unwrap() error {
	return e.err
}
