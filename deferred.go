// Copyright 2026 Fluidinfo, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package deferred

import (
	"fmt"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/fluidinfo/deferred/internal/status"
)

// Deferred is a result that isn't immediately available.
//
// It's created Pending, gets fired exactly once with a success or failure
// outcome, and runs its registered handler pairs, in registration order,
// once that happens.
// A handler may return another *Deferred, which pauses the chain until
// that inner deferred resolves, and a Cancel call always reaches whichever
// deferred is the true current point of pendingness, however deep the
// chain of waits is at that moment.
//
// A Deferred must be created by New (or one of the package constructors);
// the zero value is not usable.
//
// Deferred values are not safe for concurrent use; the whole model is
// cooperative and single-threaded.
type Deferred[T any] struct {
	// id is the identity of this deferred, used in String and in the
	// unhandled-failure report.
	id        uuid.UUID
	createdAt time.Time

	// canceller stops the pending operation scheduled by this deferred
	// when Cancel is invoked. It's invoked at most once, and may itself
	// resolve the deferred; if it doesn't, a failure with ErrCancelled
	// is synthesized.
	canceller func(d *Deferred[T])

	// handlers is the chain of handler pairs, consumed from the front
	// by the chain engine; once a pair has run it's never re-run.
	handlers *queue.Queue

	// res holds the current outcome, after the deferred has been fired.
	// it keeps changing while the chain drains, and is final once the
	// fate is resolved.
	res Result[T]

	// waitingOn is a non-owning reference to the inner deferred this one
	// is currently paused on, if any. It's set only by the chain engine,
	// read only by the cancel forwarding, and cleared when the inner
	// deferred resolves.
	waitingOn *Deferred[T]

	// paused suspends drainage of the handler chain while it's greater
	// than zero. The chain engine holds one count per inner wait, and
	// the host can hold more through Pause/Unpause.
	paused int

	// holds the state, fate, and flags of the deferred.
	// refer to the docs of the DefStatus type for more info.
	status status.DefStatus
}

// New returns a new Pending deferred.
//
// The canceller, if non-nil, is called by Cancel to stop the pending
// operation this deferred stands for, and is passed the deferred whose
// cancellation is requested. If the canceller doesn't resolve the
// deferred, Cancel rejects it with ErrCancelled.
// If no canceller is given, Cancel rejects the deferred with ErrCancelled
// and arranges to swallow the one resolution the operation's owner will
// eventually fire.
func New[T any](canceller func(d *Deferred[T])) *Deferred[T] {
	return &Deferred[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		canceller: canceller,
		handlers:  queue.New(),
	}
}

// AddCallbacks adds a pair of handlers (success and failure) to this
// deferred, and returns it for fluent composition.
//
// Once the deferred is fired, exactly one side of each pair runs, in
// registration order, selected by the kind of the current outcome; a nil
// side passes the outcome through unchanged. The value returned from a
// handler becomes the outcome seen by the next pair, so the handlers act
// as a processing chain. A handler returning another *Deferred pauses the
// chain until that deferred resolves.
//
// Adding handlers to a deferred that's the target of a ChainTo call is a
// programming error, and panics.
func (d *Deferred[T]) AddCallbacks(
	onFulfilled func(val T) Result[T],
	onRejected func(err error) Result[T],
) *Deferred[T] {
	return d.addPair(handlerPair[T]{
		onFulfilled: adaptCallback(onFulfilled),
		onRejected:  adaptErrback(onRejected),
	})
}

// AddCallback adds a success handler with no failure side.
//
// See AddCallbacks. It will panic if a nil callback is passed.
func (d *Deferred[T]) AddCallback(onFulfilled func(val T) Result[T]) *Deferred[T] {
	if onFulfilled == nil {
		panic(nilCallbackPanicMsg)
	}
	return d.addPair(handlerPair[T]{onFulfilled: adaptCallback(onFulfilled)})
}

// AddErrback adds a failure handler with no success side.
//
// An errback that returns nil (or any fulfilled Result) consumes the
// failure, and the chain continues on the success side.
// See AddCallbacks. It will panic if a nil callback is passed.
func (d *Deferred[T]) AddErrback(onRejected func(err error) Result[T]) *Deferred[T] {
	if onRejected == nil {
		panic(nilCallbackPanicMsg)
	}
	return d.addPair(handlerPair[T]{onRejected: adaptErrback(onRejected)})
}

// AddBoth adds a single handler as both the success and the failure side
// of one pair, receiving the full outcome either way.
//
// See AddCallbacks. It will panic if a nil callback is passed.
func (d *Deferred[T]) AddBoth(cb func(res Result[T]) Result[T]) *Deferred[T] {
	if cb == nil {
		panic(nilCallbackPanicMsg)
	}
	return d.addPair(handlerPair[T]{onFulfilled: cb, onRejected: cb})
}

// Resolve fires this deferred with a success outcome, and runs its
// handler chain.
//
// It returns ErrAlreadyResolved or ErrAlreadyCancelled if the deferred
// has already been fired, and ErrAlreadyChained if the deferred is the
// target of a ChainTo call.
func (d *Deferred[T]) Resolve(val T) error {
	if status.IsFlagsChained(d.status.Load()) {
		return ErrAlreadyChained
	}
	return d.fire(Val(val))
}

// Reject fires this deferred with a failure outcome, and runs its
// handler chain.
//
// If the failure reaches the end of the chain without any errback
// consuming it, it's reported to the unhandled-failure handler (see
// OnUnhandledFailure) rather than silently dropped.
//
// It returns the same errors as Resolve. It will panic if a nil error
// is passed.
func (d *Deferred[T]) Reject(err error) error {
	if err == nil {
		panic(nilErrorPanicMsg)
	}
	if status.IsFlagsChained(d.status.Load()) {
		return ErrAlreadyChained
	}
	return d.fire(Err[T](err))
}

// Cancel cancels this deferred.
//
// If the deferred has not been fired yet, its canceller, if any, is
// invoked, and if the canceller doesn't resolve the deferred, it's
// rejected with ErrCancelled.
// If the deferred is currently waiting on another deferred, the
// cancellation is forwarded to that deferred instead, recursively, so
// the request always reaches the innermost pending deferred.
//
// Cancelling a deferred that's already finalized returns
// ErrAlreadyCancelled if the earlier resolution was itself caused by a
// cancellation, or ErrAlreadyResolved otherwise.
// Cancelling from inside one of this deferred's own running handlers
// returns ErrReentrantCancel.
func (d *Deferred[T]) Cancel() error {
	s := d.status.Load()

	if status.IsFlagsRunning(s) {
		return ErrReentrantCancel
	}

	if status.IsFateUnresolved(s) {
		d.status.SetCancelRequested()
		if d.canceller != nil {
			d.canceller(d)
		} else {
			// Arrange to eat the resolution that will eventually be fired
			// since there was no real canceller.
			d.status.SetSuppressFire()
		}
		if status.IsFateUnresolved(d.status.Load()) {
			// There was no canceller, or the canceller didn't resolve
			// the deferred.
			return d.fire(Err[T](ErrCancelled))
		}
		return nil
	}

	if d.waitingOn != nil {
		// Waiting on another deferred -- cancel it instead.
		d.status.SetCancelRequested()
		return d.waitingOn.Cancel()
	}

	if status.IsFlagsCancelRequested(s) {
		return ErrAlreadyCancelled
	}
	return ErrAlreadyResolved
}

// Pause stops processing of the handler chain until Unpause is called.
// Pause calls nest; the chain engine itself holds a pause for every
// inner deferred it waits on.
func (d *Deferred[T]) Pause() {
	d.paused++
}

// Unpause undoes one Pause call, and, if no pauses remain and an outcome
// is already pending, resumes drainage of the handler chain.
func (d *Deferred[T]) Unpause() {
	d.paused--
	if d.paused > 0 {
		return
	}
	if !status.IsFateUnresolved(d.status.Load()) {
		d.run()
	}
}

// ChainTo links target to this deferred, so that this deferred's outcome
// flows into target, and returns this deferred.
//
// Cancellation flows along the link too: cancelling this deferred, at any
// time before it has produced an outcome, cancels target as well. This
// holds even though the link is established before either deferred is
// fired, which is exactly where relying on the reactive waiting link
// alone falls short.
//
// The target is marked chained: its outcome can only come from this
// deferred (or from cancellation), so Resolve and Reject on it fail with
// ErrAlreadyChained, and registering handlers on it panics. Handlers the
// target needs must be added before the ChainTo call.
func (d *Deferred[T]) ChainTo(target *Deferred[T]) *Deferred[T] {
	target.status.SetChained()
	return d.addPair(handlerPair[T]{
		onFulfilled: d.chainedFire(target),
		onRejected:  d.chainedFire(target),
	})
}

func (d *Deferred[T]) chainedFire(target *Deferred[T]) handlerFunc[T] {
	return func(res Result[T]) Result[T] {
		if !status.IsFlagsCancelRequested(target.status.Load()) {
			if status.IsFlagsCancelRequested(d.status.Load()) {
				// this deferred was cancelled before producing an outcome
				// of its own, so the link propagates the cancel, not the
				// synthesized outcome.
				_ = target.Cancel()
			} else {
				_ = target.fire(res)
			}
		}
		return res
	}
}

// State returns the kind of this deferred's outcome: Pending until the
// handler chain has fully drained, then Fulfilled or Rejected.
func (d *Deferred[T]) State() State {
	s := d.status.Load()
	if !status.IsFateResolved(s) {
		return Pending
	}
	if status.IsStateRejected(s) {
		return Rejected
	}
	return Fulfilled
}

// Res returns the final outcome of this deferred, or nil if it hasn't
// fully resolved yet.
func (d *Deferred[T]) Res() Result[T] {
	if !status.IsFateResolved(d.status.Load()) {
		return nil
	}
	return d.res
}

// Val returns the final success value of this deferred, or the zero value
// if it's still pending or its outcome is a failure.
// Together with Err and State it makes *Deferred implement Result, so a
// deferred can be returned from a handler.
func (d *Deferred[T]) Val() (v T) {
	if res := d.Res(); res != nil {
		return res.Val()
	}
	return v
}

// Err returns the final failure of this deferred, or nil if it's still
// pending or its outcome is a success.
func (d *Deferred[T]) Err() error {
	if res := d.Res(); res != nil {
		return res.Err()
	}
	return nil
}

// IsCancelled returns true if Cancel has ever been called on this
// deferred, whether it was satisfied locally or forwarded.
func (d *Deferred[T]) IsCancelled() bool {
	return status.IsFlagsCancelRequested(d.status.Load())
}

// ID returns the identity of this deferred.
func (d *Deferred[T]) ID() uuid.UUID {
	return d.id
}

// CreatedAt returns the creation time of this deferred, in UTC.
func (d *Deferred[T]) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Deferred[T]) String() string {
	s := d.status.Load()
	switch {
	case status.IsFateResolved(s):
		return fmt.Sprintf("deferred(%s) %v", shortID(d.id), d.res)
	case d.waitingOn != nil:
		return fmt.Sprintf("deferred(%s) pending, waiting on deferred(%s)",
			shortID(d.id), shortID(d.waitingOn.id))
	default:
		return fmt.Sprintf("deferred(%s) pending", shortID(d.id))
	}
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
