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
	"github.com/fluidinfo/deferred/internal/status"
)

// Panic messages for misuse of the package's API.
const (
	nilCallbackPanicMsg = "deferred: nil callback"
	nilErrorPanicMsg    = "deferred: nil error passed to Reject"
	chainedPanicMsg     = "deferred: cannot add handlers to a chained deferred"
)

// addPair appends one handler pair to the chain, and drains the chain
// immediately if an outcome is already in flight.
func (d *Deferred[T]) addPair(pair handlerPair[T]) *Deferred[T] {
	if status.IsFlagsChained(d.status.Load()) {
		panic(chainedPanicMsg)
	}

	d.handlers.Add(pair)
	if !status.IsFateUnresolved(d.status.Load()) {
		d.run()
	}
	return d
}

// fire delivers the outcome to this deferred and starts draining its
// handler chain. Each deferred accepts exactly one fire; the error
// returns surface the attempts coming after it.
func (d *Deferred[T]) fire(res Result[T]) error {
	s := d.status.Load()
	if !status.IsFateUnresolved(s) {
		if cleared, _ := d.status.ClearSuppressFire(); cleared {
			// The one late resolution expected after a bare cancel;
			// eaten, not an error.
			return nil
		}
		if status.IsFlagsCancelRequested(s) {
			return ErrAlreadyCancelled
		}
		return ErrAlreadyResolved
	}

	d.status.SetResolving()
	d.updateRes(res)
	d.run()
	return nil
}

// updateRes installs res as the current outcome of the chain, keeping
// the state section of the status word in step with its kind.
func (d *Deferred[T]) updateRes(res Result[T]) {
	if res == nil {
		res = Empty[T]()
	}
	d.res = res
	if res.Err() != nil {
		d.status.SetStateRejected()
	} else {
		d.status.SetStateFulfilled()
	}
}

// run drains the handler chain, feeding the outcome of each handler to
// the next, until the chain is empty, paused, or waiting on an inner
// deferred returned by a handler.
func (d *Deferred[T]) run() {
	if status.IsFlagsRunning(d.status.Load()) {
		return
	}

	for d.paused == 0 && d.handlers.Length() > 0 {
		pair := d.handlers.Remove().(handlerPair[T])
		h := pair.selectFor(d.res)
		if h == nil {
			// No handler for this side of the outcome; pass it through.
			continue
		}

		d.status.SetRunning()
		res := runHandler(h, d.res)
		d.status.ClearRunning()

		d.updateRes(res)
		if inner, ok := res.(*Deferred[T]); ok && inner.Res() == nil {
			d.waitOn(inner)
			break
		}
	}

	d.finalize()
}

// waitOn pauses the chain until inner resolves, remembering inner so a
// Cancel arriving in the meantime can be forwarded to it.
func (d *Deferred[T]) waitOn(inner *Deferred[T]) {
	d.Pause()
	d.waitingOn = inner
	inner.addPair(handlerPair[T]{
		onFulfilled: d.resumeWith,
		onRejected:  d.resumeWith,
	})
}

// resumeWith receives the outcome of the inner deferred this chain was
// waiting on, and resumes drainage with it. It consumes the outcome on
// the inner chain: ownership has moved to the waiting chain, which now
// answers for the failure if no errback of its own handles it.
func (d *Deferred[T]) resumeWith(res Result[T]) Result[T] {
	d.waitingOn = nil
	d.updateRes(res)
	d.Unpause()
	return nil
}

// finalize settles the deferred once its chain has fully drained.
// If the last outcome is a failure, no errback ever consumed it, so it's
// handed to the unhandled-failure handler.
func (d *Deferred[T]) finalize() {
	if d.paused > 0 || d.waitingOn != nil || d.handlers.Length() > 0 {
		return
	}
	if set, _ := d.status.SetResolved(); !set {
		return
	}
	if err := d.res.Err(); err != nil {
		reportUnhandled(newUnhandledFailure(d.id, err))
	}
}
