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

import "log"

// Succeed returns a deferred that has already been resolved with val.
func Succeed[T any](val T) *Deferred[T] {
	d := New[T](nil)
	_ = d.fire(Val(val))
	return d
}

// Fail returns a deferred that has already been rejected with err.
// It will panic if a nil error is passed.
func Fail[T any](err error) *Deferred[T] {
	if err == nil {
		panic(nilErrorPanicMsg)
	}
	d := New[T](nil)
	_ = d.fire(Err[T](err))
	return d
}

// Execute calls f and returns an already-resolved deferred holding its
// outcome. A panic inside f is captured as a failure with a PanicError.
func Execute[T any](f func() (T, error)) (d *Deferred[T]) {
	defer func() {
		if v := recover(); v != nil {
			d = Fail[T](PanicError{V: v})
		}
	}()

	val, err := f()
	if err != nil {
		return Fail[T](err)
	}
	return Succeed(val)
}

// Maybe calls f, which may return a plain Result or a *Deferred, and
// normalizes the outcome to a deferred either way: a returned deferred
// is passed through as is, anything else is wrapped in an already-fired
// one. A panic inside f is captured as a failure with a PanicError.
func Maybe[T any](f func() Result[T]) (d *Deferred[T]) {
	defer func() {
		if v := recover(); v != nil {
			d = Fail[T](PanicError{V: v})
		}
	}()

	res := f()
	if inner, ok := res.(*Deferred[T]); ok {
		return inner
	}
	if res == nil {
		res = Empty[T]()
	}
	if err := res.Err(); err != nil {
		return Fail[T](err)
	}
	return Succeed(res.Val())
}

// UnhandledFailureHandler receives failures that reached the end of a
// handler chain without any errback consuming them.
type UnhandledFailureHandler func(uf *UnhandledFailure)

func logUnhandledFailure(uf *UnhandledFailure) {
	log.Printf("deferred: %v", uf)
}

// defUnhandledFailureHandler is what reportUnhandled invokes; it's a
// package-wide setting, deliberately not per-deferred, because by the
// time a failure is known to be unhandled its chain is gone.
var defUnhandledFailureHandler UnhandledFailureHandler = logUnhandledFailure

// OnUnhandledFailure sets the handler invoked for failures no errback
// consumed, returning the previous handler. Passing nil restores the
// default, which logs the failure.
func OnUnhandledFailure(h UnhandledFailureHandler) (prev UnhandledFailureHandler) {
	prev = defUnhandledFailureHandler
	if h == nil {
		h = logUnhandledFailure
	}
	defUnhandledFailureHandler = h
	return prev
}

func reportUnhandled(uf *UnhandledFailure) {
	defUnhandledFailureHandler(uf)
}
