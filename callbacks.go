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

// handlerFunc is the internal shape of both sides of a handler pair.
// Both sides receive the full current outcome, which keeps pass-through
// and the chain engine's continuation uniform.
type handlerFunc[T any] func(res Result[T]) Result[T]

// handlerPair is one entry of the handler chain.
// A nil side passes the outcome through to the next pair unchanged.
type handlerPair[T any] struct {
	onFulfilled handlerFunc[T]
	onRejected  handlerFunc[T]
}

// selectFor returns the side of the pair that matches the outcome kind.
func (hp handlerPair[T]) selectFor(res Result[T]) handlerFunc[T] {
	if res.Err() != nil {
		return hp.onRejected
	}
	return hp.onFulfilled
}

func adaptCallback[T any](cb func(val T) Result[T]) handlerFunc[T] {
	if cb == nil {
		return nil
	}
	return func(res Result[T]) Result[T] {
		return cb(res.Val())
	}
}

func adaptErrback[T any](eb func(err error) Result[T]) handlerFunc[T] {
	if eb == nil {
		return nil
	}
	return func(res Result[T]) Result[T] {
		return eb(res.Err())
	}
}

// runHandler invokes cb with the current outcome, inside a scoped failure
// boundary: a panic from cb is captured and becomes the next failure
// outcome, and a nil return is normalized to the empty fulfilled outcome.
func runHandler[T any](cb handlerFunc[T], res Result[T]) (newRes Result[T]) {
	defer func() {
		if v := recover(); v != nil {
			newRes = Err[T](PanicError{V: v})
			return
		}
		if newRes == nil {
			// the callback consumed the outcome without producing a new one.
			// this is equivalent to returning Empty[T] explicitly.
			newRes = Empty[T]()
		}
	}()

	return cb(res)
}
