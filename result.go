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

import "fmt"

// Result is a container for generic outcome values.
//
// A *Deferred implements Result too, which is how a handler returns a
// pending deferred: the chain engine recognizes the returned deferred and
// pauses the outer chain until it resolves.
type Result[T any] interface {
	Val() T
	Err() error
	State() State
}

// Empty returns a fulfilled Result holding the zero value of T.
// It's what a handler's nil return is normalized to, which is the idiom
// for consuming a failure outcome inside an errback.
func Empty[T any]() Result[T] {
	return emptyResult[T]{}
}

// Val returns a fulfilled Result holding val.
func Val[T any](val T) Result[T] {
	return valResult[T]{val: val}
}

// Err returns a rejected Result holding err.
func Err[T any](err error) Result[T] {
	return errResult[T]{err: err}
}

type emptyResult[T any] struct{}
type valResult[T any] struct{ val T }
type errResult[T any] struct{ err error }

func (r emptyResult[T]) Val() (v T) { return v }
func (r valResult[T]) Val() (v T)   { return r.val }
func (r errResult[T]) Val() (v T)   { return v }

func (r emptyResult[T]) Err() error { return nil }
func (r valResult[T]) Err() error   { return nil }
func (r errResult[T]) Err() error   { return r.err }

func (r emptyResult[T]) State() State { return Fulfilled }
func (r valResult[T]) State() State   { return Fulfilled }
func (r errResult[T]) State() State   { return Rejected }

func (r emptyResult[T]) String() string {
	return "fulfilled: <nil>"
}
func (r valResult[T]) String() string {
	return fmt.Sprintf("fulfilled: %v", r.val)
}
func (r errResult[T]) String() string {
	return fmt.Sprintf("rejected: %s", r.err.Error())
}

// IdxRes is a positional result view, that represents the outcome of the
// deferred at index Idx in the original list provided to NewList.
type IdxRes[T any] struct {
	Idx int
	Result[T]
}

func (ir IdxRes[T]) String() string {
	if ir.Result == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[%d]%v", ir.Idx, ir.Result)
}

// State is the kind of a deferred's (or a Result's) outcome.
type State int

const (
	// the order here matter
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "<unknown>"
	}
}
