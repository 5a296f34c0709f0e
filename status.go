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

import "github.com/fluidinfo/deferred/internal/status"

// Status is a read-only snapshot of a deferred's internal condition,
// mostly useful for debugging and introspection; programs should drive
// their logic off handlers, not off Status.
type Status struct {
	s uint32
}

// Status returns a snapshot of this deferred's condition at the time of
// the call.
func (d *Deferred[T]) Status() Status {
	return Status{s: d.status.Load()}
}

// Fired reports whether an outcome has been delivered to the deferred,
// even if its handler chain hasn't fully drained yet.
func (st Status) Fired() bool {
	return !status.IsFateUnresolved(st.s)
}

// Resolved reports whether the deferred has settled: the outcome is
// final and the handler chain is done.
func (st Status) Resolved() bool {
	return status.IsFateResolved(st.s)
}

// Cancelled reports whether Cancel has been called on the deferred.
func (st Status) Cancelled() bool {
	return status.IsFlagsCancelRequested(st.s)
}

// Chained reports whether the deferred is the target of a ChainTo call.
func (st Status) Chained() bool {
	return status.IsFlagsChained(st.s)
}

// Running reports whether the snapshot was taken from inside one of the
// deferred's own handlers.
func (st Status) Running() bool {
	return status.IsFlagsRunning(st.s)
}

func (st Status) String() string {
	switch {
	case status.IsFateResolved(st.s):
		if status.IsStateRejected(st.s) {
			return "resolved(rejected)"
		}
		return "resolved(fulfilled)"
	case status.IsFateResolving(st.s):
		return "resolving"
	default:
		return "pending"
	}
}
