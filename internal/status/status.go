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

package status

// DefStatus holds the value that defines and represents the lifecycle of
// the deferred.
// The model is cooperative and single-threaded, so it's read and written
// directly, without any synchronization.
type DefStatus uint32

// the state's related values and constants, using 2 bits(the [1st : 2nd] bits)
const (
	// state modes, using 2 bits
	statePending   uint32 = iota
	stateFulfilled uint32 = iota
	stateRejected  uint32 = iota

	// stateBitsSetMask and stateBitsClrMask are &-ed with the status to get
	// the state value and clear the state value, respectively.
	stateBitsSetMask uint32 = 3
	stateBitsClrMask        = ^stateBitsSetMask
)

// the fate's related values and constants, using 2 bits(the [3rd : 4th] bits)
const (
	// starting with a shift amount of 2, which is the number of bits used by
	// previous sections.

	// fate modes, using 2 bits
	fateUnresolved uint32 = iota << 2
	fateResolving  uint32 = iota << 2
	fateResolved   uint32 = iota << 2

	// fateBitsSetMask and fateBitsClrMask are &-ed with the status to get
	// the fate value and clear the fate value, respectively.
	fateBitsSetMask uint32 = 3 << 2
	fateBitsClrMask        = ^fateBitsSetMask
)

// the flags' related values and constants, using 4 bits(the [5th : 8th] bits)
const (
	// starting with a shift amount of 4, which is the number of bits used by
	// previous sections.

	// FlagsCancelRequested records that Cancel has been called on the
	// deferred, whether the cancel was satisfied locally or forwarded.
	FlagsCancelRequested uint32 = 1 << (iota + 4)

	// FlagsChained records that the deferred is the target of a ChainTo
	// call, so its resolution comes from its source deferred only.
	FlagsChained uint32 = 1 << (iota + 4)

	// FlagsSuppressFire arms a one-shot suppression of the next fire call.
	// It's set when a deferred with no canceller is cancelled, since the
	// owner of the pending operation will eventually resolve it anyway.
	FlagsSuppressFire uint32 = 1 << (iota + 4)

	// FlagsRunning is set while a handler of the deferred is executing.
	FlagsRunning uint32 = 1 << (iota + 4)
)

// Load returns the current status value.
func (s *DefStatus) Load() (currentStatus uint32) {
	return uint32(*s)
}

// SetResolving sets the fate to Resolving, only if it's Unresolved.
// It marks the point where an outcome has been produced for the deferred
// and drainage of its handlers is about to start.
func (s *DefStatus) SetResolving() (set bool, status uint32) {
	ns := uint32(*s)

	// set the fate to resolving, only if the fate is unresolved
	if ns&fateBitsSetMask == fateUnresolved {
		ns &= fateBitsClrMask // clear the fate section
		ns |= fateResolving   // set the fate to resolving
		set = true            // this is the first set to resolving
	}

	*s = DefStatus(ns)
	return set, ns
}

// SetResolved sets the fate to Resolved, only if it's Resolving.
// It marks the point where the handler chain has been drained to its end
// and the outcome of the deferred is final.
func (s *DefStatus) SetResolved() (set bool, status uint32) {
	ns := uint32(*s)

	// set the fate to resolved, only if the fate is resolving
	if ns&fateBitsSetMask == fateResolving {
		ns &= fateBitsClrMask // clear the fate section
		ns |= fateResolved    // set the fate to resolved
		set = true
	}

	*s = DefStatus(ns)
	return set, ns
}

// SetStateFulfilled sets the state to Fulfilled, reflecting the kind of
// the current outcome of the deferred.
// The state can keep changing while the fate is Resolving, as handlers
// transform the outcome along the chain.
func (s *DefStatus) SetStateFulfilled() (status uint32) {
	ns := uint32(*s)
	ns &= stateBitsClrMask // clear the state section
	ns |= stateFulfilled   // set the state to fulfilled
	*s = DefStatus(ns)
	return ns
}

// SetStateRejected sets the state to Rejected, reflecting the kind of
// the current outcome of the deferred.
func (s *DefStatus) SetStateRejected() (status uint32) {
	ns := uint32(*s)
	ns &= stateBitsClrMask // clear the state section
	ns |= stateRejected    // set the state to rejected
	*s = DefStatus(ns)
	return ns
}

// SetCancelRequested sets the cancel-requested flag, only if it's not
// already set.
func (s *DefStatus) SetCancelRequested() (set bool, status uint32) {
	ns := uint32(*s)

	if ns&FlagsCancelRequested == 0 {
		ns |= FlagsCancelRequested
		set = true
	}

	*s = DefStatus(ns)
	return set, ns
}

// SetChained sets the chained flag, only if it's not already set.
func (s *DefStatus) SetChained() (set bool, status uint32) {
	ns := uint32(*s)

	if ns&FlagsChained == 0 {
		ns |= FlagsChained
		set = true
	}

	*s = DefStatus(ns)
	return set, ns
}

// SetSuppressFire arms the one-shot fire suppression.
func (s *DefStatus) SetSuppressFire() (status uint32) {
	ns := uint32(*s)
	ns |= FlagsSuppressFire
	*s = DefStatus(ns)
	return ns
}

// ClearSuppressFire consumes the one-shot fire suppression, and reports
// whether it was armed.
func (s *DefStatus) ClearSuppressFire() (cleared bool, status uint32) {
	ns := uint32(*s)

	if ns&FlagsSuppressFire != 0 {
		ns &= ^FlagsSuppressFire
		cleared = true
	}

	*s = DefStatus(ns)
	return cleared, ns
}

// SetRunning sets the running flag, marking that a handler of this
// deferred is executing on the current call stack.
func (s *DefStatus) SetRunning() (status uint32) {
	ns := uint32(*s)
	ns |= FlagsRunning
	*s = DefStatus(ns)
	return ns
}

// ClearRunning clears the running flag.
func (s *DefStatus) ClearRunning() (status uint32) {
	ns := uint32(*s)
	ns &= ^FlagsRunning
	*s = DefStatus(ns)
	return ns
}
