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

// Package status represents values for the deferred's status.
//
// The value is split into 3 sections, state, fate, and flags, as follows,
// starting from the right:
// - The state section takes 2 bits.
// - The fate section takes 2 bits.
// - The flags section takes 4 bits.
//
// Description of the sections:
//
//   - The state section describes the kind of the deferred's current
//     outcome.
//     = 3 mutually exclusive possible modes, represented by 2 bits:
//     pending: no outcome has been produced yet.
//     fulfilled: the current outcome is a success value.
//     rejected: the current outcome is a failure value.
//     = While the fate is resolving, the state can keep changing, as each
//     handler in the chain transforms the outcome for the next one.
//
//   - The fate section describes how far the deferred has progressed
//     towards its final outcome.
//     = 3 mutually exclusive possible modes, represented by 2 bits:
//     unresolved: the deferred has never been fired.
//     resolving: an outcome has been produced and the handler chain is
//     being drained, or the drainage is paused, either by the pause
//     counter or by waiting on an inner deferred.
//     resolved: the handler chain has been drained to its end, and the
//     outcome is final.
//     = The fate moves forward only; unresolved -> resolving -> resolved.
//
//   - The flags section holds independent boolean facts about the
//     deferred, using 1 bit each:
//     cancelRequested: Cancel has been called on this deferred.
//     chained: the deferred is the target of a ChainTo call.
//     suppressFire: one-shot suppression of the next fire, armed when a
//     deferred with no canceller is cancelled.
//     running: a handler of this deferred is executing on the current
//     call stack.
//
// The package doesn't use any synchronization, as the deferred model is
// cooperative and single-threaded.
package status
