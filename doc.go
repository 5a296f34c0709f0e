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

// Package deferred provides a single-threaded deferred-result abstraction,
// with chained handlers, flow control, and cancellation.
//
// A Deferred stands for a result that isn't available yet. The code that
// will eventually produce the result creates the Deferred, hands it out,
// and later fires it, exactly once, with either a success value or a
// failure. Interested code registers pairs of handlers on the Deferred;
// once the outcome arrives, the matching side of each pair runs, in
// registration order, and whatever a handler returns becomes the outcome
// seen by the next pair, so handlers act as a processing chain rather
// than independent observers.
//
// A Deferred has three states, and it can be in only one of them, at any
// time:
// Pending: the outcome hasn't been produced, or the handler chain is
// still processing it.
// Fulfilled: the final outcome is a success value.
// Rejected: the final outcome is a failure.
//
// Handlers may themselves return a *Deferred; the chain then pauses until
// that inner deferred resolves, and continues with its outcome. Cancel
// follows the same structure: cancelling a deferred that's waiting on an
// inner one forwards the request inward, so it always reaches the true
// current point of pendingness. ChainTo links two deferreds ahead of
// time, propagating both outcomes and cancellation along the link.
//
// A failure that reaches the end of a chain without any errback consuming
// it is reported to a package-level handler (see OnUnhandledFailure), so
// failures are never silently dropped.
//
// Everything in this package is cooperative and single-threaded: nothing
// here starts goroutines or synchronizes, and no Deferred value is safe
// for concurrent use. The synchronization helpers (Lock, Semaphore,
// Queue) coordinate interleaved activities within one cooperative flow,
// not OS-level concurrency.
package deferred
