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

// ListConfig carries the aggregation knobs of NewList.
type ListConfig struct {
	// FireOnOneResolved fires the list the first time any of its cells
	// is fulfilled, with a single-element result slice.
	FireOnOneResolved bool

	// FireOnOneError fires the list the first time any of its cells is
	// rejected, with a FirstError naming the cell.
	FireOnOneError bool

	// ConsumeErrors eats each cell's failure after it's been recorded in
	// the list's result, so it isn't also reported as unhandled on the
	// cell's own chain.
	ConsumeErrors bool
}

// List aggregates the outcomes of a fixed set of deferreds into one.
//
// Its embedded deferred resolves, by default, once every cell has
// resolved, with a slice of indexed results in completion order; see
// ListConfig for the early-firing variants. Handlers go on the embedded
// deferred as usual.
type List[T any] struct {
	*Deferred[[]IdxRes[T]]

	cfg      ListConfig
	results  []IdxRes[T]
	expected int
}

// NewList returns a List aggregating the given cells.
//
// An empty cell set resolves the list immediately with an empty result,
// unless FireOnOneResolved is set, in which case the list stays pending
// forever (there is no cell to fulfill it).
func NewList[T any](cells []*Deferred[T], c ...*ListConfig) *List[T] {
	l := &List[T]{
		Deferred: New[[]IdxRes[T]](nil),
		expected: len(cells),
	}
	if len(c) != 0 && c[0] != nil {
		l.cfg = *c[0]
	}

	if len(cells) == 0 && !l.cfg.FireOnOneResolved {
		_ = l.Deferred.Resolve(nil)
		return l
	}

	for i, cell := range cells {
		idx := i
		cell.AddCallbacks(
			func(val T) Result[T] {
				l.itemDone(IdxRes[T]{Idx: idx, Result: Val(val)})
				return nil
			},
			func(err error) Result[T] {
				l.itemDone(IdxRes[T]{Idx: idx, Result: Err[T](err)})
				if l.cfg.ConsumeErrors {
					return nil
				}
				return Err[T](err)
			},
		)
	}
	return l
}

// itemDone records one cell outcome and fires the list when the
// configured condition is met. Late outcomes arriving after an early
// fire are still recorded, but fire attempts on the settled list are
// ignored.
func (l *List[T]) itemDone(res IdxRes[T]) {
	l.results = append(l.results, res)

	switch {
	case l.cfg.FireOnOneResolved && res.Err() == nil:
		_ = l.Deferred.Resolve([]IdxRes[T]{res})
	case l.cfg.FireOnOneError && res.Err() != nil:
		_ = l.Deferred.Reject(&FirstError{Idx: res.Idx, err: res.Err()})
	case len(l.results) == l.expected:
		_ = l.Deferred.Resolve(l.results)
	}
}

// Gather waits for all cells and resolves with their success values, in
// cell order. The first cell failure rejects the whole gather with a
// FirstError, and cancelling the gather cancels every cell still
// pending.
func Gather[T any](cells []*Deferred[T]) *Deferred[[]T] {
	d := New[[]T](func(*Deferred[[]T]) {
		for _, cell := range cells {
			if cell.Res() == nil {
				_ = cell.Cancel()
			}
		}
	})

	l := NewList(cells, &ListConfig{FireOnOneError: true, ConsumeErrors: true})
	l.Deferred.AddCallbacks(
		func(results []IdxRes[T]) Result[[]IdxRes[T]] {
			vals := make([]T, len(results))
			for _, res := range results {
				vals[res.Idx] = res.Val()
			}
			_ = d.Resolve(vals)
			return nil
		},
		func(err error) Result[[]IdxRes[T]] {
			_ = d.Reject(err)
			return nil
		},
	)
	return d
}
