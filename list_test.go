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
	"errors"
	"testing"
)

func newCells(n int) []*Deferred[int] {
	cells := make([]*Deferred[int], n)
	for i := range cells {
		cells[i] = New[int](nil)
	}
	return cells
}

func TestList(t *testing.T) {
	silenceUnhandled(t)

	t.Run("fires once all cells resolve", func(t *testing.T) {
		cells := newCells(3)
		l := NewList(cells)

		_ = cells[1].Resolve(20)
		if s := l.State(); s != Pending {
			t.Fatalf("state = %v, want = pending", s)
		}
		_ = cells[0].Resolve(10)
		_ = cells[2].Reject(newStrError())

		if s := l.State(); s != Fulfilled {
			t.Fatalf("state = %v, want = fulfilled", s)
		}

		// results come in completion order, tagged with cell indexes.
		results := l.Val()
		if len(results) != 3 {
			t.Fatalf("got %d results, want = 3", len(results))
		}
		wantIdx := []int{1, 0, 2}
		for i, res := range results {
			if res.Idx != wantIdx[i] {
				t.Fatalf("results[%d].Idx = %d, want = %d", i, res.Idx, wantIdx[i])
			}
		}
		if got := results[0].Val(); got != 20 {
			t.Fatalf("got = %d, want = 20", got)
		}
		if err := results[2].Err(); err == nil {
			t.Fatal("cell failure wasn't recorded")
		}
	})

	t.Run("empty cell set resolves immediately", func(t *testing.T) {
		l := NewList[int](nil)
		if s := l.State(); s != Fulfilled {
			t.Fatalf("state = %v, want = fulfilled", s)
		}
		if got := l.Val(); len(got) != 0 {
			t.Fatalf("got %d results, want = 0", len(got))
		}
	})

	t.Run("fire on one resolved", func(t *testing.T) {
		cells := newCells(3)
		l := NewList(cells, &ListConfig{FireOnOneResolved: true})

		_ = cells[2].Resolve(30)
		if s := l.State(); s != Fulfilled {
			t.Fatalf("state = %v, want = fulfilled", s)
		}

		results := l.Val()
		if len(results) != 1 || results[0].Idx != 2 || results[0].Val() != 30 {
			t.Fatalf("got = %v, want one result, [2]30", results)
		}

		// late outcomes are ignored, not errors.
		_ = cells[0].Resolve(10)
		if got := l.Val(); len(got) != 1 {
			t.Fatalf("got %d results after a late outcome, want = 1", len(got))
		}
	})

	t.Run("fire on one error", func(t *testing.T) {
		wantErr := newPtrError()
		cells := newCells(3)
		l := NewList(cells, &ListConfig{FireOnOneError: true})

		_ = cells[0].Resolve(10)
		_ = cells[1].Reject(wantErr)

		if s := l.State(); s != Rejected {
			t.Fatalf("state = %v, want = rejected", s)
		}

		fe := &FirstError{}
		if err := l.Err(); !errors.As(err, &fe) {
			t.Fatalf("err = %v, want a FirstError", err)
		}
		if fe.Idx != 1 || !errors.Is(fe, wantErr) {
			t.Fatalf("got = %v, want index 1 wrapping %v", fe, wantErr)
		}
	})

	t.Run("consume errors", func(t *testing.T) {
		reported := false
		prev := OnUnhandledFailure(func(*UnhandledFailure) {
			reported = true
		})
		defer OnUnhandledFailure(prev)

		cells := newCells(2)
		NewList(cells, &ListConfig{ConsumeErrors: true})

		_ = cells[0].Reject(newStrError())
		_ = cells[1].Resolve(1)

		if reported {
			t.Fatal("consumed cell failure was reported as unhandled")
		}
	})
}

func TestGather(t *testing.T) {
	silenceUnhandled(t)

	t.Run("values in cell order", func(t *testing.T) {
		cells := newCells(3)
		d := Gather(cells)

		_ = cells[2].Resolve(30)
		_ = cells[0].Resolve(10)
		_ = cells[1].Resolve(20)

		if s := d.State(); s != Fulfilled {
			t.Fatalf("state = %v, want = fulfilled", s)
		}
		got := d.Val()
		want := []int{10, 20, 30}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got = %v, want = %v", got, want)
			}
		}
	})

	t.Run("first failure rejects the gather", func(t *testing.T) {
		wantErr := newStrError()
		cells := newCells(2)
		d := Gather(cells)

		_ = cells[1].Reject(wantErr)

		if s := d.State(); s != Rejected {
			t.Fatalf("state = %v, want = rejected", s)
		}
		if err := d.Err(); !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want wrapping %v", err, wantErr)
		}
	})

	t.Run("cancel reaches the cells", func(t *testing.T) {
		cancelled := [2]bool{}
		cells := []*Deferred[int]{
			New[int](func(*Deferred[int]) { cancelled[0] = true }),
			New[int](func(*Deferred[int]) { cancelled[1] = true }),
		}
		d := Gather(cells)
		d.AddErrback(func(err error) Result[[]int] { return nil })

		if err := d.Cancel(); err != nil {
			t.Fatalf("got unexpected error: %v", err)
		}
		if !cancelled[0] || !cancelled[1] {
			t.Fatalf("cancelled = %v, want both cells cancelled", cancelled)
		}
	})
}
