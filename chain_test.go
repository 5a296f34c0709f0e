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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainOutcome(t *testing.T) {
	silenceUnhandled(t)

	t.Run("success flows into the target", func(t *testing.T) {
		source := New[int](nil)
		target := New[int](nil)

		got := 0
		target.AddCallback(func(val int) Result[int] {
			got = val
			return nil
		})

		source.ChainTo(target)
		require.NoError(t, source.Resolve(42))

		require.Equal(t, 42, got)
		require.Equal(t, Fulfilled, target.Res().State())
	})

	t.Run("failure flows into the target", func(t *testing.T) {
		wantErr := newPtrError()
		source := New[int](nil)
		target := New[int](nil)

		var got error
		target.AddErrback(func(err error) Result[int] {
			got = err
			return nil
		})

		source.ChainTo(target)
		require.NoError(t, source.Reject(wantErr))

		require.Equal(t, wantErr, got)
	})

	t.Run("link passes the outcome through", func(t *testing.T) {
		source := New[int](nil)
		target := New[int](nil)

		got := 0
		source.ChainTo(target).AddCallback(func(val int) Result[int] {
			got = val
			return nil
		})

		require.NoError(t, source.Resolve(5))

		// Handlers registered on the source after the link still see the
		// source's outcome; the link is not a consumer.
		require.Equal(t, 5, got)
		require.Equal(t, 5, target.Val())
	})

	t.Run("one source feeds multiple targets", func(t *testing.T) {
		source := New[int](nil)
		t1 := New[int](nil)
		t2 := New[int](nil)

		source.ChainTo(t1)
		source.ChainTo(t2)
		require.NoError(t, source.Resolve(9))

		require.Equal(t, 9, t1.Val())
		require.Equal(t, 9, t2.Val())
	})
}

func TestChainTarget(t *testing.T) {
	silenceUnhandled(t)

	t.Run("direct resolution fails", func(t *testing.T) {
		source := New[int](nil)
		target := New[int](nil)
		source.ChainTo(target)

		require.ErrorIs(t, target.Resolve(1), ErrAlreadyChained)
		require.ErrorIs(t, target.Reject(newStrError()), ErrAlreadyChained)
	})

	t.Run("adding handlers panics", func(t *testing.T) {
		source := New[int](nil)
		target := New[int](nil)
		source.ChainTo(target)

		require.PanicsWithValue(t, chainedPanicMsg, func() {
			target.AddCallback(func(val int) Result[int] { return nil })
		})
	})
}

func TestChainCancellation(t *testing.T) {
	silenceUnhandled(t)

	t.Run("cancelling the source cancels the target", func(t *testing.T) {
		var events []string

		one := New[int](func(*Deferred[int]) {
			events = append(events, "cancel one")
		})
		one.AddErrback(func(err error) Result[int] {
			events = append(events, "cancelled one")
			return Err[int](err)
		})

		two := New[int](func(*Deferred[int]) {
			events = append(events, "cancel two")
		})
		two.AddErrback(func(err error) Result[int] {
			events = append(events, "cancelled two")
			return nil
		})

		one.ChainTo(two)
		require.NoError(t, one.Cancel())

		// The source settles first, then the link propagates the cancel.
		require.Equal(t,
			[]string{"cancel one", "cancelled one", "cancel two", "cancelled two"},
			events)
		require.True(t, two.IsCancelled())
	})

	t.Run("cancelled target ignores the source outcome", func(t *testing.T) {
		source := New[int](nil)
		target := New[int](nil)
		target.AddErrback(func(err error) Result[int] { return nil })

		source.ChainTo(target)
		require.NoError(t, target.Cancel())
		require.NoError(t, source.Resolve(3))

		// The target kept its cancellation outcome; the late source
		// outcome didn't overwrite it, and wasn't an error either.
		require.Equal(t, Fulfilled, target.State())
		require.True(t, target.IsCancelled())
		require.Equal(t, 0, target.Val())
		require.Equal(t, 3, source.Val())
	})

	t.Run("source resolved before cancel doesn't propagate", func(t *testing.T) {
		source := New[int](nil)
		target := New[int](nil)

		source.ChainTo(target)
		require.NoError(t, source.Resolve(7))
		require.ErrorIs(t, source.Cancel(), ErrAlreadyResolved)

		require.False(t, target.IsCancelled())
		require.Equal(t, 7, target.Val())
	})
}
