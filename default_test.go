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

func TestSucceedFail(t *testing.T) {
	silenceUnhandled(t)

	t.Run("Succeed", func(t *testing.T) {
		d := Succeed("done")
		if s := d.State(); s != Fulfilled {
			t.Fatalf("state = %v, want = fulfilled", s)
		}
		if got := d.Val(); got != "done" {
			t.Fatalf("got = %q, want = %q", got, "done")
		}
	})

	t.Run("Fail", func(t *testing.T) {
		wantErr := newPtrError()
		d := Fail[string](wantErr)
		if s := d.State(); s != Rejected {
			t.Fatalf("state = %v, want = rejected", s)
		}
		if err := d.Err(); err != wantErr {
			t.Fatalf("err = %v, want = %v", err, wantErr)
		}
	})

	t.Run("Fail with nil error panics", func(t *testing.T) {
		defer func() {
			if v := recover(); v != nilErrorPanicMsg {
				t.Fatalf("got unexpected panic: %v", v)
			}
		}()
		Fail[string](nil)
	})
}

func TestExecute(t *testing.T) {
	silenceUnhandled(t)

	t.Run("value", func(t *testing.T) {
		d := Execute(func() (int, error) {
			return 3, nil
		})
		if got := d.Val(); got != 3 {
			t.Fatalf("got = %d, want = 3", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		wantErr := newStrError()
		d := Execute(func() (int, error) {
			return 0, wantErr
		})
		if err := d.Err(); err != wantErr {
			t.Fatalf("err = %v, want = %v", err, wantErr)
		}
	})

	t.Run("panic", func(t *testing.T) {
		d := Execute(func() (int, error) {
			panic("exec_panic")
		})
		pe := PanicError{}
		if err := d.Err(); !errors.As(err, &pe) || pe.V != "exec_panic" {
			t.Fatalf("err = %v, want PanicError with exec_panic", err)
		}
	})
}

func TestMaybe(t *testing.T) {
	silenceUnhandled(t)

	t.Run("plain result", func(t *testing.T) {
		d := Maybe(func() Result[int] {
			return Val(8)
		})
		if got := d.Val(); got != 8 {
			t.Fatalf("got = %d, want = 8", got)
		}
	})

	t.Run("nil result", func(t *testing.T) {
		d := Maybe(func() Result[int] {
			return nil
		})
		if s := d.State(); s != Fulfilled {
			t.Fatalf("state = %v, want = fulfilled", s)
		}
	})

	t.Run("failure result", func(t *testing.T) {
		wantErr := newPtrError()
		d := Maybe(func() Result[int] {
			return Err[int](wantErr)
		})
		if err := d.Err(); err != wantErr {
			t.Fatalf("err = %v, want = %v", err, wantErr)
		}
	})

	t.Run("deferred passes through", func(t *testing.T) {
		pending := New[int](nil)
		d := Maybe(func() Result[int] {
			return pending
		})
		if d != pending {
			t.Fatal("returned deferred wasn't passed through")
		}
	})

	t.Run("panic", func(t *testing.T) {
		d := Maybe(func() Result[int] {
			panic("maybe_panic")
		})
		pe := PanicError{}
		if err := d.Err(); !errors.As(err, &pe) || pe.V != "maybe_panic" {
			t.Fatalf("err = %v, want PanicError with maybe_panic", err)
		}
	})
}
