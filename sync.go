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

const (
	unlockedPanicMsg    = "deferred: release of an unlocked lock"
	semLimitPanicMsg    = "deferred: semaphore limit must be at least 1"
	semOverflowPanicMsg = "deferred: semaphore released more than acquired"
)

// Lock is a mutual-exclusion primitive for interleaved cooperative
// activities. Acquire hands out deferreds instead of blocking, so no
// goroutines or OS-level locking are involved; waiters are served in
// acquisition order.
type Lock struct {
	locked  bool
	waiting []*Deferred[*Lock]
}

// NewLock returns a new, unlocked Lock.
func NewLock() *Lock {
	return &Lock{}
}

// Acquire returns a deferred that resolves, with the lock itself, once
// the lock is held by the caller. If the lock is free, the deferred is
// already resolved on return. Cancelling the deferred gives up the
// caller's place in line.
func (l *Lock) Acquire() *Deferred[*Lock] {
	d := New(l.cancelAcquire)
	if l.locked {
		l.waiting = append(l.waiting, d)
		return d
	}
	l.locked = true
	_ = d.Resolve(l)
	return d
}

// Release releases the lock, handing it directly to the next waiter if
// any. It will panic if the lock isn't held.
func (l *Lock) Release() {
	if !l.locked {
		panic(unlockedPanicMsg)
	}
	if len(l.waiting) == 0 {
		l.locked = false
		return
	}
	next := l.waiting[0]
	l.waiting = l.waiting[1:]
	_ = next.Resolve(l)
}

func (l *Lock) cancelAcquire(d *Deferred[*Lock]) {
	for i, w := range l.waiting {
		if w == d {
			l.waiting = append(l.waiting[:i], l.waiting[i+1:]...)
			return
		}
	}
}

// Semaphore bounds how many cooperative activities run a section at
// once. It's a counting generalization of Lock, with the same
// deferred-based Acquire and the same in-order waiter service.
type Semaphore struct {
	tokens  int
	limit   int
	waiting []*Deferred[*Semaphore]
}

// NewSemaphore returns a semaphore admitting up to limit concurrent
// holders. It will panic if limit is less than 1.
func NewSemaphore(limit int) *Semaphore {
	if limit < 1 {
		panic(semLimitPanicMsg)
	}
	return &Semaphore{tokens: limit, limit: limit}
}

// Acquire returns a deferred that resolves, with the semaphore itself,
// once a token is held by the caller. Cancelling the deferred gives up
// the caller's place in line.
func (s *Semaphore) Acquire() *Deferred[*Semaphore] {
	d := New(s.cancelAcquire)
	if s.tokens == 0 {
		s.waiting = append(s.waiting, d)
		return d
	}
	s.tokens--
	_ = d.Resolve(s)
	return d
}

// Release returns one token, handing it directly to the next waiter if
// any. It will panic if it would push the token count past the limit.
func (s *Semaphore) Release() {
	if len(s.waiting) != 0 {
		next := s.waiting[0]
		s.waiting = s.waiting[1:]
		_ = next.Resolve(s)
		return
	}
	if s.tokens == s.limit {
		panic(semOverflowPanicMsg)
	}
	s.tokens++
}

func (s *Semaphore) cancelAcquire(d *Deferred[*Semaphore]) {
	for i, w := range s.waiting {
		if w == d {
			s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
			return
		}
	}
}

// Queue passes items between interleaved cooperative activities. Get
// returns a deferred for the next item, resolved immediately if one is
// already buffered; Put resolves the oldest outstanding Get, or buffers
// the item.
type Queue[T any] struct {
	waiting []*Deferred[T]
	pending []T

	// size bounds the buffered items, backlog bounds the outstanding
	// Gets; negative means unlimited.
	size    int
	backlog int
}

// NewQueue returns a queue buffering at most size items, with at most
// backlog outstanding Gets. Either bound may be negative for unlimited.
func NewQueue[T any](size, backlog int) *Queue[T] {
	return &Queue[T]{size: size, backlog: backlog}
}

// Put adds an item to the queue, resolving the oldest outstanding Get
// with it if there is one. It returns ErrQueueOverflow when the buffer
// bound would be exceeded.
func (q *Queue[T]) Put(item T) error {
	if len(q.waiting) != 0 {
		next := q.waiting[0]
		q.waiting = q.waiting[1:]
		return next.Resolve(item)
	}
	if q.size >= 0 && len(q.pending) >= q.size {
		return ErrQueueOverflow
	}
	q.pending = append(q.pending, item)
	return nil
}

// Get returns a deferred for the next item. If an item is buffered, the
// deferred is already resolved on return; otherwise it resolves on a
// future Put. Cancelling the deferred withdraws the Get.
// It returns ErrQueueUnderflow when the backlog bound would be exceeded.
func (q *Queue[T]) Get() (*Deferred[T], error) {
	if len(q.pending) != 0 {
		item := q.pending[0]
		q.pending = q.pending[1:]
		return Succeed(item), nil
	}
	if q.backlog >= 0 && len(q.waiting) >= q.backlog {
		return nil, ErrQueueUnderflow
	}
	d := New(q.cancelGet)
	q.waiting = append(q.waiting, d)
	return d, nil
}

func (q *Queue[T]) cancelGet(d *Deferred[T]) {
	for i, w := range q.waiting {
		if w == d {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return
		}
	}
}
