package concurrency

import (
	"runtime"
	"sync/atomic"
)

// BoundedStack is a fixed-capacity LIFO stack safe for any number of
// concurrent pushers and poppers. Instead of one lock around the whole
// structure, each slot carries a pair of permission flags (writable,
// readable) and a single atomic counter totally orders slot claims.
//
// A slot cycles writable -> readable -> writable as it is reused. Push
// claims an index from the counter, waits for that slot to become
// writable, stores the value and raises the slot's readable flag. Pop
// consumes the readable flag of the current top slot and then races
// other pops to retreat the counter; the winner owns the payload and
// re-raises writable for the next push onto that index.
//
// The caller must never let the number of pushes exceed capacity plus
// the number of completed pops. There is no bound check on the claim
// path; exceeding capacity is undefined behavior, not a reported error.
type BoundedStack[T any] struct {
	slots    []T
	reserved atomic.Uint64
	readable []Flag
	writable []Flag
	capacity int
}

// NewBoundedStack returns an empty stack holding at most capacity
// elements. All slots start zero-valued and writable.
//
// Capacity must be positive. Like the capacity bound on Push, this is
// the caller's contract and is not checked here.
func NewBoundedStack[T any](capacity int) *BoundedStack[T] {
	s := &BoundedStack[T]{
		slots:    make([]T, capacity),
		readable: make([]Flag, capacity),
		writable: make([]Flag, capacity),
		capacity: capacity,
	}
	for i := range s.writable {
		s.writable[i].Raise()
	}
	return s
}

// Push stores value as the new top of the stack.
//
// The counter increment is the only serialization point between
// concurrent pushes and never blocks. Waiting for the claimed slot to
// become writable guarantees a previous occupant of the same index has
// been fully popped before it is overwritten.
func (s *BoundedStack[T]) Push(value T) {
	pos := s.reserved.Add(1) - 1

	s.writable[pos].WaitLower()
	s.slots[pos] = value
	s.readable[pos].Raise()
}

// Pop removes and returns the current top of the stack. It returns
// (zero, false) without blocking when the stack is empty.
//
// Consuming the top slot's readable flag before the counter CAS keeps a
// mid-write push invisible; a pop that then loses the counter race must
// re-raise the flag it consumed so the eventual winner still observes
// the published value.
func (s *BoundedStack[T]) Pop() (T, bool) {
	var zero T

	for {
		reserved := s.reserved.Load()
		if reserved == 0 {
			return zero, false
		}

		top := reserved - 1
		if !s.readable[top].TryLower() {
			// Either a push is still writing this slot or another
			// pop got here first. Start over from the counter.
			runtime.Gosched()
			continue
		}

		if s.reserved.CompareAndSwap(reserved, top) {
			value := s.slots[top]
			s.writable[top].Raise()
			return value, true
		}

		// Lost the race for this counter value; hand the readable
		// signal back before retrying.
		s.readable[top].Raise()
	}
}

// Len returns the number of claimed slots. Under concurrent pushes the
// value includes claims whose writes have not yet been published.
func (s *BoundedStack[T]) Len() int {
	return int(s.reserved.Load())
}

// Cap returns the fixed capacity set at construction.
func (s *BoundedStack[T]) Cap() int {
	return s.capacity
}

// IsEmpty reports whether no slots are currently claimed.
func (s *BoundedStack[T]) IsEmpty() bool {
	return s.reserved.Load() == 0
}
