package concurrency

import (
	"sync/atomic"
)

// LockFreeStack is an unbounded Treiber stack: a linked list whose head
// is swung by compare-and-swap. It allocates one node per element and
// serves as the unbounded counterpart to BoundedStack.
type LockFreeStack[T any] struct {
	head atomic.Pointer[stackNode[T]]
}

type stackNode[T any] struct {
	value T
	next  *stackNode[T]
}

func NewLockFreeStack[T any]() *LockFreeStack[T] {
	return &LockFreeStack[T]{}
}

// Push adds value on top of the stack.
func (s *LockFreeStack[T]) Push(value T) {
	node := &stackNode[T]{value: value}

	for {
		head := s.head.Load()
		node.next = head
		if s.head.CompareAndSwap(head, node) {
			return
		}
	}
}

// Pop removes and returns the top of the stack, or (zero, false) when
// the stack is empty.
func (s *LockFreeStack[T]) Pop() (T, bool) {
	var zero T

	for {
		head := s.head.Load()
		if head == nil {
			return zero, false
		}
		if s.head.CompareAndSwap(head, head.next) {
			return head.value, true
		}
	}
}

// Peek returns the top of the stack without removing it.
func (s *LockFreeStack[T]) Peek() (T, bool) {
	var zero T

	head := s.head.Load()
	if head == nil {
		return zero, false
	}
	return head.value, true
}

// IsEmpty reports whether the stack has no elements.
func (s *LockFreeStack[T]) IsEmpty() bool {
	return s.head.Load() == nil
}
