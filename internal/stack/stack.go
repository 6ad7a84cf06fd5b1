// Package stack provides the bounded LIFO used for lexical states,
// open elements and builder scopes.
package stack

import "errors"

var (
	ErrOverflow  = errors.New("stack overflow")
	ErrUnderflow = errors.New("stack underflow")
)

// Stack is a slice backed LIFO. A Stack with a positive limit refuses
// to grow past that many items.
type Stack[T any] struct {
	items []T
	limit int
}

// New creates a stack that holds at most limit items. A limit of zero
// or less means the stack is unbounded.
func New[T any](limit int) *Stack[T] {
	return &Stack[T]{limit: limit}
}

func (s *Stack[T]) Push(v T) error {
	if s.limit > 0 && len(s.items) >= s.limit {
		return ErrOverflow
	}
	s.items = append(s.items, v)
	return nil
}

func (s *Stack[T]) Pop() (T, error) {
	var zero T
	l := len(s.items)
	if l == 0 {
		return zero, ErrUnderflow
	}
	v := s.items[l-1]
	s.items[l-1] = zero
	s.items = s.items[:l-1]

	if c := cap(s.items); c > 20 && c > len(s.items)*2 {
		s.realloc()
	}
	return v, nil
}

// Peek returns the topmost item without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// At returns the n-th item counting from the bottom of the stack.
func (s *Stack[T]) At(n int) (T, bool) {
	var zero T
	if n < 0 || n >= len(s.items) {
		return zero, false
	}
	return s.items[n], true
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) Cap() int {
	return cap(s.items)
}

func (s *Stack[T]) Limit() int {
	return s.limit
}

// Reset empties the stack, keeping the allocated storage.
func (s *Stack[T]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *Stack[T]) realloc() {
	s.items = append([]T(nil), s.items...)
}
