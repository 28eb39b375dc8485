// Package ring implements a circular buffer over a pluggable backing
// container.
//
// A Buffer of capacity n keeps a backing container of n+1 slots. The spare
// slot separates the empty state (begin == end) from the full state
// (end+1 == begin) without a separate counter.
package ring

import (
	"iter"

	"github.com/pavanmanishd/memkit/internal/assert"
)

// Backing is the storage a Buffer runs over. Len is the number of slots,
// which is one more than the buffer capacity.
type Backing[T any] interface {
	Len() int
	At(i int) *T
	Resize(n int) bool
}

// Buffer is a circular buffer. Pushing onto a full buffer overwrites the
// element at the opposite end.
type Buffer[T any] struct {
	c     Backing[T]
	begin int
	end   int
}

// New returns a buffer of the given capacity over a plain slice.
func New[T any](capacity int) *Buffer[T] {
	return NewWith[T](&sliceBacking[T]{s: make([]T, max(capacity, 0)+1)})
}

// NewWith runs a buffer over c. c must already hold capacity+1 slots.
func NewWith[T any](c Backing[T]) *Buffer[T] {
	assert.That(c.Len() > 0, "ring: backing container has no slots")
	return &Buffer[T]{c: c}
}

func (b *Buffer[T]) slots() int { return b.c.Len() }

func (b *Buffer[T]) inc(i int) int {
	if i++; i == b.slots() {
		return 0
	}
	return i
}

func (b *Buffer[T]) dec(i int) int {
	if i == 0 {
		return b.slots() - 1
	}
	return i - 1
}

// Len returns the number of stored elements.
func (b *Buffer[T]) Len() int {
	if b.end >= b.begin {
		return b.end - b.begin
	}
	return b.slots() - b.begin + b.end
}

// Cap returns the number of elements the buffer holds before overwriting.
func (b *Buffer[T]) Cap() int { return b.slots() - 1 }

// Empty reports whether the buffer holds no elements.
func (b *Buffer[T]) Empty() bool { return b.begin == b.end }

// Full reports whether the next push overwrites an element.
func (b *Buffer[T]) Full() bool { return b.inc(b.end) == b.begin }

// PushBack appends v, dropping the front element when full.
func (b *Buffer[T]) PushBack(v T) {
	if b.Cap() == 0 {
		return
	}
	*b.c.At(b.end) = v
	b.end = b.inc(b.end)
	if b.end == b.begin {
		b.clearSlot(b.begin)
		b.begin = b.inc(b.begin)
	}
}

// PushFront prepends v, dropping the back element when full.
func (b *Buffer[T]) PushFront(v T) {
	if b.Cap() == 0 {
		return
	}
	b.begin = b.dec(b.begin)
	*b.c.At(b.begin) = v
	if b.begin == b.end {
		b.end = b.dec(b.end)
		b.clearSlot(b.end)
	}
}

// PopFront removes and returns the front element.
func (b *Buffer[T]) PopFront() (T, bool) {
	var zero T
	if b.Empty() {
		return zero, false
	}
	v := *b.c.At(b.begin)
	b.clearSlot(b.begin)
	b.begin = b.inc(b.begin)
	return v, true
}

// PopBack removes and returns the back element.
func (b *Buffer[T]) PopBack() (T, bool) {
	var zero T
	if b.Empty() {
		return zero, false
	}
	b.end = b.dec(b.end)
	v := *b.c.At(b.end)
	b.clearSlot(b.end)
	return v, true
}

// Front returns the oldest element.
func (b *Buffer[T]) Front() (T, bool) {
	if b.Empty() {
		var zero T
		return zero, false
	}
	return *b.c.At(b.begin), true
}

// Back returns the newest element.
func (b *Buffer[T]) Back() (T, bool) {
	if b.Empty() {
		var zero T
		return zero, false
	}
	return *b.c.At(b.dec(b.end)), true
}

// At returns a pointer to the i'th element counting from the front.
func (b *Buffer[T]) At(i int) *T {
	assert.That(i >= 0 && i < b.Len(), "ring: index %d out of range [0,%d)", i, b.Len())
	return b.c.At((b.begin + i) % b.slots())
}

// All yields the elements from front to back.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := b.begin; i != b.end; i = b.inc(i) {
			if !yield(*b.c.At(i)) {
				return
			}
		}
	}
}

// Values copies the elements from front to back into a new slice.
func (b *Buffer[T]) Values() []T {
	out := make([]T, 0, b.Len())
	for v := range b.All() {
		out = append(out, v)
	}
	return out
}

// Clear removes every element.
func (b *Buffer[T]) Clear() {
	for i := b.begin; i != b.end; i = b.inc(i) {
		b.clearSlot(i)
	}
	b.begin, b.end = 0, 0
}

// SetCapacity resizes the buffer. When shrinking below Len the oldest
// elements are dropped. Returns false, leaving the buffer unchanged, if the
// backing container cannot be resized.
func (b *Buffer[T]) SetCapacity(n int) bool {
	if n < 0 {
		n = 0
	}
	if n == b.Cap() {
		return true
	}
	vals := b.Values()
	if len(vals) > n {
		vals = vals[len(vals)-n:]
	}
	if !b.c.Resize(n + 1) {
		return false
	}
	for i := range b.slots() {
		var zero T
		*b.c.At(i) = zero
	}
	for i, v := range vals {
		*b.c.At(i) = v
	}
	b.begin, b.end = 0, len(vals)
	return true
}

func (b *Buffer[T]) clearSlot(i int) {
	var zero T
	*b.c.At(i) = zero
}

type sliceBacking[T any] struct {
	s []T
}

func (s *sliceBacking[T]) Len() int { return len(s.s) }

func (s *sliceBacking[T]) At(i int) *T { return &s.s[i] }

func (s *sliceBacking[T]) Resize(n int) bool {
	switch old := len(s.s); {
	case n <= old:
		clear(s.s[n:])
		s.s = s.s[:n]
	case n <= cap(s.s):
		s.s = s.s[:n]
		clear(s.s[old:])
	default:
		s.s = append(s.s, make([]T, n-old)...)
	}
	return true
}
