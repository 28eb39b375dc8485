// Package segmented provides a vector that grows by appending fixed-size
// segments, so elements never move once pushed.
package segmented

import (
	"iter"
	"log/slog"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

type segmentKind uint8

const (
	// innerSegment is followed by another segment; all its slots are used.
	innerSegment segmentKind = iota
	// lastSegment is the tail; used counts its occupied slots.
	lastSegment
)

type segment[T any] struct {
	items []T
	prev  *segment[T]
	next  *segment[T]
	kind  segmentKind
	used  int
}

func (s *segment[T]) len() int {
	if s.kind == lastSegment {
		return s.used
	}
	return len(s.items)
}

// Vector stores elements in a chain of segments of SegmentSize elements
// each. Pointers returned by PushBack, At, Front and Back stay valid until
// the element is popped or the vector is cleared.
type Vector[T any] struct {
	first    *segment[T]
	last     *segment[T]
	size     int
	segments int
	count    int
	a        alloc.Allocator
	logger   *slog.Logger
}

// Option configures a Vector.
type Option func(*options)

type options struct {
	a      alloc.Allocator
	logger *slog.Logger
}

// WithAllocator sets the allocator segments are carved from. The default
// is the heap.
func WithAllocator(a alloc.Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.a = a
		}
	}
}

// WithLogger sets the logger for segment allocation failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewVector returns an empty vector whose segments hold count elements.
func NewVector[T any](count int, opts ...Option) *Vector[T] {
	assert.That(count > 0, "segmented: segment size %d must be positive", count)
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.a == nil {
		o.a = alloc.Default()
	}
	return &Vector[T]{count: count, a: o.a, logger: o.logger}
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.size }

// Empty reports whether the vector has no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// SegmentCount returns the number of allocated segments.
func (v *Vector[T]) SegmentCount() int { return v.segments }

// SegmentSize returns the element capacity of each segment.
func (v *Vector[T]) SegmentSize() int { return v.count }

// Allocator returns the segment allocator.
func (v *Vector[T]) Allocator() alloc.Allocator { return v.a }

func (v *Vector[T]) appendSegment() bool {
	items := alloc.NewSlice[T](v.a, v.count)
	if items == nil {
		v.logger.Warn("segment allocation failed",
			slog.String("allocator", v.a.Name()),
			slog.Int("segment_size", v.count),
			slog.Int("segments", v.segments))
		return false
	}
	s := &segment[T]{items: items, prev: v.last, kind: lastSegment}
	if v.last == nil {
		v.first = s
	} else {
		v.last.next = s
		v.last.kind = innerSegment
	}
	v.last = s
	v.segments++
	return true
}

func (v *Vector[T]) dropLastSegment() {
	s := v.last
	alloc.FreeSlice(v.a, s.items)
	v.last = s.prev
	v.segments--
	if v.last == nil {
		v.first = nil
		return
	}
	v.last.next = nil
	v.last.kind = lastSegment
	v.last.used = len(v.last.items)
}

// PushBackZero appends a zero element and returns a pointer to it, or nil
// if a new segment could not be allocated.
func (v *Vector[T]) PushBackZero() *T {
	if v.last == nil || v.last.used == v.count {
		if !v.appendSegment() {
			return nil
		}
	}
	p := &v.last.items[v.last.used]
	v.last.used++
	v.size++
	return p
}

// PushBack appends x and returns a pointer to the stored element, or nil
// if a new segment could not be allocated.
func (v *Vector[T]) PushBack(x T) *T {
	p := v.PushBackZero()
	if p != nil {
		*p = x
	}
	return p
}

// PopBack removes and returns the last element. The tail segment is freed
// when its last element is removed.
func (v *Vector[T]) PopBack() (T, bool) {
	var zero T
	if v.size == 0 {
		return zero, false
	}
	s := v.last
	s.used--
	x := s.items[s.used]
	s.items[s.used] = zero
	v.size--
	if s.used == 0 {
		v.dropLastSegment()
	}
	return x, true
}

// EraseUnsorted removes element i by moving the last element into its
// place.
func (v *Vector[T]) EraseUnsorted(i int) {
	p := v.At(i)
	last, _ := v.PopBack()
	if i < v.size {
		*p = last
	}
}

// At returns a pointer to element i. It walks the segment chain.
func (v *Vector[T]) At(i int) *T {
	assert.That(i >= 0 && i < v.size, "segmented: index %d out of range [0, %d)", i, v.size)
	s := v.first
	for ; i >= v.count; i -= v.count {
		s = s.next
	}
	return &s.items[i]
}

// Front returns a pointer to the first element, or nil.
func (v *Vector[T]) Front() *T {
	if v.size == 0 {
		return nil
	}
	return &v.first.items[0]
}

// Back returns a pointer to the last element, or nil.
func (v *Vector[T]) Back() *T {
	if v.size == 0 {
		return nil
	}
	return &v.last.items[v.last.used-1]
}

// Clear removes every element and frees every segment.
func (v *Vector[T]) Clear() {
	for v.last != nil {
		clear(v.last.items)
		v.dropLastSegment()
	}
	v.size = 0
}

// All yields pointers to the elements in order.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		i := 0
		for s := v.first; s != nil; s = s.next {
			for j := range s.len() {
				if !yield(i, &s.items[j]) {
					return
				}
				i++
			}
		}
	}
}

// Values copies the elements into a new slice.
func (v *Vector[T]) Values() []T {
	out := make([]T, 0, v.size)
	for _, p := range v.All() {
		out = append(out, *p)
	}
	return out
}

// SegmentLens returns the number of elements in each segment, front to
// back.
func (v *Vector[T]) SegmentLens() []int {
	out := make([]int, 0, v.segments)
	for s := v.first; s != nil; s = s.next {
		out = append(out, s.len())
	}
	return out
}
