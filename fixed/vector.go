package fixed

import (
	"iter"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

// Vector is a contiguous sequence backed by a buffer of fixed capacity.
// With an overflow allocator configured, growth past the buffer migrates
// the elements to storage obtained from that allocator; otherwise inserts
// into a full vector fail.
type Vector[T any] struct {
	buffer  []T // fixed storage, len == capacity
	data    []T // live elements; aliases buffer until overflow
	spilled bool
	peak    int
	cfg     config
}

// NewVector returns an empty vector with a fixed capacity of n.
func NewVector[T any](n int, opts ...Option) *Vector[T] {
	buf := make([]T, max(n, 0))
	return &Vector[T]{
		buffer: buf,
		data:   buf[:0],
		cfg:    buildConfig(opts),
	}
}

func (v *Vector[T]) Len() int     { return len(v.data) }
func (v *Vector[T]) Cap() int     { return cap(v.data) }
func (v *Vector[T]) Empty() bool  { return len(v.data) == 0 }
func (v *Vector[T]) MaxSize() int { return len(v.buffer) }
func (v *Vector[T]) Name() string { return v.cfg.name }

// Full reports whether the fixed buffer has no free slot.
func (v *Vector[T]) Full() bool { return len(v.data) >= len(v.buffer) }

// CanOverflow reports whether the vector may grow past MaxSize.
func (v *Vector[T]) CanOverflow() bool { return v.cfg.overflow != nil }

// HasOverflowed reports whether the vector ever held more than MaxSize
// elements.
func (v *Vector[T]) HasOverflowed() bool { return v.peak > len(v.buffer) }

// Overflow returns the overflow allocator, or nil.
func (v *Vector[T]) Overflow() alloc.Allocator { return v.cfg.overflow }

// At returns a pointer to element i. It asserts i is in range.
func (v *Vector[T]) At(i int) *T {
	assert.That(i >= 0 && i < len(v.data), "fixed: index %d out of range [0, %d)", i, len(v.data))
	return &v.data[i]
}

// Get returns element i or ErrOutOfRange.
func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(v.data) {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(v.data))
	}
	return v.data[i], nil
}

// Set stores x at index i.
func (v *Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= len(v.data) {
		return errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(v.data))
	}
	v.data[i] = x
	return nil
}

// Front returns the first element.
func (v *Vector[T]) Front() (T, bool) {
	if len(v.data) == 0 {
		var zero T
		return zero, false
	}
	return v.data[0], true
}

// Back returns the last element.
func (v *Vector[T]) Back() (T, bool) {
	if len(v.data) == 0 {
		var zero T
		return zero, false
	}
	return v.data[len(v.data)-1], true
}

// Reserve makes room for at least n elements. It returns false when n
// exceeds the fixed capacity and the vector cannot overflow.
func (v *Vector[T]) Reserve(n int) bool {
	if n <= cap(v.data) {
		return true
	}
	if v.cfg.overflow == nil {
		return false
	}
	grown := alloc.NewSlice[T](v.cfg.overflow, n)
	if grown == nil {
		return false
	}
	grown = grown[:len(v.data)]
	copy(grown, v.data)
	v.release()
	v.data = grown
	v.spilled = true
	return true
}

func (v *Vector[T]) grow(extra int) bool {
	need := len(v.data) + extra
	if need <= cap(v.data) {
		return true
	}
	return v.Reserve(max(need, 2*cap(v.data)))
}

// release drops the current storage. Spilled storage goes back to the
// overflow allocator; the fixed buffer is cleared.
func (v *Vector[T]) release() {
	if v.spilled {
		alloc.FreeSlice(v.cfg.overflow, v.data)
		v.spilled = false
		return
	}
	clear(v.buffer)
}

func (v *Vector[T]) track() { v.peak = max(v.peak, len(v.data)) }

// PushBack appends x. It returns false when the vector cannot grow.
func (v *Vector[T]) PushBack(x T) bool {
	if !v.grow(1) {
		return false
	}
	v.data = append(v.data, x)
	v.track()
	return true
}

// PopBack removes and returns the last element.
func (v *Vector[T]) PopBack() (T, bool) {
	x, ok := v.Back()
	if ok {
		var zero T
		v.data[len(v.data)-1] = zero
		v.data = v.data[:len(v.data)-1]
	}
	return x, ok
}

// Insert inserts xs at index i, shifting later elements up.
func (v *Vector[T]) Insert(i int, xs ...T) error {
	if i < 0 || i > len(v.data) {
		return errors.Wrapf(ErrOutOfRange, "insert at %d, length %d", i, len(v.data))
	}
	if !v.grow(len(xs)) {
		return errors.Wrapf(ErrCapacity, "insert of %d into %d/%d", len(xs), len(v.data), len(v.buffer))
	}
	v.data = slices.Insert(v.data, i, xs...)
	v.track()
	return nil
}

// Erase removes the element at index i, preserving order.
func (v *Vector[T]) Erase(i int) error {
	return v.EraseRange(i, i+1)
}

// EraseRange removes elements [i, j).
func (v *Vector[T]) EraseRange(i, j int) error {
	if i < 0 || j > len(v.data) || i > j {
		return errors.Wrapf(ErrOutOfRange, "erase [%d, %d), length %d", i, j, len(v.data))
	}
	v.data = slices.Delete(v.data, i, j)
	return nil
}

// EraseUnsorted removes the element at index i by moving the last element
// into its place.
func (v *Vector[T]) EraseUnsorted(i int) error {
	if i < 0 || i >= len(v.data) {
		return errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(v.data))
	}
	last := len(v.data) - 1
	v.data[i] = v.data[last]
	var zero T
	v.data[last] = zero
	v.data = v.data[:last]
	return nil
}

// Resize sets the length to n, zeroing new elements. It returns false
// when n cannot be accommodated.
func (v *Vector[T]) Resize(n int) bool {
	n = max(n, 0)
	if n <= len(v.data) {
		clear(v.data[n:])
		v.data = v.data[:n]
		return true
	}
	if !v.grow(n - len(v.data)) {
		return false
	}
	old := len(v.data)
	v.data = v.data[:n]
	clear(v.data[old:])
	v.track()
	return true
}

// Clear removes every element. Spilled storage is kept for reuse.
func (v *Vector[T]) Clear() {
	clear(v.data)
	v.data = v.data[:0]
}

// Reset removes every element and returns to the fixed buffer.
// HasOverflowed is unaffected.
func (v *Vector[T]) Reset() {
	v.release()
	v.data = v.buffer[:0]
}

// All yields index/value pairs.
func (v *Vector[T]) All() iter.Seq2[int, T] { return slices.All(v.data) }

// Values copies the elements into a new slice.
func (v *Vector[T]) Values() []T { return slices.Clone(v.data) }

// Assign replaces the contents with xs.
func (v *Vector[T]) Assign(xs ...T) bool {
	v.Clear()
	if !v.grow(len(xs)) {
		return false
	}
	v.data = append(v.data, xs...)
	v.track()
	return true
}

// Clone returns an independent copy with the same capacity and options.
func (v *Vector[T]) Clone() *Vector[T] {
	c := NewVector[T](v.MaxSize(), v.cfg.options()...)
	c.Assign(v.data...)
	return c
}

// Swap exchanges the elements of v and other by copying.
func (v *Vector[T]) Swap(other *Vector[T]) {
	if v == other {
		return
	}
	mine, theirs := v.Values(), other.Values()
	ok := v.Assign(theirs...)
	ok = other.Assign(mine...) && ok
	assert.That(ok, "fixed: %v", ErrCapacity)
}
