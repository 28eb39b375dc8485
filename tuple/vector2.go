package tuple

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

// Vector2 stores pairs as two parallel columns. Get0 and Get1 return each
// column as a contiguous slice.
type Vector2[A, B any] struct {
	c0    []A
	c1    []B
	mem   []byte // block holding the columns, nil when they are Go-allocated
	store store
	peak  int
}

// NewVector2 returns an empty vector that grows from the heap, or from the
// allocator given with WithAllocator.
func NewVector2[A, B any](opts ...Option) *Vector2[A, B] {
	return &Vector2[A, B]{store: newStore(0, opts)}
}

// NewFixed2 returns an empty vector with room for n rows allocated up
// front. It grows past n only when an allocator is given with
// WithAllocator.
func NewFixed2[A, B any](n int, opts ...Option) *Vector2[A, B] {
	v := &Vector2[A, B]{store: newStore(n, opts)}
	v.Reserve(n)
	return v
}

func (v *Vector2[A, B]) Len() int { return len(v.c0) }
func (v *Vector2[A, B]) Cap() int { return cap(v.c0) }

// Empty reports whether the vector has no rows.
func (v *Vector2[A, B]) Empty() bool { return len(v.c0) == 0 }

// MaxSize returns the fixed capacity, or 0 for a growable vector.
func (v *Vector2[A, B]) MaxSize() int { return v.store.fixed }

// Full reports whether a fixed vector has used every inline row.
func (v *Vector2[A, B]) Full() bool { return v.store.fixed > 0 && len(v.c0) >= v.store.fixed }

// HasOverflowed reports whether a fixed vector ever grew past its fixed
// capacity.
func (v *Vector2[A, B]) HasOverflowed() bool { return v.store.fixed > 0 && v.peak > v.store.fixed }

// Get0 returns the first column.
func (v *Vector2[A, B]) Get0() []A { return v.c0 }

// Get1 returns the second column.
func (v *Vector2[A, B]) Get1() []B { return v.c1 }

// Reserve makes room for n rows, moving every column into a new block when
// the current one is too small.
func (v *Vector2[A, B]) Reserve(n int) bool {
	if n <= cap(v.c0) {
		return true
	}
	if !v.store.allows(n) {
		return false
	}
	size := len(v.c0)
	var (
		c0  []A
		c1  []B
		mem []byte
	)
	offs, total, align := layout(n, columnOf[A](), columnOf[B]())
	if total > 0 && alloc.PointerFree[A]() && alloc.PointerFree[B]() {
		if mem = v.store.acquire(n, total, align); mem == nil {
			return false
		}
		c0, c1 = carve[A](mem, offs[0], n), carve[B](mem, offs[1], n)
	} else {
		c0, c1 = make([]A, n), make([]B, n)
	}
	copy(c0, v.c0)
	copy(c1, v.c1)
	v.store.release(v.mem)
	v.c0, v.c1, v.mem = c0[:size], c1[:size], mem
	return true
}

func (v *Vector2[A, B]) grow(extra int) bool {
	need := len(v.c0) + extra
	if need <= cap(v.c0) {
		return true
	}
	return v.Reserve(nextCap(cap(v.c0), need))
}

func (v *Vector2[A, B]) track() { v.peak = max(v.peak, len(v.c0)) }

// PushBack appends a row. It returns false when the vector cannot grow.
func (v *Vector2[A, B]) PushBack(a A, b B) bool {
	if !v.grow(1) {
		return false
	}
	v.c0 = append(v.c0, a)
	v.c1 = append(v.c1, b)
	v.track()
	return true
}

// PushBackZero appends a zero row and returns its index, or -1.
func (v *Vector2[A, B]) PushBackZero() int {
	var (
		a A
		b B
	)
	if !v.PushBack(a, b) {
		return -1
	}
	return len(v.c0) - 1
}

// PopBack removes and returns the last row.
func (v *Vector2[A, B]) PopBack() (A, B, bool) {
	var (
		za A
		zb B
	)
	n := len(v.c0)
	if n == 0 {
		return za, zb, false
	}
	a, b := v.c0[n-1], v.c1[n-1]
	v.c0[n-1], v.c1[n-1] = za, zb
	v.c0, v.c1 = v.c0[:n-1], v.c1[:n-1]
	return a, b, true
}

// At returns row i. It asserts i is in range.
func (v *Vector2[A, B]) At(i int) (A, B) {
	assert.That(i >= 0 && i < len(v.c0), "tuple: index %d out of range [0, %d)", i, len(v.c0))
	return v.c0[i], v.c1[i]
}

// Get returns row i or ErrOutOfRange.
func (v *Vector2[A, B]) Get(i int) (A, B, error) {
	if i < 0 || i >= len(v.c0) {
		var (
			a A
			b B
		)
		return a, b, errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(v.c0))
	}
	return v.c0[i], v.c1[i], nil
}

// Set overwrites row i.
func (v *Vector2[A, B]) Set(i int, a A, b B) {
	assert.That(i >= 0 && i < len(v.c0), "tuple: index %d out of range [0, %d)", i, len(v.c0))
	v.c0[i], v.c1[i] = a, b
}

// Resize sets the row count, zeroing new rows.
func (v *Vector2[A, B]) Resize(n int) bool {
	n = max(n, 0)
	if n < len(v.c0) {
		clear(v.c0[n:])
		clear(v.c1[n:])
		v.c0, v.c1 = v.c0[:n], v.c1[:n]
		return true
	}
	if !v.grow(n - len(v.c0)) {
		return false
	}
	old := len(v.c0)
	v.c0, v.c1 = v.c0[:n], v.c1[:n]
	clear(v.c0[old:])
	clear(v.c1[old:])
	v.track()
	return true
}

// Erase removes row i, preserving order.
func (v *Vector2[A, B]) Erase(i int) {
	assert.That(i >= 0 && i < len(v.c0), "tuple: index %d out of range [0, %d)", i, len(v.c0))
	v.c0 = slices.Delete(v.c0, i, i+1)
	v.c1 = slices.Delete(v.c1, i, i+1)
}

// EraseUnsorted removes row i by moving the last row into its place.
func (v *Vector2[A, B]) EraseUnsorted(i int) {
	assert.That(i >= 0 && i < len(v.c0), "tuple: index %d out of range [0, %d)", i, len(v.c0))
	a, b, _ := v.PopBack()
	if i < len(v.c0) {
		v.c0[i], v.c1[i] = a, b
	}
}

// Clear removes every row and keeps the storage.
func (v *Vector2[A, B]) Clear() {
	clear(v.c0)
	clear(v.c1)
	v.c0, v.c1 = v.c0[:0], v.c1[:0]
}

// Release removes every row and frees allocator storage. A fixed vector
// returns to its inline capacity.
func (v *Vector2[A, B]) Release() {
	v.Clear()
	v.store.release(v.mem)
	v.c0, v.c1, v.mem = nil, nil, nil
	if v.store.fixed > 0 {
		v.Reserve(v.store.fixed)
	}
}
