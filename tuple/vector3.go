package tuple

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

// Vector3 stores triples as three parallel columns.
type Vector3[A, B, C any] struct {
	c0    []A
	c1    []B
	c2    []C
	mem   []byte
	store store
	peak  int
}

// NewVector3 returns an empty growable vector.
func NewVector3[A, B, C any](opts ...Option) *Vector3[A, B, C] {
	return &Vector3[A, B, C]{store: newStore(0, opts)}
}

// NewFixed3 returns an empty vector with room for n rows allocated up
// front.
func NewFixed3[A, B, C any](n int, opts ...Option) *Vector3[A, B, C] {
	v := &Vector3[A, B, C]{store: newStore(n, opts)}
	v.Reserve(n)
	return v
}

func (v *Vector3[A, B, C]) Len() int     { return len(v.c0) }
func (v *Vector3[A, B, C]) Cap() int     { return cap(v.c0) }
func (v *Vector3[A, B, C]) Empty() bool  { return len(v.c0) == 0 }
func (v *Vector3[A, B, C]) MaxSize() int { return v.store.fixed }
func (v *Vector3[A, B, C]) Get0() []A    { return v.c0 }
func (v *Vector3[A, B, C]) Get1() []B    { return v.c1 }
func (v *Vector3[A, B, C]) Get2() []C    { return v.c2 }

func (v *Vector3[A, B, C]) Full() bool {
	return v.store.fixed > 0 && len(v.c0) >= v.store.fixed
}

func (v *Vector3[A, B, C]) HasOverflowed() bool {
	return v.store.fixed > 0 && v.peak > v.store.fixed
}

// Reserve makes room for n rows.
func (v *Vector3[A, B, C]) Reserve(n int) bool {
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
		c2  []C
		mem []byte
	)
	offs, total, align := layout(n, columnOf[A](), columnOf[B](), columnOf[C]())
	if total > 0 && alloc.PointerFree[A]() && alloc.PointerFree[B]() && alloc.PointerFree[C]() {
		if mem = v.store.acquire(n, total, align); mem == nil {
			return false
		}
		c0 = carve[A](mem, offs[0], n)
		c1 = carve[B](mem, offs[1], n)
		c2 = carve[C](mem, offs[2], n)
	} else {
		c0, c1, c2 = make([]A, n), make([]B, n), make([]C, n)
	}
	copy(c0, v.c0)
	copy(c1, v.c1)
	copy(c2, v.c2)
	v.store.release(v.mem)
	v.c0, v.c1, v.c2, v.mem = c0[:size], c1[:size], c2[:size], mem
	return true
}

func (v *Vector3[A, B, C]) grow(extra int) bool {
	need := len(v.c0) + extra
	if need <= cap(v.c0) {
		return true
	}
	return v.Reserve(nextCap(cap(v.c0), need))
}

// PushBack appends a row. It returns false when the vector cannot grow.
func (v *Vector3[A, B, C]) PushBack(a A, b B, c C) bool {
	if !v.grow(1) {
		return false
	}
	v.c0 = append(v.c0, a)
	v.c1 = append(v.c1, b)
	v.c2 = append(v.c2, c)
	v.peak = max(v.peak, len(v.c0))
	return true
}

// PushBackZero appends a zero row and returns its index, or -1.
func (v *Vector3[A, B, C]) PushBackZero() int {
	var (
		a A
		b B
		c C
	)
	if !v.PushBack(a, b, c) {
		return -1
	}
	return len(v.c0) - 1
}

// PopBack removes and returns the last row.
func (v *Vector3[A, B, C]) PopBack() (A, B, C, bool) {
	var (
		za A
		zb B
		zc C
	)
	n := len(v.c0)
	if n == 0 {
		return za, zb, zc, false
	}
	a, b, c := v.c0[n-1], v.c1[n-1], v.c2[n-1]
	v.c0[n-1], v.c1[n-1], v.c2[n-1] = za, zb, zc
	v.c0, v.c1, v.c2 = v.c0[:n-1], v.c1[:n-1], v.c2[:n-1]
	return a, b, c, true
}

func (v *Vector3[A, B, C]) check(i int) {
	assert.That(i >= 0 && i < len(v.c0), "tuple: index %d out of range [0, %d)", i, len(v.c0))
}

// At returns row i.
func (v *Vector3[A, B, C]) At(i int) (A, B, C) {
	v.check(i)
	return v.c0[i], v.c1[i], v.c2[i]
}

// Get returns row i or ErrOutOfRange.
func (v *Vector3[A, B, C]) Get(i int) (A, B, C, error) {
	if i < 0 || i >= len(v.c0) {
		var (
			a A
			b B
			c C
		)
		return a, b, c, errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(v.c0))
	}
	return v.c0[i], v.c1[i], v.c2[i], nil
}

// Set overwrites row i.
func (v *Vector3[A, B, C]) Set(i int, a A, b B, c C) {
	v.check(i)
	v.c0[i], v.c1[i], v.c2[i] = a, b, c
}

// Resize sets the row count, zeroing new rows.
func (v *Vector3[A, B, C]) Resize(n int) bool {
	n = max(n, 0)
	if n < len(v.c0) {
		clear(v.c0[n:])
		clear(v.c1[n:])
		clear(v.c2[n:])
		v.c0, v.c1, v.c2 = v.c0[:n], v.c1[:n], v.c2[:n]
		return true
	}
	if !v.grow(n - len(v.c0)) {
		return false
	}
	old := len(v.c0)
	v.c0, v.c1, v.c2 = v.c0[:n], v.c1[:n], v.c2[:n]
	clear(v.c0[old:])
	clear(v.c1[old:])
	clear(v.c2[old:])
	v.peak = max(v.peak, n)
	return true
}

// Erase removes row i, preserving order.
func (v *Vector3[A, B, C]) Erase(i int) {
	v.check(i)
	v.c0 = slices.Delete(v.c0, i, i+1)
	v.c1 = slices.Delete(v.c1, i, i+1)
	v.c2 = slices.Delete(v.c2, i, i+1)
}

// EraseUnsorted removes row i by moving the last row into its place.
func (v *Vector3[A, B, C]) EraseUnsorted(i int) {
	v.check(i)
	a, b, c, _ := v.PopBack()
	if i < len(v.c0) {
		v.c0[i], v.c1[i], v.c2[i] = a, b, c
	}
}

// Clear removes every row and keeps the storage.
func (v *Vector3[A, B, C]) Clear() {
	clear(v.c0)
	clear(v.c1)
	clear(v.c2)
	v.c0, v.c1, v.c2 = v.c0[:0], v.c1[:0], v.c2[:0]
}

// Release removes every row and frees allocator storage.
func (v *Vector3[A, B, C]) Release() {
	v.Clear()
	v.store.release(v.mem)
	v.c0, v.c1, v.c2, v.mem = nil, nil, nil, nil
	if v.store.fixed > 0 {
		v.Reserve(v.store.fixed)
	}
}
