package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadding(t *testing.T) {
	tests := []struct {
		addr      uintptr
		alignment int
		offset    int
		expected  int
	}{
		{0, 8, 0, 0},
		{1, 8, 0, 7},
		{8, 8, 0, 0},
		{9, 16, 0, 7},
		{16, 16, 4, 4},
		{20, 16, 4, 0},
		{3, 1, 0, 0},
	}

	for _, tt := range tests {
		got := Padding(tt.addr, tt.alignment, tt.offset)
		assert.Equal(t, tt.expected, got, "Padding(%d, %d, %d)", tt.addr, tt.alignment, tt.offset)
		assert.Zero(t, (tt.addr+uintptr(got)-uintptr(tt.offset))%uintptr(tt.alignment))
	}
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, AlignUp(0, 8))
	assert.Equal(t, 8, AlignUp(1, 8))
	assert.Equal(t, 8, AlignUp(8, 8))
	assert.Equal(t, 4096, AlignUp(4000, 4096))
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 64, 4096} {
		assert.True(t, IsPowerOfTwo(n), n)
	}
	for _, n := range []int{0, -2, 3, 12, 100} {
		assert.False(t, IsPowerOfTwo(n), n)
	}
}

func TestEqual(t *testing.T) {
	h1, h2 := NewHeap("a"), NewHeap("b")
	d1, d2 := NewDummy("x"), NewDummy("y")
	a1, a2 := NewArena(64), NewArena(64)

	assert.True(t, Equal(h1, h2), "heaps free each other's blocks")
	assert.True(t, Equal(d1, d2))
	assert.False(t, Equal(h1, d1))
	assert.False(t, Equal(d1, h1))
	assert.True(t, Equal(a1, a1))
	assert.False(t, Equal(a1, a2), "distinct arenas are distinct")
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(h1, nil))

	tr := NewTracking(h1)
	assert.True(t, Equal(tr, h2))
	assert.True(t, Equal(h2, tr))
	assert.True(t, Equal(Synchronized(h1), tr))
}

func TestDefault(t *testing.T) {
	a := Default()
	assert.Equal(t, DefaultName, a.Name())
	assert.NotSame(t, a, Default(), "Default builds a fresh allocator each call")
}

func TestHeapAllocate(t *testing.T) {
	h := NewHeap("heap")

	assert.Nil(t, h.Allocate(0, FlagTemp))
	assert.Nil(t, h.Allocate(-1, FlagTemp))

	for _, n := range []int{1, 3, 7, 8, 15, 100, 4097} {
		p := h.Allocate(n, FlagPerm)
		require.Len(t, p, n)
		assert.Zero(t, Addr(p)%MinAlignment, "Allocate(%d) misaligned", n)
	}

	h.Deallocate(nil, 10)
	h.SetName("renamed")
	assert.Equal(t, "renamed", h.Name())
}

func TestHeapAllocateAligned(t *testing.T) {
	h := NewHeap("heap")
	for _, alignment := range []int{8, 16, 64, 256, 4096} {
		for _, offset := range []int{0, 4, 12} {
			p := h.AllocateAligned(33, alignment, offset, FlagTemp)
			require.Len(t, p, 33)
			assert.Zero(t, (Addr(p)-uintptr(offset))%uintptr(alignment),
				"alignment=%d offset=%d", alignment, offset)
		}
	}

	assert.Panics(t, func() { h.AllocateAligned(8, 3, 0, FlagTemp) })
}

func TestDummy(t *testing.T) {
	d := NewDummy("none")
	assert.Nil(t, d.Allocate(16, FlagTemp))
	assert.Nil(t, d.AllocateAligned(16, 64, 0, FlagTemp))
	assert.NotPanics(t, func() { d.Deallocate(nil, 0) })
	assert.Equal(t, "none", d.Name())
}

func TestOptions(t *testing.T) {
	a := NewArena(128, WithName("frame"), WithLogger(nil))
	assert.Equal(t, "frame", a.Name())
	assert.NotNil(t, a.logger, "nil logger keeps the discard default")
}
