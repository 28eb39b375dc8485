package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/memkit/alloc"
)

func TestVectorFixed(t *testing.T) {
	v := NewVector[int](3)
	for i := range 3 {
		assert.False(t, v.Full())
		require.True(t, v.PushBack(i))
	}
	assert.True(t, v.Full())
	assert.False(t, v.PushBack(3))
	assert.ErrorIs(t, v.Insert(0, 9), ErrCapacity)

	require.NoError(t, v.Erase(1))
	assert.False(t, v.Full())
	assert.Equal(t, []int{0, 2}, v.Values())
	assert.False(t, v.HasOverflowed())
}

func TestVectorGet(t *testing.T) {
	v := NewVector[string](2)
	v.PushBack("a")
	got, err := v.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	_, err = v.Get(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, v.Set(-1, "x"), ErrOutOfRange)
	assert.Panics(t, func() { v.At(1) })
}

func TestVectorEdit(t *testing.T) {
	v := NewVector[int](8)
	v.Assign(1, 2, 5)
	require.NoError(t, v.Insert(2, 3, 4))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, v.Values())

	require.NoError(t, v.EraseUnsorted(0))
	assert.Equal(t, []int{5, 2, 3, 4}, v.Values())
	require.NoError(t, v.EraseRange(1, 3))
	assert.Equal(t, []int{5, 4}, v.Values())
	assert.ErrorIs(t, v.EraseRange(1, 3), ErrOutOfRange)
	assert.ErrorIs(t, v.Insert(3), ErrOutOfRange)

	x, ok := v.PopBack()
	require.True(t, ok)
	assert.Equal(t, 4, x)
	require.True(t, v.Resize(3))
	assert.Equal(t, []int{5, 0, 0}, v.Values())
	assert.False(t, v.Resize(9))
}

func TestVectorOverflow(t *testing.T) {
	tr := alloc.NewTracking(alloc.Default())
	v := NewVector[int64](2, WithOverflow(tr))
	for i := range 10 {
		require.True(t, v.PushBack(int64(i)))
	}
	assert.True(t, v.HasOverflowed())
	assert.Equal(t, 10, v.Len())
	assert.EqualValues(t, 1, tr.Stats().LiveBlocks, "old spill blocks are freed on migration")
	back, _ := v.Back()
	assert.EqualValues(t, 9, back)

	v.Reset()
	assert.Zero(t, tr.Stats().LiveBlocks)
	assert.Equal(t, 2, v.Cap())
	assert.True(t, v.HasOverflowed(), "overflow is sticky across Reset")
}

func TestVectorCloneSwap(t *testing.T) {
	a := NewVector[int](4)
	a.Assign(1, 2, 3)
	b := a.Clone()
	*b.At(0) = 10
	front, _ := a.Front()
	assert.Equal(t, 1, front)

	c := NewVector[int](4)
	c.Assign(7)
	a.Swap(c)
	assert.Equal(t, []int{7}, a.Values())
	assert.Equal(t, []int{1, 2, 3}, c.Values())
}

func TestRingBuffer(t *testing.T) {
	r := NewRingBuffer[int](3)
	assert.Equal(t, 3, r.Cap())
	for i := range 5 {
		r.PushBack(i)
	}
	assert.Equal(t, []int{2, 3, 4}, r.Values())

	assert.False(t, r.SetCapacity(8), "fixed storage cannot grow")
	assert.True(t, r.SetCapacity(2))
	assert.Equal(t, []int{3, 4}, r.Values())

	grow := NewRingBuffer[int](2, WithOverflow(nil))
	grow.PushBack(1)
	grow.PushBack(2)
	require.True(t, grow.SetCapacity(4))
	grow.PushBack(3)
	assert.Equal(t, []int{1, 2, 3}, grow.Values())
}
