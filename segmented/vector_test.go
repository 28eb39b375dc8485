package segmented

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/memkit/alloc"
)

func TestVectorSegments(t *testing.T) {
	const count = 4
	v := NewVector[int](count)
	front := v.PushBack(0)
	for i := 1; i < 2*count+1; i++ {
		require.NotNil(t, v.PushBack(i))
	}
	assert.Equal(t, 3, v.SegmentCount())
	assert.Equal(t, []int{4, 4, 1}, v.SegmentLens())
	assert.Same(t, front, v.Front(), "growth never moves elements")
	assert.Equal(t, 8, *v.Back())
	assert.Equal(t, 5, *v.At(5))
}

func TestVectorPopFreesTail(t *testing.T) {
	tr := alloc.NewTracking(alloc.Default())
	v := NewVector[uint32](2, WithAllocator(tr))
	for i := range 5 {
		v.PushBack(uint32(i))
	}
	assert.Equal(t, 3, tr.Stats().LiveBlocks)

	x, ok := v.PopBack()
	require.True(t, ok)
	assert.EqualValues(t, 4, x)
	assert.Equal(t, 2, v.SegmentCount())
	assert.Equal(t, 2, tr.Stats().LiveBlocks)

	v.PushBack(9)
	assert.Equal(t, []uint32{0, 1, 2, 3, 9}, v.Values())

	v.Clear()
	assert.True(t, v.Empty())
	assert.Zero(t, v.SegmentCount())
	assert.Zero(t, tr.Stats().LiveBlocks)
	_, ok = v.PopBack()
	assert.False(t, ok)
	assert.Nil(t, v.Front())
	assert.Nil(t, v.Back())
}

func TestVectorEraseUnsorted(t *testing.T) {
	v := NewVector[string](2)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		v.PushBack(s)
	}
	v.EraseUnsorted(1)
	assert.Equal(t, []string{"a", "e", "c", "d"}, v.Values())
	v.EraseUnsorted(3)
	assert.Equal(t, []string{"a", "e", "c"}, v.Values())
	assert.Equal(t, 2, v.SegmentCount())
	assert.Panics(t, func() { v.EraseUnsorted(3) })
}

func TestVectorAllocationFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	v := NewVector[int64](8, WithAllocator(alloc.NewDummy("none")), WithLogger(logger))
	assert.Nil(t, v.PushBack(1))
	assert.Zero(t, v.Len())
	assert.Contains(t, buf.String(), "segment allocation failed")
}

func TestVectorAllEarlyStop(t *testing.T) {
	v := NewVector[int](3)
	for i := range 7 {
		*v.PushBackZero() = i * i
	}
	var got []int
	for i, p := range v.All() {
		if i == 4 {
			break
		}
		got = append(got, *p)
	}
	assert.Equal(t, []int{0, 1, 4, 9}, got)
	assert.Equal(t, 3, v.SegmentSize())
}
