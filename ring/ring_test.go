package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferBasics(t *testing.T) {
	b := New[int](3)
	assert.Equal(t, 3, b.Cap())
	assert.True(t, b.Empty())
	assert.False(t, b.Full())

	_, ok := b.PopFront()
	assert.False(t, ok)
	_, ok = b.Back()
	assert.False(t, ok)

	b.PushBack(1)
	b.PushBack(2)
	b.PushBack(3)
	assert.True(t, b.Full())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []int{1, 2, 3}, b.Values())

	front, _ := b.Front()
	back, _ := b.Back()
	assert.Equal(t, 1, front)
	assert.Equal(t, 3, back)
	assert.Equal(t, 2, *b.At(1))
}

func TestBufferOverwrites(t *testing.T) {
	b := New[int](3)
	for i := 1; i <= 5; i++ {
		b.PushBack(i)
	}
	assert.Equal(t, []int{3, 4, 5}, b.Values(), "PushBack drops the oldest")

	b.PushFront(2)
	assert.Equal(t, []int{2, 3, 4}, b.Values(), "PushFront drops the newest")
}

func TestBufferPopBothEnds(t *testing.T) {
	b := New[string](4)
	b.PushBack("b")
	b.PushFront("a")
	b.PushBack("c")

	v, ok := b.PopBack()
	require.True(t, ok)
	assert.Equal(t, "c", v)

	v, ok = b.PopFront()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	assert.Equal(t, []string{"b"}, b.Values())
}

func TestBufferWrapsAround(t *testing.T) {
	b := New[int](4)
	next := 0
	for round := range 50 {
		for b.Len() < 3 {
			b.PushBack(next)
			next++
		}
		v, ok := b.PopFront()
		require.True(t, ok)
		assert.Equal(t, next-3, v, "round %d", round)
	}
}

func TestBufferAllStopsEarly(t *testing.T) {
	b := New[int](5)
	for i := range 5 {
		b.PushBack(i)
	}
	var seen []int
	for v := range b.All() {
		if v == 2 {
			break
		}
		seen = append(seen, v)
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestBufferSetCapacity(t *testing.T) {
	b := New[int](3)
	for i := range 5 {
		b.PushBack(i)
	}

	require.True(t, b.SetCapacity(6))
	assert.Equal(t, 6, b.Cap())
	assert.Equal(t, []int{2, 3, 4}, b.Values())

	b.PushBack(5)
	require.True(t, b.SetCapacity(2))
	assert.Equal(t, []int{4, 5}, b.Values(), "shrinking keeps the newest")
	assert.True(t, b.Full())

	assert.True(t, b.SetCapacity(2))
}

func TestBufferZeroCapacity(t *testing.T) {
	b := New[int](0)
	b.PushBack(1)
	b.PushFront(1)
	assert.True(t, b.Empty())
	assert.True(t, b.Full())
}

func TestBufferClear(t *testing.T) {
	b := New[*int](2)
	x := 1
	b.PushBack(&x)
	b.PushBack(&x)
	b.Clear()
	assert.True(t, b.Empty())
	assert.Zero(t, b.Len())
}

func TestBufferAtOutOfRange(t *testing.T) {
	b := New[int](2)
	b.PushBack(1)
	assert.Panics(t, func() { b.At(1) })
}
