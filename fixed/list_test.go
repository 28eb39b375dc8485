package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/pool"
)

func TestListBasics(t *testing.T) {
	l := NewList[int](4, WithName("queue"))
	assert.Equal(t, "queue", l.Name())
	assert.True(t, l.Empty())
	assert.False(t, l.CanOverflow())

	require.True(t, l.PushBack(2))
	require.True(t, l.PushBack(3))
	require.True(t, l.PushFront(1))
	assert.Equal(t, []int{1, 2, 3}, l.Values())

	v, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = l.PopBack()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []int{2}, l.Values())

	l.Clear()
	_, ok = l.PopBack()
	assert.False(t, ok)
}

func TestListFull(t *testing.T) {
	const n = 5
	l := NewList[int](n)
	for i := range n {
		assert.False(t, l.Full())
		require.True(t, l.PushBack(i))
	}
	assert.True(t, l.Full())
	assert.Equal(t, n, l.Len())
	assert.False(t, l.PushBack(n), "full list without overflow rejects inserts")

	l.Erase(l.Front())
	assert.False(t, l.Full())
	assert.False(t, l.HasOverflowed())
}

func TestListOverflow(t *testing.T) {
	tr := alloc.NewTracking(alloc.Default())
	l := NewList[int64](2, WithOverflow(tr))
	for i := range 5 {
		require.True(t, l.PushBack(int64(i)))
	}
	assert.True(t, l.HasOverflowed())
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, l.Values())
	assert.EqualValues(t, 3, tr.Stats().LiveBlocks)

	l.Clear()
	assert.Zero(t, tr.Stats().LiveBlocks)
	assert.True(t, l.HasOverflowed(), "overflow is sticky")
}

func TestListOverPoolAllocator(t *testing.T) {
	heap := alloc.NewTracking(alloc.NewHeap("overflow"))
	nodes, err := pool.NewOverflowAllocator(make([]byte, 64), 32, 8, 0, pool.WithOverflow(heap))
	require.NoError(t, err)

	l := NewList[int](1, WithOverflow(nodes))
	for i := range 4 {
		require.True(t, l.PushBack(i))
	}
	assert.Equal(t, 3, nodes.CurrentSize())
	assert.Equal(t, 1, nodes.OverflowCount())

	l.Clear()
	assert.Zero(t, nodes.CurrentSize())
	assert.Zero(t, heap.Stats().LiveBlocks)
	assert.Zero(t, heap.Stats().BytesInUse)
}

func TestListInsertErase(t *testing.T) {
	l := NewList[string](8)
	l.Assign("a", "c", "e")
	c := l.Next(l.Front())
	_, ok := l.InsertBefore(c, "b")
	require.True(t, ok)
	_, ok = l.InsertAfter(c, "d")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, l.Values())

	next := l.Erase(c)
	assert.Equal(t, "d", *l.Value(next))
	assert.Equal(t, "b", *l.Value(l.Prev(next)))

	removed := l.RemoveFunc(func(s string) bool { return s == "a" || s == "e" })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b", "d"}, l.Values())
	front, _ := l.FrontValue()
	back, _ := l.BackValue()
	assert.Equal(t, "b", front)
	assert.Equal(t, "d", back)
}

func TestListReverse(t *testing.T) {
	l := NewList[int](4)
	l.Assign(1, 2, 3, 4)
	l.Reverse()
	assert.Equal(t, []int{4, 3, 2, 1}, l.Values())
	var back []int
	for h := l.Back(); h != Nil; h = l.Prev(h) {
		back = append(back, *l.Value(h))
	}
	assert.Equal(t, []int{1, 2, 3, 4}, back)
}

func TestListCloneSwap(t *testing.T) {
	a := NewList[int](4)
	a.Assign(1, 2)
	b := a.Clone()
	b.PushBack(3)
	assert.Equal(t, []int{1, 2}, a.Values())
	assert.Equal(t, []int{1, 2, 3}, b.Values())

	a.Swap(b)
	assert.Equal(t, []int{1, 2, 3}, a.Values())
	assert.Equal(t, []int{1, 2}, b.Values())

	small := NewList[int](1)
	assert.Panics(t, func() { a.Swap(small) })
}

func TestListHandlesEarlyStop(t *testing.T) {
	l := NewList[int](4)
	l.Assign(1, 2, 3)
	var seen []int
	for h := range l.Handles() {
		seen = append(seen, *l.Value(h))
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
	assert.Panics(t, func() { l.Value(Nil) })
}

func TestSList(t *testing.T) {
	l := NewSList[int](4)
	require.True(t, l.Assign(1, 2, 3))
	assert.Equal(t, []int{1, 2, 3}, l.Values())
	assert.True(t, l.PushFront(0))
	assert.True(t, l.Full())
	assert.False(t, l.PushFront(-1))

	second := l.Next(l.Front())
	assert.Equal(t, l.Front(), l.Previous(second))
	assert.Equal(t, Nil, l.Previous(l.Front()))

	l.EraseAfter(second)
	assert.Equal(t, []int{0, 1, 3}, l.Values())
	assert.False(t, l.Full())

	l.Reverse()
	assert.Equal(t, []int{3, 1, 0}, l.Values())
	assert.Equal(t, 1, l.RemoveFunc(func(v int) bool { return v == 1 }))
	v, ok := l.PopFront()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []int{0}, l.Values())

	c := l.Clone()
	c.PushFront(9)
	assert.Equal(t, 1, l.Len())
	l.Swap(c)
	assert.Equal(t, []int{9, 0}, l.Values())
}

func TestSListOverflow(t *testing.T) {
	l := NewSList[int](1, WithOverflow(nil))
	assert.True(t, l.CanOverflow())
	require.True(t, l.Assign(1, 2, 3))
	assert.True(t, l.HasOverflowed())
	assert.Equal(t, []int{1, 2, 3}, l.Values())
}
