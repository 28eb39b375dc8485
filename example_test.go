package memkit_test

import (
	"fmt"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/fixed"
	"github.com/pavanmanishd/memkit/intrusive"
	"github.com/pavanmanishd/memkit/pool"
	"github.com/pavanmanishd/memkit/segmented"
	"github.com/pavanmanishd/memkit/tuple"
)

// Example shows request-scoped allocation from an arena.
func Example() {
	a := alloc.NewArena(0, alloc.WithName("request"))
	defer a.Release()

	buf := a.Allocate(1024, alloc.FlagTemp)
	fmt.Printf("Allocated buffer of size: %d\n", len(buf))

	n := alloc.New[int](a)
	*n = 42
	fmt.Printf("Allocated int with value: %d\n", *n)

	s := alloc.NewSlice[int](a, 5)
	for i := range s {
		s[i] = i * 2
	}
	fmt.Printf("Allocated slice: %v\n", s)
	fmt.Printf("Memory in use: %d bytes\n", a.SizeInUse())

	a.Reset()
	fmt.Printf("After reset, memory in use: %d bytes\n", a.SizeInUse())

	// Output:
	// Allocated buffer of size: 1024
	// Allocated int with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 1072 bytes
	// After reset, memory in use: 0 bytes
}

// Example_overflowPool shows a fixed pool handing requests past its
// capacity to an overflow allocator, and getting them back on free.
func Example_overflowPool() {
	heap := alloc.NewTracking(alloc.Default(), alloc.WithName("heap"))
	p, err := pool.NewOverflowAllocator(make([]byte, 4*32), 32, 8, 0, pool.WithOverflow(heap))
	if err != nil {
		panic(err)
	}

	var blocks [][]byte
	for range 5 {
		blocks = append(blocks, p.Allocate(32, alloc.FlagTemp))
	}
	fmt.Println("overflowed:", p.HasOverflowed())
	fmt.Println("overflow allocations:", heap.Stats().Allocations)

	p.Deallocate(blocks[4], 32)
	fmt.Println("overflow deallocations:", heap.Stats().Deallocations)

	// Output:
	// overflowed: true
	// overflow allocations: 1
	// overflow deallocations: 1
}

// Example_fixedList shows a list that refuses inserts once full.
func Example_fixedList() {
	l := fixed.NewList[string](2)
	l.PushBack("a")
	l.PushBack("b")
	fmt.Println(l.Full(), l.PushBack("c"))

	l.PopFront()
	fmt.Println(l.Full(), l.Values())

	// Output:
	// true false
	// false [b]
}

// Example_segmented shows that growth never moves earlier elements.
func Example_segmented() {
	v := segmented.NewVector[int](4)
	first := v.PushBack(10)
	for i := range 8 {
		v.PushBack(i)
	}
	fmt.Println(v.SegmentCount(), first == v.Front(), *first)

	// Output:
	// 3 true 10
}

type task struct {
	intrusive.SListNode[task]
	name string
}

// Example_intrusive links caller-owned values without allocating nodes.
func Example_intrusive() {
	a, b := &task{name: "a"}, &task{name: "b"}
	var l intrusive.SList[task, *task]
	l.PushFront(a)
	l.PushFront(b)
	fmt.Println(l.PopFront().name, l.Front().name, l.Len())

	// Output:
	// b a 1
}

// Example_tuple stores pairs column by column.
func Example_tuple() {
	v := tuple.NewVector2[int, float32]()
	v.PushBack(1, 2)
	v.PushBack(3, 4)
	fmt.Println(v.Get0(), v.Get1())

	// Output:
	// [1 3] [2 4]
}
