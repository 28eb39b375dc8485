// Package pool implements fixed-size node pools over caller-supplied
// buffers.
//
// # Overview
//
// FixedPool is the arena: a buffer cut into equally sized nodes, served from
// an index-based free list and a bump cursor. Two allocators sit on top of
// it and satisfy alloc.Allocator:
//
//   - FixedAllocator returns nil once every node is live.
//   - OverflowAllocator falls back to another allocator (the heap by
//     default) and routes each freed block back to wherever it came from.
//
// # Usage
//
//	buf := make([]byte, 64*32)
//	a, err := pool.NewOverflowAllocator(buf, 32, 8, 0)
//	if err != nil {
//	    return err
//	}
//	b := a.Allocate(24, alloc.FlagTemp)
//	defer a.Deallocate(b, 24)
//
// # Thread Safety
//
// Pools are not goroutine-safe. Wrap an allocator with alloc.Synchronized to
// share it.
package pool
