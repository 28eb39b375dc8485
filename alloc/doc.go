// Package alloc defines the allocator contract shared by every memkit
// container, plus the stock allocators.
//
// # Contract
//
// An Allocator hands out byte blocks:
//
//	p := a.Allocate(n, alloc.FlagTemp)                 // MinAlignment-aligned
//	q := a.AllocateAligned(n, 64, 0, alloc.FlagTemp)   // (addr-offset)%64 == 0
//	a.Deallocate(p, n)
//
// Allocate may return nil; fallible allocators (fixed pools, Dummy, Mmap)
// document when. Deallocate(nil, n) is always a no-op.
//
// # Allocators
//
//   - Heap: the Go heap. The default for every container.
//   - Dummy: never allocates.
//   - Mmap: one anonymous mapping per block.
//   - Arena: chunked bump allocator with bulk Reset/Release.
//   - CoreAdapter: adapts an externally supplied CoreAllocator.
//   - Tracking: counts allocations flowing through another allocator.
//   - Sync: mutex wrapper for sharing an allocator between goroutines.
//
// # Typed memory
//
// NewSlice, FreeSlice, New and Free place typed values in allocator memory.
// Types containing Go pointers cannot live in raw bytes the collector does
// not scan; for those the helpers fall back to make and leave the allocator
// untouched. PointerFree reports which case applies.
//
// # Thread Safety
//
// Allocators are not goroutine-safe unless wrapped with Synchronized.
package alloc
