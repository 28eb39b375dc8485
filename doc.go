// Package memkit is a collection of allocators and allocator-aware
// containers for programs that want control over where their memory comes
// from.
//
// # Packages
//
//   - alloc: the Allocator interface and its implementations (heap, arena,
//     mmap, tracking, synchronized, dummy) plus typed helpers that carve
//     pointer-free slices from allocator memory.
//   - pool: fixed-size node pools over a caller-supplied buffer, with an
//     optional overflow allocator.
//   - fixed: lists, vectors and ring buffers whose capacity is chosen at
//     construction.
//   - ring: a circular buffer over any resizable backing store.
//   - intrusive: lists and hash tables linked through nodes embedded in
//     the elements, and a reference-counted pointer.
//   - safeptr: weak pointers that become nil when their object is
//     destroyed.
//   - segmented: a vector that grows in fixed-size segments without moving
//     elements.
//   - tuple: structure-of-arrays vectors.
//   - config: TOML configuration for allocators, pools and logging.
//
// # Memory safety
//
// Allocators hand out []byte. Typed storage is only carved from allocator
// memory when the element type holds no Go pointers; other types fall back
// to make so the garbage collector sees every pointer.
//
// # Assertions
//
// Contract violations such as out-of-range indexes or foreign blocks passed
// to Deallocate panic. Build with -tags memkit_noassert to compile the
// checks out.
package memkit
