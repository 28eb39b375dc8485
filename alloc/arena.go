package alloc

import "log/slog"

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte // backing memory
	offset int    // allocation offset within buf
}

// carve bumps the chunk offset past an aligned block of n bytes.
// Returns nil if the chunk cannot hold the block.
func (c *chunk) carve(n, alignment, offset int) []byte {
	off := c.offset + Padding(Addr(c.buf)+uintptr(c.offset), alignment, offset)
	if off+n > len(c.buf) {
		return nil
	}
	c.offset = off + n
	return c.buf[off : off+n : off+n]
}

// Arena is a chunked bump allocator. Deallocate is a no-op: memory comes
// back in bulk through Reset or Release. Not goroutine-safe; wrap it with
// Synchronized for concurrent access.
type Arena struct {
	chunks    []chunk
	chunkSize int
	cur       int // index of the chunk currently served from
	name      string
	logger    *slog.Logger
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	o := buildOptions(DefaultName, opts)
	a := &Arena{chunkSize: chunkSize, name: o.name, logger: o.logger}
	a.grow(chunkSize)
	return a
}

func (a *Arena) Allocate(n int, flags Flags) []byte {
	return a.AllocateAligned(n, MinAlignment, 0, flags)
}

// AllocateAligned returns n bytes from the current chunk, moving to the next
// chunk (or growing a new one) when the current chunk is exhausted.
// Returns nil if n <= 0.
func (a *Arena) AllocateAligned(n, alignment, offset int, _ Flags) []byte {
	if n <= 0 {
		return nil
	}
	checkAlignment(alignment)

	// Fast path: current chunk has room.
	if a.cur < len(a.chunks) {
		if b := a.chunks[a.cur].carve(n, alignment, offset); b != nil {
			return b
		}
	}
	return a.allocateSlow(n, alignment, offset)
}

// allocateSlow handles allocation when the fast path fails. Chunks left
// behind by Reset are reused before new memory is requested.
func (a *Arena) allocateSlow(n, alignment, offset int) []byte {
	a.panicIfReleased()

	for a.cur+1 < len(a.chunks) {
		a.cur++
		if b := a.chunks[a.cur].carve(n, alignment, offset); b != nil {
			return b
		}
	}

	a.grow(n + alignment)
	return a.chunks[a.cur].carve(n, alignment, offset)
}

// Deallocate does nothing; arena memory is reclaimed by Reset or Release.
func (a *Arena) Deallocate([]byte, int) {}

func (a *Arena) Name() string { return a.name }

func (a *Arena) SetName(name string) { a.name = name }

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	c := &a.chunks[a.cur]
	off := AlignUp(c.offset, MinAlignment)
	if n+off > len(c.buf) {
		a.grow(n)
	}
}

// Reset rewinds every chunk but keeps them for reuse.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.cur = 0
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent allocation will panic.
func (a *Arena) Release() {
	a.chunks = nil
	a.cur = 0
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, AlignUp(size, MinAlignment))})
	a.cur = len(a.chunks) - 1
	a.logger.Debug("arena grew", "name", a.name, "chunk_bytes", size, "chunks", len(a.chunks))
}

func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("alloc: arena used after Release")
	}
}
