package pool

import (
	"log/slog"
	"unsafe"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

// OverflowAllocator serves node-sized blocks from a FixedPool and falls back
// to an overflow allocator once the pool is exhausted. Blocks are routed back
// on Deallocate by address: blocks inside the arena return to the pool's
// free list and everything else goes to the overflow allocator.
type OverflowAllocator struct {
	pool            FixedPool
	alignment       int
	alignmentOffset int
	overflow        alloc.Allocator
	name            string
	logger          *slog.Logger

	size          int // live blocks, pooled and overflow
	peak          int
	overflowLive  int
	overflowTotal int
}

var _ alloc.Allocator = (*OverflowAllocator)(nil)

// NewOverflowAllocator binds a pool to mem. The overflow allocator is given
// with WithOverflow and defaults to the heap.
func NewOverflowAllocator(mem []byte, nodeSize, alignment, alignmentOffset int, opts ...Option) (*OverflowAllocator, error) {
	o := buildOptions(opts)
	a := &OverflowAllocator{
		alignment:       alignment,
		alignmentOffset: alignmentOffset,
		overflow:        o.overflow,
		name:            o.name,
		logger:          o.logger,
	}
	if err := a.pool.Init(mem, nodeSize, alignment, alignmentOffset); err != nil {
		return nil, err
	}
	return a, nil
}

// Allocate returns a node of which the first n bytes are usable. It returns
// nil only when the pool is exhausted and the overflow allocator fails.
func (a *OverflowAllocator) Allocate(n int, flags alloc.Flags) []byte {
	if n <= 0 {
		return nil
	}
	nodeSize := a.pool.NodeSize()
	assert.That(n <= nodeSize, "pool: %s: request of %d bytes exceeds node size %d", a.name, n, nodeSize)

	b := a.pool.Allocate()
	if b == nil {
		if b = a.allocateOverflow(nodeSize, flags); b == nil {
			return nil
		}
	}

	a.size++
	a.peak = max(a.peak, a.size)
	return b[:n]
}

func (a *OverflowAllocator) allocateOverflow(nodeSize int, flags alloc.Flags) []byte {
	var b []byte
	if a.alignment > alloc.MinAlignment || a.alignmentOffset != 0 {
		b = a.overflow.AllocateAligned(nodeSize, a.alignment, a.alignmentOffset, flags)
	} else {
		b = a.overflow.Allocate(nodeSize, flags)
	}
	if b == nil {
		return nil
	}
	if a.overflowTotal == 0 {
		a.logger.Debug("fixed pool overflowed",
			"name", a.name, "nodes", a.pool.NodeCount(), "overflow", a.overflow.Name())
	}
	a.overflowLive++
	a.overflowTotal++
	return b
}

// AllocateAligned behaves like Allocate; the pool's alignment applies.
func (a *OverflowAllocator) AllocateAligned(n, alignment, _ int, flags alloc.Flags) []byte {
	assert.That(alignment <= a.alignment, "pool: %s: alignment %d exceeds pool alignment %d",
		a.name, alignment, a.alignment)
	return a.Allocate(n, flags)
}

// Deallocate accepts any prefix of a block returned by Allocate; its
// capacity may be shorter than the node.
func (a *OverflowAllocator) Deallocate(p []byte, _ int) {
	if p == nil {
		return
	}
	a.size--
	if a.pool.Contains(p) {
		a.pool.Deallocate(p)
		return
	}
	a.overflowLive--
	nodeSize := a.pool.NodeSize()
	a.overflow.Deallocate(unsafe.Slice(unsafe.SliceData(p), nodeSize), nodeSize)
}

func (a *OverflowAllocator) Name() string { return a.name }

func (a *OverflowAllocator) SetName(name string) { a.name = name }

// Overflow returns the fallback allocator.
func (a *OverflowAllocator) Overflow() alloc.Allocator { return a.overflow }

// SetOverflow replaces the fallback allocator. No overflow block
// may be live.
func (a *OverflowAllocator) SetOverflow(o alloc.Allocator) {
	assert.That(a.overflowLive == 0, "pool: %s: replacing overflow allocator with %d live blocks",
		a.name, a.overflowLive)
	a.overflow = o
}

// CanAllocate reports whether the next Allocate is served from the pool.
func (a *OverflowAllocator) CanAllocate() bool { return a.pool.CanAllocate() }

// HasOverflowed reports whether more blocks than the pool holds were ever
// live at once.
func (a *OverflowAllocator) HasOverflowed() bool { return a.peak > a.pool.NodeCount() }

// CurrentSize returns the number of live blocks, pooled and overflow.
func (a *OverflowAllocator) CurrentSize() int { return a.size }

// PeakSize returns the highest CurrentSize seen.
func (a *OverflowAllocator) PeakSize() int { return a.peak }

// OverflowCount returns the number of live blocks served by the overflow
// allocator.
func (a *OverflowAllocator) OverflowCount() int { return a.overflowLive }

// Pool exposes the underlying pool.
func (a *OverflowAllocator) Pool() *FixedPool { return &a.pool }
