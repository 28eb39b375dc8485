package pool

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

const noNode = -1

const minNodeSize = int(unsafe.Sizeof(uintptr(0)))

// FixedPool carves fixed-size nodes out of a caller-supplied buffer.
//
// Allocation pops the free list first and otherwise bumps a cursor through
// the never-used tail of the arena. Freed nodes are chained through a
// separate index table; their bytes are never reused as links.
//
// The zero value is an uninitialized pool; call Init before use.
type FixedPool struct {
	arena     []byte
	base      uintptr
	nodeSize  int
	nodeCount int

	links []int32 // links[i] is the free node after i
	head  int32   // first free node, or noNode
	next  int     // bump cursor: nodes at or past next were never handed out

	size int
	peak int
}

// Init binds the pool to mem. nodeSize is raised to at least pointer size
// and to a multiple of alignment. The arena start is rounded up so that
// (addr - alignmentOffset) % alignment == 0, and the remaining bytes are
// divided into whole nodes.
func (p *FixedPool) Init(mem []byte, nodeSize, alignment, alignmentOffset int) error {
	if p.Initialized() {
		return ErrInitialized
	}
	if nodeSize <= 0 {
		return errors.Wrapf(ErrNodeSize, "pool: node size %d", nodeSize)
	}
	if !alloc.IsPowerOfTwo(alignment) {
		return errors.Wrapf(ErrAlignment, "pool: alignment %d", alignment)
	}

	nodeSize = alloc.AlignUp(max(nodeSize, minNodeSize), alignment)
	pad := alloc.Padding(alloc.Addr(mem), alignment, alignmentOffset)
	if pad > len(mem) || len(mem)-pad < nodeSize {
		return errors.Wrapf(ErrBufferTooSmall,
			"pool: %d bytes for node size %d at alignment %d", len(mem), nodeSize, alignment)
	}

	count := (len(mem) - pad) / nodeSize
	p.arena = mem[pad : pad+count*nodeSize : pad+count*nodeSize]
	p.base = alloc.Addr(p.arena)
	p.nodeSize = nodeSize
	p.nodeCount = count
	p.links = make([]int32, count)
	p.head = noNode
	p.next = 0
	p.size, p.peak = 0, 0
	return nil
}

// Allocate returns one node, or nil if the pool is exhausted or was never
// initialized.
func (p *FixedPool) Allocate() []byte {
	var idx int
	switch {
	case !p.Initialized():
		return nil
	case p.head != noNode:
		idx = int(p.head)
		p.head = p.links[idx]
	case p.next < p.nodeCount:
		idx = p.next
		p.next++
	default:
		return nil
	}

	p.size++
	p.peak = max(p.peak, p.size)
	return p.Node(idx)
}

// Deallocate returns a node to the pool in O(1). b must have come from
// Allocate on this pool.
func (p *FixedPool) Deallocate(b []byte) {
	if cap(b) == 0 {
		return
	}
	idx := p.indexOf(b)
	p.links[idx] = p.head
	p.head = int32(idx)
	p.size--
}

func (p *FixedPool) indexOf(b []byte) int {
	addr := alloc.Addr(b)
	assert.That(p.Contains(b), "pool: block %#x is outside the arena", addr)
	delta := int(addr - p.base)
	assert.That(delta%p.nodeSize == 0, "pool: block %#x is not on a node boundary", addr)
	return delta / p.nodeSize
}

// Index returns the node number of b, which must lie on a node boundary
// inside the arena.
func (p *FixedPool) Index(b []byte) int { return p.indexOf(b) }

// Node returns the block of node i.
func (p *FixedPool) Node(i int) []byte {
	assert.That(i >= 0 && i < p.nodeCount, "pool: node %d out of range [0,%d)", i, p.nodeCount)
	off := i * p.nodeSize
	return p.arena[off : off+p.nodeSize : off+p.nodeSize]
}

// Contains reports whether b starts inside the pool's arena.
func (p *FixedPool) Contains(b []byte) bool {
	addr := alloc.Addr(b)
	return p.nodeCount > 0 && addr >= p.base && addr < p.base+uintptr(len(p.arena))
}

// CanAllocate reports whether the next Allocate will succeed.
func (p *FixedPool) CanAllocate() bool {
	return p.Initialized() && (p.head != noNode || p.next < p.nodeCount)
}

// Reset forgets every allocation. Blocks handed out before Reset must not be
// used or deallocated afterwards.
func (p *FixedPool) Reset() {
	p.head = noNode
	p.next = 0
	p.size = 0
}

// Initialized reports whether Init has succeeded.
func (p *FixedPool) Initialized() bool { return p.links != nil }

// NodeSize returns the effective node size after alignment adjustment.
func (p *FixedPool) NodeSize() int { return p.nodeSize }

// NodeCount returns the number of nodes the arena holds.
func (p *FixedPool) NodeCount() int { return p.nodeCount }

// CurrentSize returns the number of nodes currently allocated.
func (p *FixedPool) CurrentSize() int { return p.size }

// PeakSize returns the highest CurrentSize seen since Init.
func (p *FixedPool) PeakSize() int { return p.peak }
