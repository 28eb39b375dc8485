package fixed

import (
	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
	"github.com/pavanmanishd/memkit/pool"
)

// Handle addresses a node in a NodePool. Handles below the pool capacity
// are arena slots; higher handles are overflow nodes.
type Handle int32

// Nil is the handle of no node.
const Nil Handle = -1

// slotSize is the pool node size used for slot bookkeeping. A slot's
// bytes are never read; only its index matters.
const slotSize = alloc.MinAlignment

// NodePool holds a fixed number of T nodes allocated once at construction.
// Which arena slots are free is tracked by a pool.FixedPool with one node per
// slot; a slot's node index is its handle. When an overflow allocator is
// configured, requests beyond the arena are served one node at a time from
// it.
type NodePool[T any] struct {
	nodes []T
	slots pool.FixedPool // uninitialized when the capacity is zero

	overflow  alloc.Allocator // nil when overflow is disabled
	spill     [][]T           // overflow nodes, indexed by handle - capacity
	spillFree []Handle
	spillLive int

	peak int
}

// NewNodePool returns a pool of n nodes. A nil overflow allocator disables
// overflow.
func NewNodePool[T any](n int, overflow alloc.Allocator) *NodePool[T] {
	n = max(n, 0)
	p := &NodePool[T]{
		nodes:    make([]T, n),
		overflow: overflow,
	}
	if n > 0 {
		mem := alloc.Default().Allocate(n*slotSize, alloc.FlagPerm)
		err := p.slots.Init(mem, slotSize, alloc.MinAlignment, 0)
		assert.That(err == nil, "fixed: slot table for %d nodes: %v", n, err)
	}
	return p
}

// Allocate returns the handle of a zeroed node. It fails when the arena is
// exhausted and overflow is disabled or the overflow allocator is out of
// memory.
func (p *NodePool[T]) Allocate() (Handle, bool) {
	var h Handle
	if slot := p.slots.Allocate(); slot != nil {
		h = Handle(p.slots.Index(slot))
	} else {
		var ok bool
		if h, ok = p.allocateSpill(); !ok {
			return Nil, false
		}
		p.spillLive++
	}
	p.peak = max(p.peak, p.Len())
	return h, true
}

func (p *NodePool[T]) allocateSpill() (Handle, bool) {
	if p.overflow == nil {
		return Nil, false
	}
	node := alloc.NewSlice[T](p.overflow, 1)
	if node == nil {
		return Nil, false
	}
	if n := len(p.spillFree); n > 0 {
		h := p.spillFree[n-1]
		p.spillFree = p.spillFree[:n-1]
		p.spill[int(h)-len(p.nodes)] = node
		return h, true
	}
	p.spill = append(p.spill, node)
	return Handle(len(p.nodes) + len(p.spill) - 1), true
}

// Deallocate releases h. Arena slots return to the free list; overflow
// nodes return to the overflow allocator.
func (p *NodePool[T]) Deallocate(h Handle) {
	assert.That(p.valid(h), "fixed: deallocate of invalid handle %d", h)
	if int(h) < len(p.nodes) {
		var zero T
		p.nodes[h] = zero
		p.slots.Deallocate(p.slots.Node(int(h)))
		return
	}
	p.spillLive--
	i := int(h) - len(p.nodes)
	node := p.spill[i]
	clear(node)
	alloc.FreeSlice(p.overflow, node)
	p.spill[i] = nil
	p.spillFree = append(p.spillFree, h)
}

// At returns the node for h.
func (p *NodePool[T]) At(h Handle) *T {
	if int(h) < len(p.nodes) {
		return &p.nodes[h]
	}
	return &p.spill[int(h)-len(p.nodes)][0]
}

func (p *NodePool[T]) valid(h Handle) bool {
	if h < 0 {
		return false
	}
	if int(h) < len(p.nodes) {
		return true
	}
	i := int(h) - len(p.nodes)
	return i < len(p.spill) && p.spill[i] != nil
}

// Full reports whether the arena has no free slot, meaning the next
// Allocate either fails or overflows.
func (p *NodePool[T]) Full() bool { return !p.slots.CanAllocate() }

// CanOverflow reports whether an overflow allocator is configured.
func (p *NodePool[T]) CanOverflow() bool { return p.overflow != nil }

// HasOverflowed reports whether more nodes than the arena holds were ever
// live at once.
func (p *NodePool[T]) HasOverflowed() bool { return p.peak > p.slots.NodeCount() }

// Capacity returns the number of arena slots.
func (p *NodePool[T]) Capacity() int { return len(p.nodes) }

// Len returns the number of live nodes.
func (p *NodePool[T]) Len() int { return p.slots.CurrentSize() + p.spillLive }

// Peak returns the highest Len seen. It survives Reset.
func (p *NodePool[T]) Peak() int { return p.peak }

// Overflow returns the overflow allocator, or nil.
func (p *NodePool[T]) Overflow() alloc.Allocator { return p.overflow }

// Reset releases every node, returning overflow nodes to their allocator.
func (p *NodePool[T]) Reset() {
	clear(p.nodes)
	for _, node := range p.spill {
		if node != nil {
			clear(node)
			alloc.FreeSlice(p.overflow, node)
		}
	}
	p.spill, p.spillFree = nil, nil
	p.spillLive = 0
	p.slots.Reset()
}
