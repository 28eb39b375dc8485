package pool

import (
	"github.com/pavanmanishd/memkit/alloc"
	"github.com/pavanmanishd/memkit/internal/assert"
)

// FixedAllocator serves node-sized blocks from a FixedPool and returns nil
// once the pool is exhausted.
type FixedAllocator struct {
	pool      FixedPool
	alignment int
	name      string
}

var _ alloc.Allocator = (*FixedAllocator)(nil)

// NewFixedAllocator binds a pool to mem. See FixedPool.Init for the layout
// rules.
func NewFixedAllocator(mem []byte, nodeSize, alignment, alignmentOffset int, opts ...Option) (*FixedAllocator, error) {
	o := buildOptions(opts)
	a := &FixedAllocator{alignment: alignment, name: o.name}
	if err := a.pool.Init(mem, nodeSize, alignment, alignmentOffset); err != nil {
		return nil, err
	}
	return a, nil
}

// Allocate returns a node of which the first n bytes are usable, or nil when
// the pool is exhausted. n must not exceed NodeSize.
func (a *FixedAllocator) Allocate(n int, _ alloc.Flags) []byte {
	if n <= 0 {
		return nil
	}
	assert.That(n <= a.pool.NodeSize(), "pool: %s: request of %d bytes exceeds node size %d",
		a.name, n, a.pool.NodeSize())
	b := a.pool.Allocate()
	if b == nil {
		return nil
	}
	return b[:n]
}

// AllocateAligned behaves like Allocate. Alignment is fixed when the pool is
// initialized, so alignment may not exceed it.
func (a *FixedAllocator) AllocateAligned(n, alignment, _ int, flags alloc.Flags) []byte {
	assert.That(alignment <= a.alignment, "pool: %s: alignment %d exceeds pool alignment %d",
		a.name, alignment, a.alignment)
	return a.Allocate(n, flags)
}

func (a *FixedAllocator) Deallocate(p []byte, _ int) {
	if p == nil {
		return
	}
	a.pool.Deallocate(p)
}

func (a *FixedAllocator) Name() string { return a.name }

func (a *FixedAllocator) SetName(name string) { a.name = name }

// CanAllocate reports whether the next Allocate will succeed.
func (a *FixedAllocator) CanAllocate() bool { return a.pool.CanAllocate() }

// Pool exposes the underlying pool for size queries.
func (a *FixedAllocator) Pool() *FixedPool { return &a.pool }

// Reset forgets every allocation.
func (a *FixedAllocator) Reset() { a.pool.Reset() }
