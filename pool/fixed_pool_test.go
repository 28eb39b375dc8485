package pool

import (
	"math/rand/v2"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/memkit/alloc"
)

func newPool(t *testing.T, nodes, nodeSize int) *FixedPool {
	t.Helper()
	var p FixedPool
	require.NoError(t, p.Init(make([]byte, nodes*nodeSize), nodeSize, 8, 0))
	return &p
}

func TestFixedPoolInitErrors(t *testing.T) {
	tests := []struct {
		name      string
		mem       int
		nodeSize  int
		alignment int
		want      error
	}{
		{"zero node size", 64, 0, 8, ErrNodeSize},
		{"negative node size", 64, -4, 8, ErrNodeSize},
		{"bad alignment", 64, 16, 12, ErrAlignment},
		{"zero alignment", 64, 16, 0, ErrAlignment},
		{"empty buffer", 0, 16, 8, ErrBufferTooSmall},
		{"buffer below one node", 15, 16, 8, ErrBufferTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p FixedPool
			err := p.Init(make([]byte, tt.mem), tt.nodeSize, tt.alignment, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.False(t, p.Initialized())
		})
	}
}

func TestFixedPoolDoubleInit(t *testing.T) {
	p := newPool(t, 4, 16)
	err := p.Init(make([]byte, 64), 16, 8, 0)
	assert.ErrorIs(t, err, ErrInitialized)
}

func TestFixedPoolUninitialized(t *testing.T) {
	var p FixedPool
	assert.False(t, p.Initialized())
	assert.False(t, p.CanAllocate())
	assert.Nil(t, p.Allocate())
}

func TestFixedPoolNodeSizeAdjustment(t *testing.T) {
	var p FixedPool
	require.NoError(t, p.Init(make([]byte, 256), 1, 1, 0))
	assert.Equal(t, minNodeSize, p.NodeSize(), "nodes hold at least a pointer")

	var q FixedPool
	require.NoError(t, q.Init(make([]byte, 256), 20, 16, 0))
	assert.Equal(t, 32, q.NodeSize(), "node size is a multiple of alignment")
	assert.Equal(t, 256/32, q.NodeCount())
}

func TestFixedPoolAlignsArena(t *testing.T) {
	mem := make([]byte, 1024)
	var p FixedPool
	// Start one byte in so the arena has to be shifted.
	require.NoError(t, p.Init(mem[1:], 64, 64, 0))
	require.Positive(t, p.NodeCount())
	assert.LessOrEqual(t, p.NodeCount(), (1024-1)/64)

	for b := p.Allocate(); b != nil; b = p.Allocate() {
		assert.Zero(t, alloc.Addr(b)%64)
	}

	var q FixedPool
	require.NoError(t, q.Init(mem, 32, 32, 8))
	b := q.Allocate()
	assert.Zero(t, (alloc.Addr(b)-8)%32)
}

func TestFixedPoolExhaustsAfterN(t *testing.T) {
	const n = 10
	p := newPool(t, n, 32)
	require.Equal(t, n, p.NodeCount())

	for i := range n {
		require.True(t, p.CanAllocate())
		require.NotNil(t, p.Allocate(), "allocation %d", i)
	}
	assert.False(t, p.CanAllocate())
	assert.Nil(t, p.Allocate(), "allocation n+1 must fail")
	assert.Equal(t, n, p.CurrentSize())
	assert.Equal(t, n, p.PeakSize())
}

func TestFixedPoolReusesFreedNodes(t *testing.T) {
	p := newPool(t, 2, 16)
	a := p.Allocate()
	b := p.Allocate()
	require.Nil(t, p.Allocate())

	p.Deallocate(a)
	assert.True(t, p.CanAllocate())
	c := p.Allocate()
	assert.Equal(t, alloc.Addr(a), alloc.Addr(c), "free list is LIFO")

	p.Deallocate(b)
	p.Deallocate(c)
	assert.Zero(t, p.CurrentSize())
	assert.Equal(t, 2, p.PeakSize())
}

func TestFixedPoolNoAliasing(t *testing.T) {
	const n = 16
	p := newPool(t, n, 24)
	rng := rand.New(rand.NewPCG(1, 2))
	live := map[uintptr][]byte{}

	for step := range 5000 {
		if len(live) < n && (len(live) == 0 || rng.IntN(2) == 0) {
			b := p.Allocate()
			require.NotNil(t, b, "step %d: pool refused with %d live", step, len(live))
			addr := alloc.Addr(b)
			_, dup := live[addr]
			require.False(t, dup, "step %d: block %#x handed out twice", step, addr)
			b[0] = byte(step)
			live[addr] = b
			continue
		}
		for addr, b := range live {
			p.Deallocate(b)
			delete(live, addr)
			break
		}
	}
	assert.Equal(t, len(live), p.CurrentSize())
	assert.LessOrEqual(t, p.PeakSize(), n)
}

func TestFixedPoolContains(t *testing.T) {
	p := newPool(t, 4, 16)
	b := p.Allocate()
	assert.True(t, p.Contains(b))
	assert.False(t, p.Contains(make([]byte, 16)))
	assert.False(t, p.Contains(nil))
}

func TestFixedPoolIndex(t *testing.T) {
	p := newPool(t, 4, 16)
	for want := range 4 {
		b := p.Allocate()
		require.NotNil(t, b)
		assert.Equal(t, want, p.Index(b))
		assert.Equal(t, alloc.Addr(b), alloc.Addr(p.Node(want)))
	}
	p.Deallocate(p.Node(2))
	assert.Equal(t, 2, p.Index(p.Allocate()), "freed node is handed out first")
	assert.Panics(t, func() { p.Node(4) })
}

func TestFixedPoolDeallocateForeignBlockAsserts(t *testing.T) {
	p := newPool(t, 4, 16)
	assert.Panics(t, func() { p.Deallocate(make([]byte, 16)) })

	b := p.Allocate()
	assert.Panics(t, func() { p.Deallocate(b[4:]) }, "mid-node pointer")
}

func TestFixedPoolReset(t *testing.T) {
	p := newPool(t, 3, 16)
	for range 3 {
		p.Allocate()
	}
	p.Reset()
	assert.Zero(t, p.CurrentSize())
	for range 3 {
		assert.NotNil(t, p.Allocate())
	}
	assert.Nil(t, p.Allocate())
}

func BenchmarkFixedPool(b *testing.B) {
	var p FixedPool
	if err := p.Init(make([]byte, 1024*64), 64, 8, 0); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		blk := p.Allocate()
		p.Deallocate(blk)
	}
}
