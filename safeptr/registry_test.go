package safeptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ name string }

func TestDestroyNullsPointers(t *testing.T) {
	reg := NewRegistry[widget]()
	w := &widget{name: "a"}
	h := reg.Register(w)
	require.True(t, reg.Alive(h))

	p := reg.NewPtr(h)
	q := p.Clone()
	assert.Same(t, w, p.Get())
	assert.Equal(t, 2, reg.RefCount(h))
	assert.False(t, reg.HasUniqueReference(h))

	q.Clear()
	assert.True(t, reg.HasUniqueReference(h))

	require.True(t, reg.Destroy(h))
	assert.True(t, p.IsNil())
	assert.Nil(t, reg.Get(h))
	assert.False(t, reg.HasReferences(h))
	assert.False(t, reg.Destroy(h))
	assert.Zero(t, reg.Len())
}

func TestSlotReuseKeepsStalePointersNil(t *testing.T) {
	reg := NewRegistry[widget]()
	old := reg.Register(&widget{name: "old"})
	stale := reg.NewPtr(old)
	reg.Destroy(old)

	fresh := reg.Register(&widget{name: "fresh"})
	assert.Equal(t, old.index, fresh.index, "destroyed slots are reused")
	assert.NotEqual(t, old, fresh)
	assert.Nil(t, stale.Get())

	p := reg.NewPtr(fresh)
	stale.Clear()
	assert.Equal(t, 1, reg.RefCount(fresh), "stale clear does not touch the new occupant")
	assert.Equal(t, "fresh", p.Get().name)
}

func TestPtrReset(t *testing.T) {
	reg := NewRegistry[widget]()
	a := reg.Register(&widget{name: "a"})
	b := reg.Register(&widget{name: "b"})

	p := reg.NewPtr(a)
	p.Reset(a)
	assert.Equal(t, 1, reg.RefCount(a))
	p.Reset(b)
	assert.Zero(t, reg.RefCount(a))
	assert.Equal(t, 1, reg.RefCount(b))
	assert.Equal(t, b, p.Handle())

	var zero Ptr[widget]
	assert.True(t, zero.IsNil())
	c := zero.Clone()
	assert.True(t, c.IsNil())
	assert.Panics(t, func() { zero.Reset(a) })

	dead := reg.NewPtr(Handle{})
	assert.True(t, dead.IsNil())
	assert.Panics(t, func() { reg.Register(nil) })
}
