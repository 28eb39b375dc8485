// Package safeptr provides weak pointers that become nil when the object
// they reference is destroyed.
//
// Objects are registered with a Registry, which hands out a Handle. Ptr
// values obtained from the registry observe Destroy: after it, every Ptr to
// the object reports nil. A Registry is not safe for concurrent use.
package safeptr

import "github.com/pavanmanishd/memkit/internal/assert"

// Handle identifies a registered object. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot[T any] struct {
	obj  *T
	gen  uint32 // odd while occupied
	refs int
}

// Registry tracks objects and the weak pointers that reference them.
type Registry[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] { return &Registry[T]{} }

func (r *Registry[T]) lookup(h Handle) *slot[T] {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil
	}
	s := &r.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s
}

// Register adds obj and returns its handle.
func (r *Registry[T]) Register(obj *T) Handle {
	assert.That(obj != nil, "safeptr: register of nil object")
	var i uint32
	if n := len(r.free); n > 0 {
		i = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot[T]{})
		i = uint32(len(r.slots) - 1)
	}
	s := &r.slots[i]
	s.gen++
	s.obj = obj
	s.refs = 0
	r.live++
	return Handle{index: i, gen: s.gen}
}

// Destroy unregisters the object. Every Ptr to it becomes nil. It reports
// whether h was live.
func (r *Registry[T]) Destroy(h Handle) bool {
	s := r.lookup(h)
	if s == nil {
		return false
	}
	s.obj = nil
	s.refs = 0
	s.gen++
	r.free = append(r.free, h.index)
	r.live--
	return true
}

// Get returns the object for h, or nil once it has been destroyed.
func (r *Registry[T]) Get(h Handle) *T {
	if s := r.lookup(h); s != nil {
		return s.obj
	}
	return nil
}

// Alive reports whether h refers to a registered object.
func (r *Registry[T]) Alive(h Handle) bool { return r.lookup(h) != nil }

// Len returns the number of registered objects.
func (r *Registry[T]) Len() int { return r.live }

// RefCount returns the number of non-nil Ptrs to the object.
func (r *Registry[T]) RefCount(h Handle) int {
	if s := r.lookup(h); s != nil {
		return s.refs
	}
	return 0
}

// HasReferences reports whether any Ptr references the object.
func (r *Registry[T]) HasReferences(h Handle) bool { return r.RefCount(h) > 0 }

// HasUniqueReference reports whether exactly one Ptr references the object.
func (r *Registry[T]) HasUniqueReference(h Handle) bool { return r.RefCount(h) == 1 }

// NewPtr returns a weak pointer to the object for h. A dead h yields a nil
// Ptr.
func (r *Registry[T]) NewPtr(h Handle) Ptr[T] {
	p := Ptr[T]{reg: r}
	p.Reset(h)
	return p
}

func (r *Registry[T]) acquire(h Handle) bool {
	s := r.lookup(h)
	if s == nil {
		return false
	}
	s.refs++
	return true
}

func (r *Registry[T]) release(h Handle) {
	if s := r.lookup(h); s != nil {
		s.refs--
	}
}
