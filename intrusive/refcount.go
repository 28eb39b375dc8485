package intrusive

import "sync/atomic"

// RefCount is an embeddable atomic reference count. Its Release only
// decrements; types that free resources at zero define their own Release
// around Dec.
type RefCount struct {
	n atomic.Int32
}

// AddRef increments the count.
func (r *RefCount) AddRef() { r.n.Add(1) }

// Release decrements the count.
func (r *RefCount) Release() { r.Dec() }

// Dec decrements the count and returns the new value.
func (r *RefCount) Dec() int32 {
	n := r.n.Add(-1)
	if n < 0 {
		panic("intrusive: reference count below zero")
	}
	return n
}

// Count returns the current count.
func (r *RefCount) Count() int32 { return r.n.Load() }
