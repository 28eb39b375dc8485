package safeptr

// Ptr is a weak pointer into a Registry. Copying a Ptr by assignment does
// not count as a reference; use Clone.
type Ptr[T any] struct {
	reg *Registry[T]
	h   Handle
}

// Get returns the object, or nil if it was destroyed or p is nil.
func (p *Ptr[T]) Get() *T {
	if p.reg == nil {
		return nil
	}
	return p.reg.Get(p.h)
}

// IsNil reports whether Get would return nil.
func (p *Ptr[T]) IsNil() bool { return p.Get() == nil }

// Handle returns the handle p was last pointed at.
func (p *Ptr[T]) Handle() Handle { return p.h }

// Reset points p at the object for h, dropping its previous reference.
func (p *Ptr[T]) Reset(h Handle) {
	if p.reg == nil {
		panic("safeptr: Reset on a Ptr with no registry")
	}
	if h == p.h {
		return
	}
	p.reg.release(p.h)
	p.h = Handle{}
	if p.reg.acquire(h) {
		p.h = h
	}
}

// Clear drops the reference and makes p nil.
func (p *Ptr[T]) Clear() {
	if p.reg != nil {
		p.reg.release(p.h)
	}
	p.h = Handle{}
}

// Clone returns a second reference to the same object.
func (p *Ptr[T]) Clone() Ptr[T] {
	if p.reg == nil {
		return Ptr[T]{}
	}
	return p.reg.NewPtr(p.h)
}
