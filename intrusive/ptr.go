package intrusive

// RefCounter is implemented by types that manage their own lifetime.
type RefCounter interface {
	AddRef()
	Release()
}

// RefElem is satisfied by *T when *T implements RefCounter.
type RefElem[T any] interface {
	*T
	RefCounter
}

// Ptr holds a counted reference to a T. The zero value is a nil pointer.
// A Ptr must not be copied by assignment; use Clone or Move.
type Ptr[T any, P RefElem[T]] struct {
	p *T
}

// NewPtr returns a Ptr to p, adding a reference.
func NewPtr[T any, P RefElem[T]](p *T) Ptr[T, P] {
	if p != nil {
		P(p).AddRef()
	}
	return Ptr[T, P]{p: p}
}

// AttachPtr returns a Ptr that adopts an existing reference to p.
func AttachPtr[T any, P RefElem[T]](p *T) Ptr[T, P] {
	return Ptr[T, P]{p: p}
}

// Get returns the pointee, or nil.
func (r *Ptr[T, P]) Get() *T { return r.p }

// IsNil reports whether r points at nothing.
func (r *Ptr[T, P]) IsNil() bool { return r.p == nil }

// Clone returns a second Ptr to the same pointee, adding a reference.
func (r *Ptr[T, P]) Clone() Ptr[T, P] { return NewPtr[T, P](r.p) }

// Move transfers the reference to the returned Ptr, leaving r nil.
func (r *Ptr[T, P]) Move() Ptr[T, P] {
	p := r.p
	r.p = nil
	return Ptr[T, P]{p: p}
}

// Reset points r at p. The new pointee gains a reference before the old
// one is released, so resetting to the current pointee is safe.
func (r *Ptr[T, P]) Reset(p *T) {
	if p != nil {
		P(p).AddRef()
	}
	old := r.p
	r.p = p
	if old != nil {
		P(old).Release()
	}
}

// Attach releases the current pointee and adopts an existing reference to
// p.
func (r *Ptr[T, P]) Attach(p *T) {
	old := r.p
	r.p = p
	if old != nil {
		P(old).Release()
	}
}

// Detach gives up the reference without releasing it and returns the
// pointee.
func (r *Ptr[T, P]) Detach() *T {
	p := r.p
	r.p = nil
	return p
}

// Clear releases the pointee and sets r to nil.
func (r *Ptr[T, P]) Clear() { r.Attach(nil) }

// Swap exchanges the pointees of r and other.
func (r *Ptr[T, P]) Swap(other *Ptr[T, P]) { r.p, other.p = other.p, r.p }
