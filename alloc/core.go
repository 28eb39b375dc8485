package alloc

// CoreAllocator is the dynamically dispatched allocator interface used to
// interoperate with allocators supplied from outside memkit. Each call
// carries the requesting allocator's name.
type CoreAllocator interface {
	Alloc(size int, name string, flags Flags) []byte
	AllocAligned(size int, name string, flags Flags, alignment, offset int) []byte
	Free(p []byte, size int)
}

// CoreAdapter presents a CoreAllocator as an Allocator.
type CoreAdapter struct {
	core CoreAllocator
	name string
}

// NewCoreAdapter wraps core. The core value must be comparable (usually a
// pointer) for Equal to work.
func NewCoreAdapter(core CoreAllocator, opts ...Option) *CoreAdapter {
	o := buildOptions(DefaultName, opts)
	return &CoreAdapter{core: core, name: o.name}
}

func (c *CoreAdapter) Allocate(n int, flags Flags) []byte {
	if n <= 0 {
		return nil
	}
	return c.core.Alloc(n, c.name, flags)
}

func (c *CoreAdapter) AllocateAligned(n, alignment, offset int, flags Flags) []byte {
	if n <= 0 {
		return nil
	}
	checkAlignment(alignment)
	return c.core.AllocAligned(n, c.name, flags, alignment, offset)
}

func (c *CoreAdapter) Deallocate(p []byte, n int) {
	if p == nil {
		return
	}
	c.core.Free(p, n)
}

func (c *CoreAdapter) Name() string { return c.name }

func (c *CoreAdapter) SetName(name string) { c.name = name }

// Core returns the wrapped CoreAllocator.
func (c *CoreAdapter) Core() CoreAllocator { return c.core }

// Equal reports whether other adapts the same CoreAllocator.
func (c *CoreAdapter) Equal(other Allocator) bool {
	o, ok := other.(*CoreAdapter)
	return ok && o.core == c.core
}

// ToCore exposes an Allocator through the CoreAllocator interface. The name
// argument of each call is ignored; the allocator's own name applies.
func ToCore(a Allocator) CoreAllocator {
	return coreView{a}
}

type coreView struct {
	a Allocator
}

func (v coreView) Alloc(size int, _ string, flags Flags) []byte {
	return v.a.Allocate(size, flags)
}

func (v coreView) AllocAligned(size int, _ string, flags Flags, alignment, offset int) []byte {
	return v.a.AllocateAligned(size, alignment, offset, flags)
}

func (v coreView) Free(p []byte, size int) {
	v.a.Deallocate(p, size)
}
