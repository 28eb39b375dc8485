package alloc

// Tracking wraps another allocator and counts what passes through it.
type Tracking struct {
	inner Allocator
	name  string
	stats Stats
}

// NewTracking wraps inner. The wrapper takes inner's name unless WithName
// is given.
func NewTracking(inner Allocator, opts ...Option) *Tracking {
	o := buildOptions(inner.Name(), opts)
	return &Tracking{inner: inner, name: o.name}
}

func (t *Tracking) Allocate(n int, flags Flags) []byte {
	return t.record(n, t.inner.Allocate(n, flags))
}

func (t *Tracking) AllocateAligned(n, alignment, offset int, flags Flags) []byte {
	return t.record(n, t.inner.AllocateAligned(n, alignment, offset, flags))
}

func (t *Tracking) record(n int, p []byte) []byte {
	if p == nil {
		if n > 0 {
			t.stats.FailedAllocations++
		}
		return nil
	}
	s := &t.stats
	s.Allocations++
	s.BytesInUse += n
	s.LiveBlocks++
	s.PeakBytes = max(s.PeakBytes, s.BytesInUse)
	s.PeakBlocks = max(s.PeakBlocks, s.LiveBlocks)
	return p
}

func (t *Tracking) Deallocate(p []byte, n int) {
	if p == nil {
		return
	}
	t.stats.Deallocations++
	t.stats.BytesInUse -= n
	t.stats.LiveBlocks--
	t.inner.Deallocate(p, n)
}

func (t *Tracking) Name() string { return t.name }

func (t *Tracking) SetName(name string) { t.name = name }

// Equal reports whether other frees into the same underlying allocator.
func (t *Tracking) Equal(other Allocator) bool {
	if o, ok := other.(*Tracking); ok {
		return Equal(t.inner, o.inner)
	}
	return Equal(t.inner, other)
}

// Inner returns the wrapped allocator.
func (t *Tracking) Inner() Allocator { return t.inner }

// Stats returns a snapshot of the counters.
func (t *Tracking) Stats() Stats { return t.stats }

// ResetStats zeroes every counter. Blocks still live are forgotten.
func (t *Tracking) ResetStats() { t.stats = Stats{} }
