package alloc

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Heap allocates from the Go heap. It never returns nil for a positive size:
// like the runtime allocator it either succeeds or panics. Deallocate leaves
// reclamation to the garbage collector.
//
// All Heap values are equal to each other.
type Heap struct {
	name string
}

// NewHeap returns a heap allocator with the given name.
func NewHeap(name string) *Heap {
	return &Heap{name: name}
}

func (h *Heap) Allocate(n int, _ Flags) []byte {
	if n <= 0 {
		return nil
	}
	return heapBytes(n, MinAlignment, 0)
}

func (h *Heap) AllocateAligned(n, alignment, offset int, _ Flags) []byte {
	if n <= 0 {
		return nil
	}
	checkAlignment(alignment)
	return heapBytes(n, alignment, offset)
}

func (h *Heap) Deallocate(_ []byte, _ int) {}

func (h *Heap) Name() string { return h.name }

func (h *Heap) SetName(name string) { h.name = name }

// Equal reports whether other is also a heap allocator.
func (h *Heap) Equal(other Allocator) bool {
	_, ok := other.(*Heap)
	return ok
}

// heapBytes over-allocates so the returned window can be shifted into
// alignment. Sizes are rounded to MinAlignment so the runtime never serves
// the request from its unaligned tiny allocator.
func heapBytes(n, alignment, offset int) []byte {
	extra := 0
	if alignment > MinAlignment || offset%alignment != 0 {
		extra = alignment
	}
	if n > math.MaxInt-extra-MinAlignment {
		panic(errors.Wrapf(ErrOutOfMemory, "alloc: heap request of %d bytes", n))
	}
	buf := make([]byte, AlignUp(n+extra, MinAlignment))
	pad := Padding(Addr(buf), alignment, offset)
	return buf[pad : pad+n : pad+n]
}
