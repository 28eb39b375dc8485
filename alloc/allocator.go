package alloc

import (
	"log/slog"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// DefaultName is the name given to allocators created without WithName.
const DefaultName = "memkit"

// MinAlignment is the alignment every Allocate call guarantees. Requests for
// larger alignments must go through AllocateAligned.
const MinAlignment = 8

// Flags carries allocation hints. Allocators are free to ignore them.
type Flags int

const (
	// FlagTemp marks short-lived memory.
	FlagTemp Flags = 0
	// FlagPerm marks memory expected to live for the rest of the process.
	FlagPerm Flags = 1
)

var (
	// ErrOutOfMemory is the panic value raised by allocators that cannot fail
	// gracefully, such as Heap.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadAlignment indicates an alignment that is not a power of two.
	ErrBadAlignment = errors.New("alloc: alignment must be a power of two")
)

// Allocator is the contract every memkit container allocates through.
//
// Allocate and AllocateAligned return nil when the request cannot be served;
// callers of fallible allocators must check. Deallocate must accept a nil
// slice and do nothing. The n passed to Deallocate is the size originally
// requested.
type Allocator interface {
	Allocate(n int, flags Flags) []byte
	AllocateAligned(n, alignment, offset int, flags Flags) []byte
	Deallocate(p []byte, n int)
	Name() string
	SetName(name string)
}

// Equaler is implemented by allocators with a notion of equality wider than
// identity. Two allocators are equal when each can free the other's blocks.
type Equaler interface {
	Equal(other Allocator) bool
}

// Equal reports whether blocks allocated by a may be freed by b.
func Equal(a, b Allocator) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if e, ok := a.(Equaler); ok && e.Equal(b) {
		return true
	}
	if e, ok := b.(Equaler); ok && e.Equal(a) {
		return true
	}
	return false
}

// Default returns a new heap allocator named DefaultName. There is no
// process-wide default allocator; containers take one through options.
func Default() *Heap {
	return NewHeap(DefaultName)
}

// Option configures allocators that carry a name or a logger.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName sets the allocator name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger used to report allocator events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(name string, opts []Option) options {
	o := options{name: name, logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var discardLogger = slog.New(slog.DiscardHandler)

// Addr returns the address of the first byte backing p, or 0 for a slice
// without backing storage.
func Addr(p []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(p)))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Padding returns the number of bytes to skip from addr so that the result
// satisfies (addr+pad-offset) % alignment == 0. alignment must be a power of
// two.
func Padding(addr uintptr, alignment, offset int) int {
	mask := uintptr(alignment) - 1
	mis := (addr - uintptr(offset)) & mask
	if mis == 0 {
		return 0
	}
	return int(uintptr(alignment) - mis)
}

// AlignUp rounds n up to a multiple of alignment (a power of two).
func AlignUp(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

func checkAlignment(alignment int) {
	if !IsPowerOfTwo(alignment) {
		panic(errors.Wrapf(ErrBadAlignment, "alloc: alignment %d", alignment))
	}
}
