package tuple

import (
	"unsafe"

	"github.com/pavanmanishd/memkit/alloc"
)

type column struct {
	size  int
	align int
}

func columnOf[T any]() column {
	var zero T
	return column{size: int(unsafe.Sizeof(zero)), align: int(unsafe.Alignof(zero))}
}

// layout places n rows of each column back to back in one block, padding
// each column start to its alignment. It returns the column offsets, the
// block size and the block alignment.
func layout(n int, cols ...column) (offsets []int, total, align int) {
	align = alloc.MinAlignment
	offsets = make([]int, len(cols))
	for i, c := range cols {
		total = alloc.AlignUp(total, c.align)
		offsets[i] = total
		total += c.size * n
		align = max(align, c.align)
	}
	return offsets, total, align
}

// carve returns n elements of T starting at byte off of mem. Zero-size
// types get their own slice since they occupy no bytes.
func carve[T any](mem []byte, off, n int) []T {
	var zero T
	if n == 0 {
		return nil
	}
	if unsafe.Sizeof(zero) == 0 {
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&mem[off])), n)
}

// store hands out column blocks. A fixed store serves blocks of up to
// fixed rows from one inline buffer allocated at construction; larger
// blocks come from a, and fail when a is nil.
type store struct {
	a      alloc.Allocator
	fixed  int
	inline []byte
}

func (s *store) allows(rows int) bool { return rows <= s.fixed || s.a != nil }

func (s *store) acquire(rows, total, align int) []byte {
	if rows <= s.fixed {
		if cap(s.inline) < total {
			s.inline = alloc.Default().AllocateAligned(total, align, 0, alloc.FlagPerm)
		}
		b := s.inline[:total]
		clear(b)
		return b
	}
	if s.a == nil {
		return nil
	}
	if align > alloc.MinAlignment {
		return s.a.AllocateAligned(total, align, 0, alloc.FlagTemp)
	}
	return s.a.Allocate(total, alloc.FlagTemp)
}

func (s *store) isInline(mem []byte) bool {
	return cap(s.inline) > 0 && unsafe.SliceData(mem) == unsafe.SliceData(s.inline)
}

func (s *store) release(mem []byte) {
	if mem == nil || s.isInline(mem) {
		return
	}
	s.a.Deallocate(mem, len(mem))
}

// Option configures a tuple vector.
type Option func(*store)

// WithAllocator sets the allocator for column blocks. For a fixed vector
// it enables overflow past the fixed capacity.
func WithAllocator(a alloc.Allocator) Option {
	return func(s *store) {
		if a != nil {
			s.a = a
		}
	}
}

func newStore(fixed int, opts []Option) store {
	s := store{fixed: max(fixed, 0)}
	if fixed <= 0 {
		s.a = alloc.Default()
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func nextCap(cur, need int) int {
	return max(need, 2*cur, 4)
}
