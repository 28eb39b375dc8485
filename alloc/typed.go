package alloc

import (
	"math"
	"reflect"
	"sync"
	"unsafe"
)

// NewSlice allocates a zeroed slice of n elements of type T from a.
//
// Only element types free of Go pointers are carved from the allocator's
// memory: the garbage collector does not scan allocator bytes, so types
// holding pointers are allocated with make and never reach a.
// Returns nil if n <= 0 or the allocator is exhausted.
func NewSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || !PointerFree[T]() {
		return make([]T, n)
	}
	if n > math.MaxInt/size {
		return nil
	}
	total := size * n
	var b []byte
	if align := int(unsafe.Alignof(zero)); align > MinAlignment {
		b = a.AllocateAligned(total, align, 0, FlagTemp)
	} else {
		b = a.Allocate(total, FlagTemp)
	}
	if b == nil {
		return nil
	}
	s := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
	clear(s)
	return s
}

// FreeSlice returns a slice obtained from NewSlice to a. s must start at the
// same element NewSlice returned; its length may have been changed.
func FreeSlice[T any](a Allocator, s []T) {
	if cap(s) == 0 {
		return
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || !PointerFree[T]() {
		return
	}
	total := size * cap(s)
	a.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s[:cap(s)]))), total), total)
}

// New returns a pointer to a zeroed T allocated from a, or nil when a is
// exhausted.
func New[T any](a Allocator) *T {
	s := NewSlice[T](a, 1)
	if s == nil {
		return nil
	}
	return &s[0]
}

// Free returns a value obtained from New to a.
func Free[T any](a Allocator, p *T) {
	if p == nil {
		return
	}
	FreeSlice(a, unsafe.Slice(p, 1))
}

var pointerFreeCache sync.Map // reflect.Type -> bool

// PointerFree reports whether values of type T contain no Go pointers and
// can therefore live in allocator-owned bytes.
func PointerFree[T any]() bool {
	t := reflect.TypeFor[T]()
	if v, ok := pointerFreeCache.Load(t); ok {
		return v.(bool)
	}
	free := !hasPointers(t)
	pointerFreeCache.Store(t, free)
	return free
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
