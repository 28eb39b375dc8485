package fixed

import "github.com/pavanmanishd/memkit/ring"

// NewRingBuffer returns a ring buffer holding up to n elements, stored in a
// fixed Vector. The vector reserves one sentinel slot, so its storage is
// n+1 elements. With WithOverflow, SetCapacity can grow past n.
func NewRingBuffer[T any](n int, opts ...Option) *ring.Buffer[T] {
	n = max(n, 0)
	v := NewVector[T](n+1, opts...)
	v.Resize(n + 1)
	return ring.NewWith[T](v)
}
