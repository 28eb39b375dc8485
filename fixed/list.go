package fixed

import (
	"iter"

	"github.com/pavanmanishd/memkit/internal/assert"
)

type listNode[T any] struct {
	value      T
	prev, next Handle
}

// List is a doubly linked list whose nodes live in a NodePool of fixed
// capacity. Positions are node handles; Nil is the end position.
type List[T any] struct {
	pool *NodePool[listNode[T]]
	head Handle
	tail Handle
	n    int
	cfg  config
}

// NewList returns an empty list holding up to n elements, or more with
// WithOverflow.
func NewList[T any](n int, opts ...Option) *List[T] {
	cfg := buildConfig(opts)
	return &List[T]{
		pool: NewNodePool[listNode[T]](n, cfg.overflow),
		head: Nil,
		tail: Nil,
		cfg:  cfg,
	}
}

func (l *List[T]) node(h Handle) *listNode[T] { return l.pool.At(h) }

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.n }

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool { return l.n == 0 }

// MaxSize returns the fixed capacity.
func (l *List[T]) MaxSize() int { return l.pool.Capacity() }

// Full reports whether the fixed storage has no free node. With overflow
// enabled a full list still accepts inserts; they are served by the
// overflow allocator.
func (l *List[T]) Full() bool { return l.pool.Full() }

// HasOverflowed reports whether the list ever held more than MaxSize
// elements.
func (l *List[T]) HasOverflowed() bool { return l.pool.HasOverflowed() }

// CanOverflow reports whether the list may grow past MaxSize.
func (l *List[T]) CanOverflow() bool { return l.pool.CanOverflow() }

// Name returns the container name.
func (l *List[T]) Name() string { return l.cfg.name }

// Front returns the first handle, or Nil.
func (l *List[T]) Front() Handle { return l.head }

// Back returns the last handle, or Nil.
func (l *List[T]) Back() Handle { return l.tail }

// Next returns the handle after h, or Nil.
func (l *List[T]) Next(h Handle) Handle { return l.node(h).next }

// Prev returns the handle before h, or Nil.
func (l *List[T]) Prev(h Handle) Handle { return l.node(h).prev }

// Value returns a pointer to the element at h.
func (l *List[T]) Value(h Handle) *T {
	assert.That(h != Nil, "fixed: dereference of Nil handle")
	return &l.node(h).value
}

// FrontValue returns the first element.
func (l *List[T]) FrontValue() (T, bool) {
	if l.head == Nil {
		var zero T
		return zero, false
	}
	return l.node(l.head).value, true
}

// BackValue returns the last element.
func (l *List[T]) BackValue() (T, bool) {
	if l.tail == Nil {
		var zero T
		return zero, false
	}
	return l.node(l.tail).value, true
}

// InsertBefore inserts v before pos (Nil appends) and returns its handle.
// It returns Nil, false when no node can be allocated.
func (l *List[T]) InsertBefore(pos Handle, v T) (Handle, bool) {
	h, ok := l.pool.Allocate()
	if !ok {
		return Nil, false
	}
	n := l.node(h)
	n.value = v
	n.next = pos

	if pos == Nil {
		n.prev = l.tail
		l.tail = h
	} else {
		p := l.node(pos)
		n.prev = p.prev
		p.prev = h
	}
	if n.prev == Nil {
		l.head = h
	} else {
		l.node(n.prev).next = h
	}
	l.n++
	return h, true
}

// InsertAfter inserts v after pos (Nil prepends) and returns its handle.
func (l *List[T]) InsertAfter(pos Handle, v T) (Handle, bool) {
	if pos == Nil {
		return l.InsertBefore(l.head, v)
	}
	return l.InsertBefore(l.node(pos).next, v)
}

// PushFront prepends v. It returns false when the list cannot grow.
func (l *List[T]) PushFront(v T) bool {
	_, ok := l.InsertBefore(l.head, v)
	return ok
}

// PushBack appends v. It returns false when the list cannot grow.
func (l *List[T]) PushBack(v T) bool {
	_, ok := l.InsertBefore(Nil, v)
	return ok
}

// Erase removes the element at h and returns the handle that followed it.
func (l *List[T]) Erase(h Handle) Handle {
	assert.That(h != Nil, "fixed: erase of Nil handle")
	n := l.node(h)
	prev, next := n.prev, n.next
	if prev == Nil {
		l.head = next
	} else {
		l.node(prev).next = next
	}
	if next == Nil {
		l.tail = prev
	} else {
		l.node(next).prev = prev
	}
	l.pool.Deallocate(h)
	l.n--
	return next
}

// PopFront removes and returns the first element.
func (l *List[T]) PopFront() (T, bool) {
	v, ok := l.FrontValue()
	if ok {
		l.Erase(l.head)
	}
	return v, ok
}

// PopBack removes and returns the last element.
func (l *List[T]) PopBack() (T, bool) {
	v, ok := l.BackValue()
	if ok {
		l.Erase(l.tail)
	}
	return v, ok
}

// RemoveFunc erases every element for which fn returns true and returns
// how many were removed.
func (l *List[T]) RemoveFunc(fn func(T) bool) int {
	removed := 0
	for h := l.head; h != Nil; {
		if fn(l.node(h).value) {
			h = l.Erase(h)
			removed++
			continue
		}
		h = l.node(h).next
	}
	return removed
}

// Reverse reverses the list in place by relinking.
func (l *List[T]) Reverse() {
	for h := l.head; h != Nil; {
		n := l.node(h)
		n.prev, n.next = n.next, n.prev
		h = n.prev
	}
	l.head, l.tail = l.tail, l.head
}

// Clear removes every element.
func (l *List[T]) Clear() {
	l.pool.Reset()
	l.head, l.tail = Nil, Nil
	l.n = 0
}

// Assign replaces the contents with vals. It returns false, leaving the
// elements that fit, when the list cannot hold them all.
func (l *List[T]) Assign(vals ...T) bool {
	l.Clear()
	for _, v := range vals {
		if !l.PushBack(v) {
			return false
		}
	}
	return true
}

// All yields the elements from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := l.head; h != Nil; h = l.node(h).next {
			if !yield(l.node(h).value) {
				return
			}
		}
	}
}

// Handles yields the handles from front to back.
func (l *List[T]) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for h := l.head; h != Nil; h = l.node(h).next {
			if !yield(h) {
				return
			}
		}
	}
}

// Values copies the elements into a new slice.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.n)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Clone returns a list with the same capacity, overflow allocator, name
// and elements. The clone has its own storage.
func (l *List[T]) Clone() *List[T] {
	c := NewList[T](l.MaxSize(), l.cfg.options()...)
	c.Assign(l.Values()...)
	return c
}

// Swap exchanges the elements of l and other. Each list keeps its own
// storage, so the elements are copied across rather than relinked. Both
// lists must be able to hold the other's elements.
func (l *List[T]) Swap(other *List[T]) {
	if l == other {
		return
	}
	mine, theirs := l.Values(), other.Values()
	ok := l.Assign(theirs...)
	ok = other.Assign(mine...) && ok
	assert.That(ok, "fixed: %v", ErrCapacity)
}
