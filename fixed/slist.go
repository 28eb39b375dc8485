package fixed

import (
	"iter"

	"github.com/pavanmanishd/memkit/internal/assert"
)

type slistNode[T any] struct {
	value T
	next  Handle
}

// SList is a singly linked list whose nodes live in a NodePool of fixed
// capacity.
type SList[T any] struct {
	pool *NodePool[slistNode[T]]
	head Handle
	n    int
	cfg  config
}

// NewSList returns an empty list holding up to n elements, or more with
// WithOverflow.
func NewSList[T any](n int, opts ...Option) *SList[T] {
	cfg := buildConfig(opts)
	return &SList[T]{
		pool: NewNodePool[slistNode[T]](n, cfg.overflow),
		head: Nil,
		cfg:  cfg,
	}
}

func (l *SList[T]) node(h Handle) *slistNode[T] { return l.pool.At(h) }

func (l *SList[T]) Len() int            { return l.n }
func (l *SList[T]) Empty() bool         { return l.n == 0 }
func (l *SList[T]) MaxSize() int        { return l.pool.Capacity() }
func (l *SList[T]) Full() bool          { return l.pool.Full() }
func (l *SList[T]) HasOverflowed() bool { return l.pool.HasOverflowed() }
func (l *SList[T]) CanOverflow() bool   { return l.pool.CanOverflow() }
func (l *SList[T]) Name() string        { return l.cfg.name }

// Front returns the first handle, or Nil.
func (l *SList[T]) Front() Handle { return l.head }

// Next returns the handle after h, or Nil.
func (l *SList[T]) Next(h Handle) Handle { return l.node(h).next }

// Value returns a pointer to the element at h.
func (l *SList[T]) Value(h Handle) *T {
	assert.That(h != Nil, "fixed: dereference of Nil handle")
	return &l.node(h).value
}

// Previous returns the handle before h, or Nil when h is the first node.
// It walks the list.
func (l *SList[T]) Previous(h Handle) Handle {
	prev := Nil
	for cur := l.head; cur != Nil && cur != h; cur = l.node(cur).next {
		prev = cur
	}
	return prev
}

// FrontValue returns the first element.
func (l *SList[T]) FrontValue() (T, bool) {
	if l.head == Nil {
		var zero T
		return zero, false
	}
	return l.node(l.head).value, true
}

// InsertAfter inserts v after pos (Nil prepends) and returns its handle.
func (l *SList[T]) InsertAfter(pos Handle, v T) (Handle, bool) {
	h, ok := l.pool.Allocate()
	if !ok {
		return Nil, false
	}
	n := l.node(h)
	n.value = v
	if pos == Nil {
		n.next = l.head
		l.head = h
	} else {
		p := l.node(pos)
		n.next = p.next
		p.next = h
	}
	l.n++
	return h, true
}

// PushFront prepends v. It returns false when the list cannot grow.
func (l *SList[T]) PushFront(v T) bool {
	_, ok := l.InsertAfter(Nil, v)
	return ok
}

// EraseAfter removes the element after pos (Nil removes the first) and
// returns the handle that now follows pos.
func (l *SList[T]) EraseAfter(pos Handle) Handle {
	var victim Handle
	if pos == Nil {
		victim = l.head
	} else {
		victim = l.node(pos).next
	}
	assert.That(victim != Nil, "fixed: erase past end of list")
	next := l.node(victim).next
	if pos == Nil {
		l.head = next
	} else {
		l.node(pos).next = next
	}
	l.pool.Deallocate(victim)
	l.n--
	return next
}

// PopFront removes and returns the first element.
func (l *SList[T]) PopFront() (T, bool) {
	v, ok := l.FrontValue()
	if ok {
		l.EraseAfter(Nil)
	}
	return v, ok
}

// RemoveFunc erases every element for which fn returns true.
func (l *SList[T]) RemoveFunc(fn func(T) bool) int {
	removed := 0
	prev := Nil
	for h := l.head; h != Nil; {
		if fn(l.node(h).value) {
			h = l.EraseAfter(prev)
			removed++
			continue
		}
		prev, h = h, l.node(h).next
	}
	return removed
}

// Reverse reverses the list in place.
func (l *SList[T]) Reverse() {
	prev := Nil
	for h := l.head; h != Nil; {
		n := l.node(h)
		next := n.next
		n.next = prev
		prev, h = h, next
	}
	l.head = prev
}

// Clear removes every element.
func (l *SList[T]) Clear() {
	l.pool.Reset()
	l.head = Nil
	l.n = 0
}

// Assign replaces the contents with vals, preserving their order.
func (l *SList[T]) Assign(vals ...T) bool {
	l.Clear()
	tail := Nil
	for _, v := range vals {
		h, ok := l.InsertAfter(tail, v)
		if !ok {
			return false
		}
		tail = h
	}
	return true
}

// All yields the elements from front to back.
func (l *SList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := l.head; h != Nil; h = l.node(h).next {
			if !yield(l.node(h).value) {
				return
			}
		}
	}
}

// Values copies the elements into a new slice.
func (l *SList[T]) Values() []T {
	out := make([]T, 0, l.n)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Clone returns an independent copy with the same capacity and options.
func (l *SList[T]) Clone() *SList[T] {
	c := NewSList[T](l.MaxSize(), l.cfg.options()...)
	c.Assign(l.Values()...)
	return c
}

// Swap exchanges the elements of l and other by copying.
func (l *SList[T]) Swap(other *SList[T]) {
	if l == other {
		return
	}
	mine, theirs := l.Values(), other.Values()
	ok := l.Assign(theirs...)
	ok = other.Assign(mine...) && ok
	assert.That(ok, "fixed: %v", ErrCapacity)
}
