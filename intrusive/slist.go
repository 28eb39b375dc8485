package intrusive

import (
	"iter"

	"github.com/pavanmanishd/memkit/internal/assert"
)

// SListNode is embedded in a type to make it linkable into an SList.
//
//	type job struct {
//		intrusive.SListNode[job]
//		id int
//	}
//
// An element can be in at most one list per embedded node.
type SListNode[T any] struct {
	next *T
}

func (n *SListNode[T]) slistNode() *SListNode[T] { return n }

// SListElem is satisfied by *T when T embeds SListNode[T].
type SListElem[T any] interface {
	*T
	slistNode() *SListNode[T]
}

// SList is a singly linked list threaded through the elements themselves.
// It never allocates and only writes the embedded link fields. The zero
// value is an empty list.
type SList[T any, P SListElem[T]] struct {
	head *T
}

func link[T any, P SListElem[T]](e *T) *SListNode[T] { return P(e).slistNode() }

func (l *SList[T, P]) next(e *T) *T { return link[T, P](e).next }

func (l *SList[T, P]) setNext(e, next *T) { link[T, P](e).next = next }

// Front returns the first element, or nil.
func (l *SList[T, P]) Front() *T { return l.head }

// Next returns the element after e, or nil.
func (l *SList[T, P]) Next(e *T) *T { return l.next(e) }

// Empty reports whether the list has no elements.
func (l *SList[T, P]) Empty() bool { return l.head == nil }

// Len counts the elements. It walks the list.
func (l *SList[T, P]) Len() int {
	n := 0
	for e := l.head; e != nil; e = l.next(e) {
		n++
	}
	return n
}

// PushFront links e at the front.
func (l *SList[T, P]) PushFront(e *T) {
	assert.That(e != nil, "intrusive: push of nil element")
	l.setNext(e, l.head)
	l.head = e
}

// PopFront unlinks and returns the first element, or nil.
func (l *SList[T, P]) PopFront() *T {
	e := l.head
	if e != nil {
		l.head = l.next(e)
		l.setNext(e, nil)
	}
	return e
}

// InsertAfter links e after pos. A nil pos links e at the front.
func (l *SList[T, P]) InsertAfter(pos, e *T) {
	if pos == nil {
		l.PushFront(e)
		return
	}
	l.setNext(e, l.next(pos))
	l.setNext(pos, e)
}

// Insert links e before pos. A nil pos appends. It walks the list.
func (l *SList[T, P]) Insert(pos, e *T) {
	l.InsertAfter(l.Previous(pos), e)
}

// Previous returns the element before pos, or nil when pos is first. A nil
// pos returns the last element. It walks the list.
func (l *SList[T, P]) Previous(pos *T) *T {
	var prev *T
	for e := l.head; e != pos; e = l.next(e) {
		assert.That(e != nil, "intrusive: element not in list")
		prev = e
	}
	return prev
}

// EraseAfter unlinks the element after pos (the first when pos is nil) and
// returns the element that now follows pos.
func (l *SList[T, P]) EraseAfter(pos *T) *T {
	var victim *T
	if pos == nil {
		victim = l.head
	} else {
		victim = l.next(pos)
	}
	assert.That(victim != nil, "intrusive: erase past end of list")
	next := l.next(victim)
	if pos == nil {
		l.head = next
	} else {
		l.setNext(pos, next)
	}
	l.setNext(victim, nil)
	return next
}

// Erase unlinks e and returns the element that followed it. It walks the
// list.
func (l *SList[T, P]) Erase(e *T) *T {
	return l.EraseAfter(l.Previous(e))
}

// Remove unlinks e if present and reports whether it was.
func (l *SList[T, P]) Remove(e *T) bool {
	if !l.Contains(e) {
		return false
	}
	l.Erase(e)
	return true
}

// Contains reports whether e is linked into l.
func (l *SList[T, P]) Contains(e *T) bool {
	for cur := l.head; cur != nil; cur = l.next(cur) {
		if cur == e {
			return true
		}
	}
	return false
}

// Clear empties the list without touching the elements.
func (l *SList[T, P]) Clear() { l.head = nil }

// SpliceAfter moves every element of other to follow pos (the front when
// pos is nil), preserving their order. other is left empty.
func (l *SList[T, P]) SpliceAfter(pos *T, other *SList[T, P]) {
	if other == l || other.head == nil {
		return
	}
	first := other.head
	last := other.Previous(nil)
	other.head = nil
	if pos == nil {
		l.setNext(last, l.head)
		l.head = first
		return
	}
	l.setNext(last, l.next(pos))
	l.setNext(pos, first)
}

// Splice moves every element of other before pos (the end when pos is
// nil). It walks the list.
func (l *SList[T, P]) Splice(pos *T, other *SList[T, P]) {
	l.SpliceAfter(l.Previous(pos), other)
}

// Reverse reverses the list in place.
func (l *SList[T, P]) Reverse() {
	var prev *T
	for e := l.head; e != nil; {
		next := l.next(e)
		l.setNext(e, prev)
		prev, e = e, next
	}
	l.head = prev
}

// All yields the elements from front to back. The element yielded may be
// unlinked during iteration.
func (l *SList[T, P]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for e := l.head; e != nil; {
			next := l.next(e)
			if !yield(e) {
				return
			}
			e = next
		}
	}
}
