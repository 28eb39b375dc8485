package intrusive

import (
	"hash/maphash"
	"iter"

	"github.com/pavanmanishd/memkit/internal/assert"
)

// HashNode is embedded in a type to make it linkable into a HashMap.
type HashNode[T any] struct {
	next *T
}

func (n *HashNode[T]) hashNode() *HashNode[T] { return n }

// HashElem is satisfied by *T when T embeds HashNode[T] and reports its key.
type HashElem[K comparable, T any] interface {
	*T
	hashNode() *HashNode[T]
	HashKey() K
}

// Hasher maps a key to a bucket hash.
type Hasher[K comparable] func(K) uint64

// HashOption configures a HashMap.
type HashOption[K comparable] func(*hashConfig[K])

type hashConfig[K comparable] struct {
	hash Hasher[K]
}

// WithHasher replaces the default maphash hasher.
func WithHasher[K comparable](h func(K) uint64) HashOption[K] {
	return func(c *hashConfig[K]) {
		if h != nil {
			c.hash = h
		}
	}
}

// HashMap is a chained hash table threaded through the elements. The
// bucket count is fixed at construction; the table never allocates after
// that. Keys are unique unless the table was built with NewHashMultiMap.
type HashMap[K comparable, T any, P HashElem[K, T]] struct {
	buckets []*T
	n       int
	multi   bool
	hash    Hasher[K]
}

// HashMultiMap is a HashMap that admits duplicate keys.
type HashMultiMap[K comparable, T any, P HashElem[K, T]] = HashMap[K, T, P]

// HashSet is a HashMap whose elements are their own keys.
type HashSet[K comparable, T any, P HashElem[K, T]] = HashMap[K, T, P]

// NewHashMap returns a table with unique keys and the given bucket count.
func NewHashMap[K comparable, T any, P HashElem[K, T]](buckets int, opts ...HashOption[K]) *HashMap[K, T, P] {
	return newHashMap[K, T, P](buckets, false, opts)
}

// NewHashMultiMap returns a table that admits duplicate keys.
func NewHashMultiMap[K comparable, T any, P HashElem[K, T]](buckets int, opts ...HashOption[K]) *HashMultiMap[K, T, P] {
	return newHashMap[K, T, P](buckets, true, opts)
}

// NewHashSet returns a table with unique keys.
func NewHashSet[K comparable, T any, P HashElem[K, T]](buckets int, opts ...HashOption[K]) *HashSet[K, T, P] {
	return newHashMap[K, T, P](buckets, false, opts)
}

func newHashMap[K comparable, T any, P HashElem[K, T]](buckets int, multi bool, opts []HashOption[K]) *HashMap[K, T, P] {
	seed := maphash.MakeSeed()
	cfg := hashConfig[K]{
		hash: func(k K) uint64 { return maphash.Comparable(seed, k) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &HashMap[K, T, P]{
		buckets: make([]*T, max(buckets, 1)),
		multi:   multi,
		hash:    cfg.hash,
	}
}

func (m *HashMap[K, T, P]) link(e *T) *HashNode[T] { return P(e).hashNode() }

func (m *HashMap[K, T, P]) key(e *T) K { return P(e).HashKey() }

func (m *HashMap[K, T, P]) bucket(k K) int {
	return int(m.hash(k) % uint64(len(m.buckets)))
}

// Len returns the number of linked elements.
func (m *HashMap[K, T, P]) Len() int { return m.n }

// Empty reports whether the table has no elements.
func (m *HashMap[K, T, P]) Empty() bool { return m.n == 0 }

// BucketCount returns the fixed number of buckets.
func (m *HashMap[K, T, P]) BucketCount() int { return len(m.buckets) }

// BucketSize returns the chain length of bucket i.
func (m *HashMap[K, T, P]) BucketSize(i int) int {
	assert.That(i >= 0 && i < len(m.buckets), "intrusive: bucket %d out of range", i)
	n := 0
	for e := m.buckets[i]; e != nil; e = m.link(e).next {
		n++
	}
	return n
}

// Bucket returns the bucket index for k.
func (m *HashMap[K, T, P]) Bucket(k K) int { return m.bucket(k) }

// LoadFactor returns elements per bucket.
func (m *HashMap[K, T, P]) LoadFactor() float64 {
	return float64(m.n) / float64(len(m.buckets))
}

// Insert links e. In a unique-key table it returns false, leaving e
// unlinked, when an element with the same key is present.
func (m *HashMap[K, T, P]) Insert(e *T) bool {
	assert.That(e != nil, "intrusive: insert of nil element")
	k := m.key(e)
	b := m.bucket(k)
	if !m.multi && m.findIn(b, k) != nil {
		return false
	}
	m.link(e).next = m.buckets[b]
	m.buckets[b] = e
	m.n++
	return true
}

func (m *HashMap[K, T, P]) findIn(b int, k K) *T {
	for e := m.buckets[b]; e != nil; e = m.link(e).next {
		if m.key(e) == k {
			return e
		}
	}
	return nil
}

// Find returns an element with key k, or nil.
func (m *HashMap[K, T, P]) Find(k K) *T { return m.findIn(m.bucket(k), k) }

// Contains reports whether an element with key k is present.
func (m *HashMap[K, T, P]) Contains(k K) bool { return m.Find(k) != nil }

// FindAll yields every element with key k.
func (m *HashMap[K, T, P]) FindAll(k K) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for e := m.buckets[m.bucket(k)]; e != nil; {
			next := m.link(e).next
			if m.key(e) == k && !yield(e) {
				return
			}
			e = next
		}
	}
}

// Count returns the number of elements with key k.
func (m *HashMap[K, T, P]) Count(k K) int {
	n := 0
	for range m.FindAll(k) {
		n++
	}
	return n
}

// Erase unlinks every element with key k and returns how many there were.
func (m *HashMap[K, T, P]) Erase(k K) int {
	b := m.bucket(k)
	removed := 0
	var prev *T
	for e := m.buckets[b]; e != nil; {
		next := m.link(e).next
		if m.key(e) == k {
			m.unlink(b, prev, e)
			removed++
		} else {
			prev = e
		}
		e = next
	}
	return removed
}

// Remove unlinks e and reports whether it was in the table.
func (m *HashMap[K, T, P]) Remove(e *T) bool {
	b := m.bucket(m.key(e))
	var prev *T
	for cur := m.buckets[b]; cur != nil; cur = m.link(cur).next {
		if cur == e {
			m.unlink(b, prev, e)
			return true
		}
		prev = cur
	}
	return false
}

func (m *HashMap[K, T, P]) unlink(b int, prev, e *T) {
	next := m.link(e).next
	if prev == nil {
		m.buckets[b] = next
	} else {
		m.link(prev).next = next
	}
	m.link(e).next = nil
	m.n--
}

// Clear unlinks every element.
func (m *HashMap[K, T, P]) Clear() {
	for i, e := range m.buckets {
		for e != nil {
			next := m.link(e).next
			m.link(e).next = nil
			e = next
		}
		m.buckets[i] = nil
	}
	m.n = 0
}

// All yields every element in bucket order.
func (m *HashMap[K, T, P]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, e := range m.buckets {
			for e != nil {
				next := m.link(e).next
				if !yield(e) {
					return
				}
				e = next
			}
		}
	}
}
