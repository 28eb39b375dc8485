package alloc

import "sync"

// Sync is a mutex-protected wrapper around an Allocator for concurrent access.
// All operations are thread-safe but come with the overhead of mutex locking.
type Sync struct {
	mu sync.Mutex
	a  Allocator
}

// Synchronized wraps a so it can be shared between goroutines.
func Synchronized(a Allocator) *Sync {
	return &Sync{a: a}
}

func (s *Sync) Allocate(n int, flags Flags) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocate(n, flags)
}

func (s *Sync) AllocateAligned(n, alignment, offset int, flags Flags) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocateAligned(n, alignment, offset, flags)
}

func (s *Sync) Deallocate(p []byte, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Deallocate(p, n)
}

func (s *Sync) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Name()
}

func (s *Sync) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.SetName(name)
}

// Equal compares the wrapped allocators.
func (s *Sync) Equal(other Allocator) bool {
	if o, ok := other.(*Sync); ok {
		return Equal(s.a, o.a)
	}
	return Equal(s.a, other)
}

// Do runs fn with exclusive access to the wrapped allocator, for callers that
// need several operations to appear atomic (for example reading arena
// metrics).
func (s *Sync) Do(fn func(a Allocator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}
