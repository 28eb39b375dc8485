//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package alloc

import "log/slog"

// Mmap falls back to the Go heap on platforms without anonymous mappings.
type Mmap struct {
	name     string
	logger   *slog.Logger
	pageSize int
	live     map[uintptr]struct{}
}

// NewMmap returns a heap-backed stand-in for the page-mapping allocator.
func NewMmap(opts ...Option) *Mmap {
	o := buildOptions(DefaultName, opts)
	return &Mmap{name: o.name, logger: o.logger, pageSize: 4096, live: make(map[uintptr]struct{})}
}

func (m *Mmap) Allocate(n int, flags Flags) []byte {
	return m.AllocateAligned(n, MinAlignment, 0, flags)
}

func (m *Mmap) AllocateAligned(n, alignment, offset int, _ Flags) []byte {
	if n <= 0 {
		return nil
	}
	checkAlignment(alignment)
	p := heapBytes(n, alignment, offset)
	m.live[Addr(p)] = struct{}{}
	return p
}

func (m *Mmap) Deallocate(p []byte, _ int) {
	if cap(p) == 0 {
		return
	}
	delete(m.live, Addr(p))
}

func (m *Mmap) Name() string { return m.name }

func (m *Mmap) SetName(name string) { m.name = name }

// Mappings returns the number of live blocks.
func (m *Mmap) Mappings() int { return len(m.live) }

// PageSize returns the nominal page size.
func (m *Mmap) PageSize() int { return m.pageSize }
