//go:build linux || darwin || freebsd || netbsd || openbsd

package alloc

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"

	"github.com/pavanmanishd/memkit/internal/assert"
)

// Mmap allocates every block as its own anonymous private mapping. It suits
// large, long-lived blocks that should bypass the Go heap entirely. Failed
// mappings are logged and reported as nil.
type Mmap struct {
	name     string
	logger   *slog.Logger
	pageSize int
	live     map[uintptr][]byte // returned block address -> full mapping
}

// NewMmap returns a page-mapping allocator.
func NewMmap(opts ...Option) *Mmap {
	o := buildOptions(DefaultName, opts)
	return &Mmap{
		name:     o.name,
		logger:   o.logger,
		pageSize: unix.Getpagesize(),
		live:     make(map[uintptr][]byte),
	}
}

func (m *Mmap) Allocate(n int, flags Flags) []byte {
	return m.AllocateAligned(n, MinAlignment, 0, flags)
}

func (m *Mmap) AllocateAligned(n, alignment, offset int, _ Flags) []byte {
	if n <= 0 {
		return nil
	}
	checkAlignment(alignment)

	size := n
	if alignment > m.pageSize || offset%alignment != 0 {
		size += alignment
	}
	size = AlignUp(size, m.pageSize)

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		m.logger.Warn("mmap allocation failed",
			"name", m.name, "bytes", size, "err", errors.Wrapf(err, "alloc: mmap %d bytes", size))
		return nil
	}

	pad := Padding(Addr(mem), alignment, offset)
	p := mem[pad : pad+n : pad+n]
	m.live[Addr(p)] = mem
	return p
}

func (m *Mmap) Deallocate(p []byte, _ int) {
	if cap(p) == 0 {
		return
	}
	mem, ok := m.live[Addr(p)]
	if !ok {
		assert.Fail("alloc: %s: deallocate of a block this allocator does not own", m.name)
		return
	}
	delete(m.live, Addr(p))
	if err := unix.Munmap(mem); err != nil {
		m.logger.Warn("munmap failed", "name", m.name, "err", errors.Wrap(err, "alloc: munmap"))
	}
}

func (m *Mmap) Name() string { return m.name }

func (m *Mmap) SetName(name string) { m.name = name }

// Mappings returns the number of live mappings.
func (m *Mmap) Mappings() int { return len(m.live) }

// PageSize returns the granularity of each mapping.
func (m *Mmap) PageSize() int { return m.pageSize }
