package alloc

// Dummy is an allocator that never hands out memory. It stands in for
// containers that must never allocate.
type Dummy struct {
	name string
}

// NewDummy returns a Dummy allocator.
func NewDummy(name string) *Dummy {
	return &Dummy{name: name}
}

func (d *Dummy) Allocate(int, Flags) []byte { return nil }

func (d *Dummy) AllocateAligned(int, int, int, Flags) []byte { return nil }

func (d *Dummy) Deallocate([]byte, int) {}

func (d *Dummy) Name() string { return d.name }

func (d *Dummy) SetName(name string) { d.name = name }

// Equal reports whether other is also a Dummy.
func (d *Dummy) Equal(other Allocator) bool {
	_, ok := other.(*Dummy)
	return ok
}
