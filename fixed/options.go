package fixed

import "github.com/pavanmanishd/memkit/alloc"

// Option configures a fixed container.
type Option func(*config)

type config struct {
	overflow alloc.Allocator
	name     string
}

// WithOverflow lets the container grow past its fixed capacity by
// allocating from a. A nil a selects the heap.
func WithOverflow(a alloc.Allocator) Option {
	return func(c *config) {
		if a == nil {
			a = alloc.Default()
		}
		c.overflow = a
	}
}

// WithName names the container for diagnostics.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

func buildConfig(opts []Option) config {
	c := config{name: alloc.DefaultName}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) options() []Option {
	opts := []Option{WithName(c.name)}
	if c.overflow != nil {
		opts = append(opts, WithOverflow(c.overflow))
	}
	return opts
}
