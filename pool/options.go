package pool

import (
	"log/slog"

	"github.com/pavanmanishd/memkit/alloc"
)

// Option configures the pool allocators.
type Option func(*options)

type options struct {
	name     string
	logger   *slog.Logger
	overflow alloc.Allocator
}

// WithName sets the allocator name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger used to report pool events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOverflow sets the allocator an OverflowAllocator falls back to. The
// default is a heap allocator.
func WithOverflow(a alloc.Allocator) Option {
	return func(o *options) { o.overflow = a }
}

func buildOptions(opts []Option) options {
	o := options{name: alloc.DefaultName, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.overflow == nil {
		o.overflow = alloc.Default()
	}
	return o
}
