package pool

import "github.com/cockroachdb/errors"

var (
	// ErrNodeSize indicates a node size that is zero or negative.
	ErrNodeSize = errors.New("pool: node size must be positive")

	// ErrAlignment indicates an alignment that is not a power of two.
	ErrAlignment = errors.New("pool: alignment must be a power of two")

	// ErrBufferTooSmall indicates that the buffer cannot hold a single aligned node.
	ErrBufferTooSmall = errors.New("pool: buffer too small for one node")

	// ErrInitialized indicates a second Init on the same pool.
	ErrInitialized = errors.New("pool: already initialized")
)
