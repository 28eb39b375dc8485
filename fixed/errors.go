package fixed

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfRange indicates an index outside [0, Len()).
	ErrOutOfRange = errors.New("fixed: index out of range")

	// ErrCapacity indicates an operation that needs more room than the
	// container can provide.
	ErrCapacity = errors.New("fixed: capacity exceeded")
)
