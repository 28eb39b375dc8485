package tuple

import "github.com/cockroachdb/errors"

// ErrOutOfRange indicates a row index outside [0, Len()).
var ErrOutOfRange = errors.New("tuple: index out of range")
