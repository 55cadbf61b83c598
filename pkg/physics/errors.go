// pkg/physics/errors.go
package physics

import "errors"

var (
	// ErrSameHandle is returned when a pair operation names one body twice
	ErrSameHandle = errors.New("handles refer to the same body")
	// ErrStaleHandle is returned for handles of removed or unknown bodies
	ErrStaleHandle = errors.New("stale body handle")
	// ErrDegenerateVector is returned when a direction is needed from a zero-length vector
	ErrDegenerateVector = errors.New("degenerate vector")
	// ErrNonFinite is returned when a solve would write NaN or Inf into a position
	ErrNonFinite = errors.New("non-finite position")
)
