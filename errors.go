package indirectvec

import (
	"errors"
	"fmt"

	"github.com/hupe1980/indirectvec/lookup"
	"github.com/hupe1980/indirectvec/pool"
)

var (
	// ErrCapacityExceeded is returned when an operation would grow the vector past its capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrUnderflow is returned when removing from an empty vector.
	ErrUnderflow = errors.New("underflow")

	// ErrOutOfBounds is returned by At for an index outside [0, Len).
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrBufferMismatch is returned when an external index sequence cannot be
	// backed by the supplied object pool.
	ErrBufferMismatch = errors.New("buffer mismatch")

	// ErrCorrupt is returned by Check when an internal invariant does not hold.
	ErrCorrupt = errors.New("corrupt vector")
)

// CapacityError describes a rejected growth.
//
// errors.Is(err, ErrCapacityExceeded) reports true for a *CapacityError.
type CapacityError struct {
	Op       string
	Len      int
	Request  int
	Capacity int
	cause    error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s: len %d + %d > capacity %d", e.Op, ErrCapacityExceeded, e.Len, e.Request, e.Capacity)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }

func (e *CapacityError) Unwrap() error { return e.cause }

// IndexError describes an out-of-range index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d, len %d", ErrOutOfBounds, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrOutOfBounds }

// BufferMismatchError describes an external sequence/pool pair that cannot
// back a vector.
type BufferMismatchError struct {
	LookupCapacity int
	PoolCapacity   int
	LookupLen      int
}

func (e *BufferMismatchError) Error() string {
	if e.LookupLen != 0 {
		return fmt.Sprintf("%s: index sequence already holds %d slots", ErrBufferMismatch, e.LookupLen)
	}
	return fmt.Sprintf("%s: index sequence capacity %d exceeds pool capacity %d",
		ErrBufferMismatch, e.LookupCapacity, e.PoolCapacity)
}

func (e *BufferMismatchError) Unwrap() error { return ErrBufferMismatch }

// translateError maps collaborator errors onto the vector's taxonomy.
// Vector operations check bounds before touching the collaborators, so these
// paths are only reached when an external pool is shared with other owners.
func translateError(op string, length, capacity int, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pool.ErrExhausted) || errors.Is(err, lookup.ErrFull) {
		return &CapacityError{Op: op, Len: length, Request: 1, Capacity: capacity, cause: err}
	}
	if errors.Is(err, lookup.ErrEmpty) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnderflow, err)
	}
	if errors.Is(err, lookup.ErrOutOfRange) {
		return fmt.Errorf("%s: %w: %w", op, ErrOutOfBounds, err)
	}
	if errors.Is(err, pool.ErrInvalidHandle) {
		return fmt.Errorf("%s: %w: %w", op, ErrCorrupt, err)
	}

	return err
}
