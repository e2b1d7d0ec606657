package indirectvec

import (
	"fmt"

	"github.com/hupe1980/indirectvec/lookup"
	"github.com/hupe1980/indirectvec/pool"
)

// New creates a self-contained vector that owns an index sequence and an
// object pool of the given capacity.
func New[T any](capacity int, opts ...Option) (*Vector[T], error) {
	o := applyOptions(opts)
	p, err := pool.New[T](capacity)
	if err != nil {
		return nil, o.report("new", capacity, err)
	}
	return &Vector[T]{
		lookup: lookup.New[pool.Handle](capacity),
		pool:   p,
		opts:   o,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](capacity int, opts ...Option) *Vector[T] {
	v, err := New[T](capacity, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// NewFromSlice creates a self-contained vector holding copies of values.
func NewFromSlice[T any](capacity int, values []T, opts ...Option) (*Vector[T], error) {
	v, err := New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Assign(values); err != nil {
		return nil, err
	}
	return v, nil
}

// NewN creates a self-contained vector holding n copies of value. Use the zero
// value of T for n default-initialised elements.
func NewN[T any](capacity, n int, value T, opts ...Option) (*Vector[T], error) {
	v, err := New[T](capacity, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.AssignN(n, value); err != nil {
		return nil, err
	}
	return v, nil
}

// NewExternal creates a vector over caller-supplied buffers.
//
// The vector borrows seq and p; the caller keeps them alive and may reuse them
// after Close. Several vectors may share one pool, but each needs its own
// sequence. seq must be empty and its capacity must not exceed p's.
func NewExternal[T any](seq *lookup.Sequence[pool.Handle], p *pool.Pool[T], opts ...Option) (*Vector[T], error) {
	o := applyOptions(opts)
	if seq == nil || p == nil {
		return nil, o.report("new", 0, fmt.Errorf("%w: nil buffer", ErrBufferMismatch))
	}
	if seq.Len() != 0 {
		return nil, o.report("new", seq.Cap(), &BufferMismatchError{
			LookupCapacity: seq.Cap(),
			PoolCapacity:   p.Cap(),
			LookupLen:      seq.Len(),
		})
	}
	if seq.Cap() > p.Cap() {
		return nil, o.report("new", seq.Cap(), &BufferMismatchError{
			LookupCapacity: seq.Cap(),
			PoolCapacity:   p.Cap(),
		})
	}
	return &Vector[T]{
		lookup:   seq,
		pool:     p,
		external: true,
		opts:     o,
	}, nil
}

// NewExternalFromSlice creates a vector over caller-supplied buffers holding
// copies of values.
func NewExternalFromSlice[T any](seq *lookup.Sequence[pool.Handle], p *pool.Pool[T], values []T, opts ...Option) (*Vector[T], error) {
	v, err := NewExternal(seq, p, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Assign(values); err != nil {
		return nil, err
	}
	return v, nil
}

// Clone returns a self-contained deep copy of v with the same capacity and
// options. The copy shares no storage with v.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c, err := New[T](v.Cap())
	if err != nil {
		return nil, err
	}
	c.opts = v.opts
	if err := c.AssignRange(v.CBegin(), v.CEnd()); err != nil {
		return nil, err
	}
	return c, nil
}

// CopyFrom replaces the contents of v with copies of src's elements.
// Copying a vector onto itself is a no-op.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if src == v {
		return nil
	}
	return v.AssignRange(src.CBegin(), src.CEnd())
}

// Take creates a self-contained vector with src's capacity and moves src's
// elements into it. src is left empty.
func Take[T any](src *Vector[T], opts ...Option) (*Vector[T], error) {
	v, err := New[T](src.Cap(), opts...)
	if err != nil {
		return nil, err
	}
	if err := v.MoveFrom(src); err != nil {
		return nil, err
	}
	return v, nil
}

// MoveFrom replaces the contents of v with src's elements and empties src.
//
// When both vectors draw from the same pool the handles change owner and no
// element moves. Otherwise each value is moved into a new element of v's pool,
// which is O(Len) copies. If src does not fit in v or in v's pool, both
// vectors are left unchanged.
func (v *Vector[T]) MoveFrom(src *Vector[T]) error {
	const op = "move"
	if src == v {
		return nil
	}
	shared := src.pool == v.pool
	if shared {
		if err := v.checkFits(op, 0, src.Len()); err != nil {
			return err
		}
	} else if err := v.checkReplace(op, src.Len()); err != nil {
		return err
	}
	v.Clear()

	if shared {
		if err := v.lookup.InsertSlice(0, src.lookup.Data()); err != nil {
			return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
		}
		src.lookup.Clear()
		return nil
	}

	for _, h := range src.lookup.Data() {
		if err := v.refill(op, *src.resolve(h)); err != nil {
			return err
		}
	}
	src.Clear()
	return nil
}

// report applies the failure policy to errors raised before a vector exists.
func (o options) report(op string, capacity int, err error) error {
	o.metricsCollector.RecordFailure(op, err)
	o.logger.LogFailure(op, 0, capacity, err)
	if o.policy == PolicyPanic {
		panic(err)
	}
	return err
}
