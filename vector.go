package indirectvec

import (
	"fmt"

	"github.com/hupe1980/indirectvec/lookup"
	"github.com/hupe1980/indirectvec/pool"
)

// Vector is a fixed-capacity ordered sequence of T whose elements never move.
//
// Elements live in a pool.Pool; the vector keeps their handles in a
// lookup.Sequence. Inserting, erasing and sorting permute handles only, so a
// pointer returned by Index, At or an iterator stays valid, and keeps pointing
// at the same element, until that element is removed.
//
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	lookup   *lookup.Sequence[pool.Handle]
	pool     *pool.Pool[T]
	external bool
	opts     options
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.lookup.Len() }

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int { return v.lookup.Cap() }

// MaxSize returns the largest size the vector can reach. It equals Cap.
func (v *Vector[T]) MaxSize() int { return v.lookup.Cap() }

// Available returns the number of elements that can still be added.
func (v *Vector[T]) Available() int { return v.lookup.Available() }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.lookup.Empty() }

// Full reports whether the vector is at capacity.
func (v *Vector[T]) Full() bool { return v.lookup.Full() }

// External reports whether the vector borrows caller-supplied buffers.
func (v *Vector[T]) External() bool { return v.external }

// resolve is the single indirection step from a slot to its object.
func (v *Vector[T]) resolve(h pool.Handle) *T {
	return v.pool.Get(h)
}

// Index returns the element at position i. It panics if i is out of range.
func (v *Vector[T]) Index(i int) *T {
	return v.resolve(v.lookup.Index(i))
}

// At returns the element at position i.
func (v *Vector[T]) At(i int) (*T, error) {
	if i < 0 || i >= v.Len() {
		return nil, v.fail("at", &IndexError{Index: i, Len: v.Len()})
	}
	return v.resolve(v.lookup.Index(i)), nil
}

// Front returns the first element. It panics if the vector is empty.
func (v *Vector[T]) Front() *T {
	return v.resolve(v.lookup.Front())
}

// Back returns the last element. It panics if the vector is empty.
func (v *Vector[T]) Back() *T {
	return v.resolve(v.lookup.Back())
}

// Handles returns the handle of every element in order.
//
// The slice aliases the index sequence and must not be modified or retained
// across mutations.
func (v *Vector[T]) Handles() []pool.Handle {
	return v.lookup.Data()
}

// PushBack appends a copy of value.
func (v *Vector[T]) PushBack(value T) error {
	const op = "push_back"
	if err := v.checkGrow(op, 1); err != nil {
		return err
	}
	h, err := v.create(value)
	if err != nil {
		return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
	}
	return v.append(op, h)
}

// EmplaceBack appends an element constructed in place by init.
// init receives a pointer to a zeroed element; a nil init appends the zero value.
func (v *Vector[T]) EmplaceBack(init func(*T)) error {
	const op = "emplace_back"
	if err := v.checkGrow(op, 1); err != nil {
		return err
	}
	h, err := v.createFunc(init)
	if err != nil {
		return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
	}
	return v.append(op, h)
}

func (v *Vector[T]) append(op string, h pool.Handle) error {
	if err := v.lookup.PushBack(h); err != nil {
		v.destroy(h)
		return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
	}
	return nil
}

// PopBack destroys the last element.
func (v *Vector[T]) PopBack() error {
	if v.Empty() {
		return v.fail("pop_back", fmt.Errorf("pop_back: %w", ErrUnderflow))
	}
	v.destroy(v.lookup.Back())
	if _, err := v.lookup.PopBack(); err != nil {
		return v.fail("pop_back", translateError("pop_back", v.Len(), v.Cap(), err))
	}
	return nil
}

// Insert inserts a copy of value before pos and returns an iterator to it.
func (v *Vector[T]) Insert(pos Iterator[T], value T) (Iterator[T], error) {
	err := v.publish("insert", pos, 1, func(int) (pool.Handle, error) {
		return v.create(value)
	})
	return pos, err
}

// InsertN inserts n copies of value before pos and returns an iterator to the
// first inserted element.
func (v *Vector[T]) InsertN(pos Iterator[T], n int, value T) (Iterator[T], error) {
	err := v.publish("insert", pos, n, func(int) (pool.Handle, error) {
		return v.create(value)
	})
	return pos, err
}

// InsertSlice inserts copies of values before pos, preserving their order.
func (v *Vector[T]) InsertSlice(pos Iterator[T], values []T) (Iterator[T], error) {
	err := v.publish("insert", pos, len(values), func(i int) (pool.Handle, error) {
		return v.create(values[i])
	})
	return pos, err
}

// InsertRange inserts copies of the elements in [first, last) before pos.
// The range may belong to v itself.
func (v *Vector[T]) InsertRange(pos Iterator[T], first, last ConstIterator[T]) (Iterator[T], error) {
	const op = "insert"
	src := first.v
	if src != last.v {
		panic("indirectvec: insert range spans two vectors")
	}
	n := first.Distance(last)
	if n < 0 || first.pos < 0 || last.pos > src.Len() {
		panic(fmt.Sprintf("indirectvec: invalid insert range [%d, %d) (len %d)", first.pos, last.pos, src.Len()))
	}
	err := v.publish(op, pos, n, func(i int) (pool.Handle, error) {
		at := first.pos + i
		if src == v && at >= pos.pos {
			// The reserved gap shifted the source range.
			at += n
		}
		return v.create(*src.resolve(src.lookup.Index(at)))
	})
	return pos, err
}

// Emplace inserts an element constructed in place by init before pos.
func (v *Vector[T]) Emplace(pos Iterator[T], init func(*T)) (Iterator[T], error) {
	err := v.publish("emplace", pos, 1, func(int) (pool.Handle, error) {
		return v.createFunc(init)
	})
	return pos, err
}

// publish reserves n slots at pos and fills them, in order, with objects built
// by build. Every check runs before the first mutation.
func (v *Vector[T]) publish(op string, pos Iterator[T], n int, build func(i int) (pool.Handle, error)) error {
	v.own(pos.v)
	if pos.pos < 0 || pos.pos > v.Len() {
		return v.fail(op, &IndexError{Index: pos.pos, Len: v.Len()})
	}
	if n < 0 {
		return v.fail(op, fmt.Errorf("%s: %w: negative count %d", op, ErrOutOfBounds, n))
	}
	if err := v.checkGrow(op, n); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if err := v.lookup.InsertN(pos.pos, n, pool.Handle{}); err != nil {
		return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
	}
	if err := v.fill(pos.pos, n, build); err != nil {
		return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
	}
	return nil
}

// fill builds the objects for the n slots reserved at at. If build fails or
// panics, the objects already built are destroyed and the reserved slots
// removed, so v is left as it was before the reservation.
func (v *Vector[T]) fill(at, n int, build func(i int) (pool.Handle, error)) error {
	filled := 0
	defer func() {
		if filled == n {
			return
		}
		for j := 0; j < filled; j++ {
			v.destroy(v.lookup.Index(at + j))
		}
		v.lookup.EraseRange(at, at+n)
	}()

	for ; filled < n; filled++ {
		h, err := build(filled)
		if err != nil {
			return err
		}
		v.lookup.Set(at+filled, h)
	}
	return nil
}

// Erase destroys the element at pos and returns an iterator to the element
// that followed it. It panics if pos does not address an element of v.
func (v *Vector[T]) Erase(pos Iterator[T]) Iterator[T] {
	v.own(pos.v)
	v.destroy(v.lookup.Index(pos.pos))
	return Iterator[T]{v: v, pos: v.lookup.Erase(pos.pos)}
}

// EraseRange destroys the elements in [first, last) in forward order and
// returns an iterator to the element that followed the range.
func (v *Vector[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	v.own(first.v)
	v.own(last.v)
	if first.pos < 0 || last.pos > v.Len() || first.pos > last.pos {
		panic(fmt.Sprintf("indirectvec: invalid erase range [%d, %d) (len %d)", first.pos, last.pos, v.Len()))
	}
	for i := first.pos; i < last.pos; i++ {
		v.destroy(v.lookup.Index(i))
	}
	return Iterator[T]{v: v, pos: v.lookup.EraseRange(first.pos, last.pos)}
}

// Assign replaces the contents with copies of values.
// If the values do not fit, in v or in its pool, the vector is left unchanged.
func (v *Vector[T]) Assign(values []T) error {
	const op = "assign"
	if err := v.checkReplace(op, len(values)); err != nil {
		return err
	}
	v.Clear()
	for i := range values {
		if err := v.refill(op, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// AssignN replaces the contents with n copies of value.
func (v *Vector[T]) AssignN(n int, value T) error {
	const op = "assign"
	if n < 0 {
		return v.fail(op, fmt.Errorf("%s: %w: negative count %d", op, ErrOutOfBounds, n))
	}
	if err := v.checkReplace(op, n); err != nil {
		return err
	}
	v.Clear()
	for i := 0; i < n; i++ {
		if err := v.refill(op, value); err != nil {
			return err
		}
	}
	return nil
}

// AssignRange replaces the contents with copies of the elements in [first, last).
// Assigning a sub-range of v itself keeps those elements in place.
func (v *Vector[T]) AssignRange(first, last ConstIterator[T]) error {
	const op = "assign"
	src := first.v
	if src != last.v {
		panic("indirectvec: assign range spans two vectors")
	}
	n := first.Distance(last)
	if n < 0 || first.pos < 0 || last.pos > src.Len() {
		panic(fmt.Sprintf("indirectvec: invalid assign range [%d, %d) (len %d)", first.pos, last.pos, src.Len()))
	}

	if src == v {
		v.EraseRange(Iterator[T]{v: v, pos: last.pos}, v.End())
		v.EraseRange(v.Begin(), Iterator[T]{v: v, pos: first.pos})
		return nil
	}

	if err := v.checkReplace(op, n); err != nil {
		return err
	}
	v.Clear()
	for i := first.pos; i < last.pos; i++ {
		if err := v.refill(op, *src.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// refill appends during assign, after checkReplace has reserved room. Should
// it still fail the vector is emptied rather than left partially filled.
func (v *Vector[T]) refill(op string, value T) error {
	h, err := v.create(value)
	if err == nil {
		err = v.lookup.PushBack(h)
		if err != nil {
			v.destroy(h)
		}
	}
	if err != nil {
		v.Clear()
		return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
	}
	return nil
}

// Clear destroys every element.
func (v *Vector[T]) Clear() {
	for _, h := range v.lookup.Data() {
		v.destroy(h)
	}
	v.lookup.Clear()
}

// Resize grows the vector with zero values or shrinks it from the back.
func (v *Vector[T]) Resize(n int) error {
	var zero T
	return v.ResizeWith(n, zero)
}

// ResizeWith grows the vector with copies of value or shrinks it from the back.
func (v *Vector[T]) ResizeWith(n int, value T) error {
	const op = "resize"
	if n < 0 {
		return v.fail(op, &IndexError{Index: n, Len: v.Len()})
	}
	if err := v.checkFits(op, v.Len(), n); err != nil {
		return err
	}
	if n > v.Len() {
		if err := v.checkPool(op, n-v.Len(), 0); err != nil {
			return err
		}
	}

	old := v.Len()
	for v.Len() < n {
		h, err := v.create(value)
		if err == nil {
			err = v.lookup.PushBack(h)
			if err != nil {
				v.destroy(h)
			}
		}
		if err != nil {
			v.truncate(old)
			return v.fail(op, translateError(op, v.Len(), v.Cap(), err))
		}
	}
	v.truncate(n)
	return nil
}

// truncate destroys the elements from position n to the end.
func (v *Vector[T]) truncate(n int) {
	if n >= v.Len() {
		return
	}
	for _, h := range v.lookup.Data()[n:] {
		v.destroy(h)
	}
	v.lookup.EraseRange(n, v.Len())
}

func (v *Vector[T]) create(value T) (pool.Handle, error) {
	h, err := v.pool.Create(value)
	if err != nil {
		return pool.Handle{}, err
	}
	v.opts.metricsCollector.RecordCreate()
	return h, nil
}

func (v *Vector[T]) createFunc(init func(*T)) (pool.Handle, error) {
	h, err := v.pool.CreateFunc(init)
	if err != nil {
		return pool.Handle{}, err
	}
	v.opts.metricsCollector.RecordCreate()
	return h, nil
}

// destroy releases an object the vector owns. A failure means a slot held a
// handle the vector does not own, which no public operation can produce.
func (v *Vector[T]) destroy(h pool.Handle) {
	if err := v.pool.Destroy(h); err != nil {
		panic(fmt.Errorf("%w: %w", ErrCorrupt, err))
	}
	v.opts.metricsCollector.RecordDestroy()
}

func (v *Vector[T]) checkGrow(op string, n int) error {
	if n > v.Available() {
		return v.fail(op, &CapacityError{Op: op, Len: v.Len(), Request: n, Capacity: v.Cap()})
	}
	return v.checkPool(op, n, 0)
}

// checkReplace rejects replacing the contents with size new elements when
// they do not fit in v or in its pool once v's elements are released.
func (v *Vector[T]) checkReplace(op string, size int) error {
	if err := v.checkFits(op, 0, size); err != nil {
		return err
	}
	return v.checkPool(op, size, v.Len())
}

// checkPool rejects an operation needing n new objects when the pool, with
// released of v's objects returned to it, cannot supply them. This only
// happens when the pool is shared with other vectors.
func (v *Vector[T]) checkPool(op string, n, released int) error {
	if n > v.pool.Available()+released {
		return v.fail(op, &CapacityError{
			Op:       op,
			Len:      v.pool.Len() - released,
			Request:  n,
			Capacity: v.pool.Cap(),
			cause:    pool.ErrExhausted,
		})
	}
	return nil
}

// checkFits rejects a target size larger than the capacity. base is the
// number of elements kept by the operation.
func (v *Vector[T]) checkFits(op string, base, size int) error {
	if size > v.Cap() {
		return v.fail(op, &CapacityError{Op: op, Len: base, Request: size - base, Capacity: v.Cap()})
	}
	return nil
}

func (v *Vector[T]) own(other *Vector[T]) {
	if other != v {
		panic("indirectvec: iterator belongs to another vector")
	}
}

// fail reports err through the configured metrics, logger and failure policy.
func (v *Vector[T]) fail(op string, err error) error {
	v.opts.metricsCollector.RecordFailure(op, err)
	v.opts.logger.LogFailure(op, v.Len(), v.Cap(), err)
	if v.opts.policy == PolicyPanic {
		panic(err)
	}
	return err
}
