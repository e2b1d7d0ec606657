package indirectvec

import (
	"iter"

	"github.com/hupe1980/indirectvec/pool"
)

// Iterator is a random-access cursor over a Vector.
//
// An Iterator is a position, not a snapshot: its arithmetic and comparisons act
// on the position only, and Value performs one indirection through the slot at
// that position. Inserting or erasing at or before the position shifts the
// element it refers to; appending never does.
type Iterator[T any] struct {
	v   *Vector[T]
	pos int
}

// Value returns the element at the iterator's position.
func (it Iterator[T]) Value() *T { return it.v.resolve(it.v.lookup.Index(it.pos)) }

// Get returns a copy of the element at the iterator's position.
func (it Iterator[T]) Get() T { return *it.Value() }

// Set overwrites the element at the iterator's position.
func (it Iterator[T]) Set(value T) { *it.Value() = value }

// Handle returns the pool handle stored at the iterator's position.
func (it Iterator[T]) Handle() pool.Handle { return it.v.lookup.Index(it.pos) }

// Index returns the position.
func (it Iterator[T]) Index() int { return it.pos }

// Next returns an iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{v: it.v, pos: it.pos + 1} }

// Prev returns an iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{v: it.v, pos: it.pos - 1} }

// Add returns an iterator n positions forward.
func (it Iterator[T]) Add(n int) Iterator[T] { return Iterator[T]{v: it.v, pos: it.pos + n} }

// Sub returns an iterator n positions back.
func (it Iterator[T]) Sub(n int) Iterator[T] { return Iterator[T]{v: it.v, pos: it.pos - n} }

// Distance returns the number of positions from it to last.
func (it Iterator[T]) Distance(last Iterator[T]) int { return last.pos - it.pos }

// Equal reports whether both iterators address the same position of the same vector.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.v == o.v && it.pos == o.pos }

// Less reports whether it precedes o.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.pos < o.pos }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{v: it.v, pos: it.pos} }

// ConstIterator is an Iterator without write access.
type ConstIterator[T any] struct {
	v   *Vector[T]
	pos int
}

// Get returns a copy of the element at the iterator's position.
func (it ConstIterator[T]) Get() T { return *it.v.resolve(it.v.lookup.Index(it.pos)) }

// Handle returns the pool handle stored at the iterator's position.
func (it ConstIterator[T]) Handle() pool.Handle { return it.v.lookup.Index(it.pos) }

// Index returns the position.
func (it ConstIterator[T]) Index() int { return it.pos }

// Next returns an iterator one position forward.
func (it ConstIterator[T]) Next() ConstIterator[T] {
	return ConstIterator[T]{v: it.v, pos: it.pos + 1}
}

// Prev returns an iterator one position back.
func (it ConstIterator[T]) Prev() ConstIterator[T] {
	return ConstIterator[T]{v: it.v, pos: it.pos - 1}
}

// Add returns an iterator n positions forward.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] {
	return ConstIterator[T]{v: it.v, pos: it.pos + n}
}

// Sub returns an iterator n positions back.
func (it ConstIterator[T]) Sub(n int) ConstIterator[T] {
	return ConstIterator[T]{v: it.v, pos: it.pos - n}
}

// Distance returns the number of positions from it to last.
func (it ConstIterator[T]) Distance(last ConstIterator[T]) int { return last.pos - it.pos }

// Equal reports whether both iterators address the same position of the same vector.
func (it ConstIterator[T]) Equal(o ConstIterator[T]) bool { return it.v == o.v && it.pos == o.pos }

// Less reports whether it precedes o.
func (it ConstIterator[T]) Less(o ConstIterator[T]) bool { return it.pos < o.pos }

// Cursor is the arithmetic shared by Iterator, ConstIterator and Reverse.
type Cursor[I any] interface {
	Next() I
	Prev() I
	Add(n int) I
	Equal(I) bool
	Less(I) bool
}

// Reverse walks a Cursor backwards.
//
// A Reverse built from base addresses the element just before base, so
// Reverse(End) is the last element and Reverse(Begin) is one past the front.
type Reverse[I Cursor[I]] struct {
	base I
}

// MakeReverse returns a reverse cursor over base.
func MakeReverse[I Cursor[I]](base I) Reverse[I] { return Reverse[I]{base: base} }

// Base returns the underlying forward cursor.
func (r Reverse[I]) Base() I { return r.base }

// Current returns the forward cursor addressing the same element as r.
func (r Reverse[I]) Current() I { return r.base.Prev() }

// Next moves r towards the front.
func (r Reverse[I]) Next() Reverse[I] { return Reverse[I]{base: r.base.Prev()} }

// Prev moves r towards the back.
func (r Reverse[I]) Prev() Reverse[I] { return Reverse[I]{base: r.base.Next()} }

// Add moves r n positions towards the front.
func (r Reverse[I]) Add(n int) Reverse[I] { return Reverse[I]{base: r.base.Add(-n)} }

// Equal reports whether both cursors address the same position.
func (r Reverse[I]) Equal(o Reverse[I]) bool { return r.base.Equal(o.base) }

// Less reports whether r precedes o in reverse order.
func (r Reverse[I]) Less(o Reverse[I]) bool { return o.base.Less(r.base) }

// Begin returns an iterator to the first element.
func (v *Vector[T]) Begin() Iterator[T] { return Iterator[T]{v: v, pos: 0} }

// End returns an iterator one past the last element.
func (v *Vector[T]) End() Iterator[T] { return Iterator[T]{v: v, pos: v.Len()} }

// CBegin returns a read-only iterator to the first element.
func (v *Vector[T]) CBegin() ConstIterator[T] { return ConstIterator[T]{v: v, pos: 0} }

// CEnd returns a read-only iterator one past the last element.
func (v *Vector[T]) CEnd() ConstIterator[T] { return ConstIterator[T]{v: v, pos: v.Len()} }

// RBegin returns a reverse iterator to the last element.
func (v *Vector[T]) RBegin() Reverse[Iterator[T]] { return MakeReverse(v.End()) }

// REnd returns a reverse iterator one before the first element.
func (v *Vector[T]) REnd() Reverse[Iterator[T]] { return MakeReverse(v.Begin()) }

// CRBegin returns a read-only reverse iterator to the last element.
func (v *Vector[T]) CRBegin() Reverse[ConstIterator[T]] { return MakeReverse(v.CEnd()) }

// CREnd returns a read-only reverse iterator one before the first element.
func (v *Vector[T]) CREnd() Reverse[ConstIterator[T]] { return MakeReverse(v.CBegin()) }

// IteratorAt returns an iterator at position i. i may equal Len.
func (v *Vector[T]) IteratorAt(i int) Iterator[T] { return Iterator[T]{v: v, pos: i} }

// All returns an iterator over positions and elements, front to back.
//
// The vector must not be mutated structurally during iteration.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i, h := range v.lookup.Data() {
			if !yield(i, v.resolve(h)) {
				return
			}
		}
	}
}

// Values returns an iterator over elements, front to back.
func (v *Vector[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, h := range v.lookup.Data() {
			if !yield(v.resolve(h)) {
				return
			}
		}
	}
}

// Backward returns an iterator over positions and elements, back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := v.Len() - 1; i >= 0; i-- {
			if !yield(i, v.Index(i)) {
				return
			}
		}
	}
}

// Slice copies the elements into a new slice.
func (v *Vector[T]) Slice() []T {
	out := make([]T, 0, v.Len())
	for _, h := range v.lookup.Data() {
		out = append(out, *v.resolve(h))
	}
	return out
}
