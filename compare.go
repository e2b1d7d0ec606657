package indirectvec

import (
	"cmp"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/indirectvec/pool"
)

// LessFunc reports whether a orders before b.
type LessFunc[T any] func(a, b *T) bool

// Ascending orders cmp.Ordered values from smallest to largest.
func Ascending[T cmp.Ordered](a, b *T) bool { return cmp.Less(*a, *b) }

// Descending orders cmp.Ordered values from largest to smallest.
func Descending[T cmp.Ordered](a, b *T) bool { return cmp.Less(*b, *a) }

// objectSorter lifts an element comparator onto a range of handles.
// Less compares the objects behind two handles; Swap moves handles only.
type objectSorter[T any] struct {
	handles []pool.Handle
	pool    *pool.Pool[T]
	less    LessFunc[T]
}

func (s objectSorter[T]) Len() int { return len(s.handles) }

func (s objectSorter[T]) Less(i, j int) bool {
	return s.less(s.pool.Get(s.handles[i]), s.pool.Get(s.handles[j]))
}

func (s objectSorter[T]) Swap(i, j int) {
	s.handles[i], s.handles[j] = s.handles[j], s.handles[i]
}

func (v *Vector[T]) sorter(first, last int, less LessFunc[T]) objectSorter[T] {
	if first < 0 || last > v.Len() || first > last {
		panic(fmt.Sprintf("indirectvec: invalid sort range [%d, %d) (len %d)", first, last, v.Len()))
	}
	return objectSorter[T]{
		handles: v.lookup.Data()[first:last],
		pool:    v.pool,
		less:    less,
	}
}

// SortFunc sorts the elements by less. Elements are not moved or copied.
func (v *Vector[T]) SortFunc(less LessFunc[T]) {
	v.SortRange(v.Begin(), v.End(), less)
}

// SortRange sorts the elements in [first, last) by less.
func (v *Vector[T]) SortRange(first, last Iterator[T], less LessFunc[T]) {
	v.own(first.v)
	v.own(last.v)
	s := v.sorter(first.pos, last.pos, less)
	start := time.Now()
	sort.Sort(s)
	v.recordSort("sort", s.Len(), false, time.Since(start))
}

// StableSortFunc sorts the elements by less, keeping equal elements in their
// original order.
func (v *Vector[T]) StableSortFunc(less LessFunc[T]) {
	v.StableSortRange(v.Begin(), v.End(), less)
}

// StableSortRange stably sorts the elements in [first, last) by less.
func (v *Vector[T]) StableSortRange(first, last Iterator[T], less LessFunc[T]) {
	v.own(first.v)
	v.own(last.v)
	s := v.sorter(first.pos, last.pos, less)
	start := time.Now()
	sort.Stable(s)
	v.recordSort("stable_sort", s.Len(), true, time.Since(start))
}

// IsSortedFunc reports whether the elements are sorted by less.
func (v *Vector[T]) IsSortedFunc(less LessFunc[T]) bool {
	return v.IsSortedRange(v.CBegin(), v.CEnd(), less)
}

// IsSortedRange reports whether the elements in [first, last) are sorted by less.
func (v *Vector[T]) IsSortedRange(first, last ConstIterator[T], less LessFunc[T]) bool {
	v.own(first.v)
	v.own(last.v)
	return sort.IsSorted(v.sorter(first.pos, last.pos, less))
}

func (v *Vector[T]) recordSort(op string, n int, stable bool, d time.Duration) {
	v.opts.metricsCollector.RecordSort(n, stable, d)
	v.opts.logger.LogSort(op, n, d)
}

// Sort sorts v in ascending order.
func Sort[T cmp.Ordered](v *Vector[T]) { v.SortFunc(Ascending[T]) }

// StableSort stably sorts v in ascending order.
func StableSort[T cmp.Ordered](v *Vector[T]) { v.StableSortFunc(Ascending[T]) }

// IsSorted reports whether v is in ascending order.
func IsSorted[T cmp.Ordered](v *Vector[T]) bool { return v.IsSortedFunc(Ascending[T]) }

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y *T) bool { return *x == *y })
}

// EqualFunc is like Equal but compares elements with eq.
// Element addresses are never compared.
func EqualFunc[T any](a, b *Vector[T], eq func(x, y *T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !eq(a.Index(i), b.Index(i)) {
			return false
		}
	}
	return true
}

// Compare compares a and b lexicographically. It returns -1, 0 or +1.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	return CompareFunc(a, b, func(x, y *T) int { return cmp.Compare(*x, *y) })
}

// CompareFunc is like Compare but compares elements with c.
// A vector that is a strict prefix of the other compares as smaller.
func CompareFunc[T any](a, b *Vector[T], c func(x, y *T) int) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if r := c(a.Index(i), b.Index(i)); r != 0 {
			return r
		}
	}
	return cmp.Compare(a.Len(), b.Len())
}

// Less reports whether a orders lexicographically before b.
func Less[T cmp.Ordered](a, b *Vector[T]) bool { return Compare(a, b) < 0 }

// LessOrEqual reports whether a does not order after b.
func LessOrEqual[T cmp.Ordered](a, b *Vector[T]) bool { return Compare(a, b) <= 0 }

// Greater reports whether a orders lexicographically after b.
func Greater[T cmp.Ordered](a, b *Vector[T]) bool { return Compare(a, b) > 0 }

// GreaterOrEqual reports whether a does not order before b.
func GreaterOrEqual[T cmp.Ordered](a, b *Vector[T]) bool { return Compare(a, b) >= 0 }
