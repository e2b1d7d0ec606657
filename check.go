package indirectvec

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Slots returns the set of pool slots referenced by v.
//
// Two vectors sharing one pool never reference the same slot:
// roaring.And(a.Slots(), b.Slots()) is always empty.
func (v *Vector[T]) Slots() *roaring.Bitmap {
	bm := roaring.New()
	for _, h := range v.lookup.Data() {
		bm.Add(h.Key())
	}
	return bm
}

// Check verifies the vector's invariants:
//
//   - every slot holds the handle of a live object of v's pool,
//   - no two slots hold the same handle,
//   - the index sequence fits in the pool,
//   - a self-contained vector's pool holds exactly its elements.
//
// Check returns an error wrapping ErrCorrupt on the first violation.
func (v *Vector[T]) Check() error {
	if v.lookup.Cap() > v.pool.Cap() {
		return fmt.Errorf("%w: index capacity %d exceeds pool capacity %d", ErrCorrupt, v.lookup.Cap(), v.pool.Cap())
	}

	seen := roaring.New()
	for i, h := range v.lookup.Data() {
		if !v.pool.Live(h) {
			return fmt.Errorf("%w: slot %d holds dead %s", ErrCorrupt, i, h)
		}
		if !seen.CheckedAdd(h.Key()) {
			return fmt.Errorf("%w: slot %d aliases %s", ErrCorrupt, i, h)
		}
	}

	live := v.pool.Len()
	n := int(seen.GetCardinality())
	switch {
	case !v.external && live != n:
		return fmt.Errorf("%w: pool holds %d objects, vector references %d", ErrCorrupt, live, n)
	case v.external && live < n:
		return fmt.Errorf("%w: pool holds %d objects, vector references %d", ErrCorrupt, live, n)
	}
	return nil
}
