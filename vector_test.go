package indirectvec

import (
	"errors"
	"slices"
	"testing"

	"github.com/hupe1980/indirectvec/lookup"
	"github.com/hupe1980/indirectvec/pool"
	"github.com/hupe1980/indirectvec/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInts(t *testing.T, capacity int, values ...int) *Vector[int] {
	t.Helper()
	v, err := NewFromSlice(capacity, values)
	require.NoError(t, err)
	return v
}

func TestVector(t *testing.T) {
	t.Run("ScenarioSortAndFill", func(t *testing.T) {
		v := MustNew[int](4)
		require.NoError(t, v.PushBack(3))
		require.NoError(t, v.PushBack(1))
		require.NoError(t, v.PushBack(2))
		assert.Equal(t, 3, v.Len())

		Sort(v)
		assert.Equal(t, []int{1, 2, 3}, v.Slice())

		require.NoError(t, v.PushBack(4))
		assert.Equal(t, []int{1, 2, 3, 4}, v.Slice())

		err := v.PushBack(5)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 4, v.Len())
		assert.NoError(t, v.Check())
	})

	t.Run("ScenarioAssignResize", func(t *testing.T) {
		v := MustNew[int](8)
		require.NoError(t, v.Assign([]int{1, 2}))
		require.NoError(t, v.ResizeWith(5, 9))

		assert.Equal(t, 5, v.Len())
		assert.Equal(t, []int{1, 2, 9, 9, 9}, v.Slice())
	})

	t.Run("Accessors", func(t *testing.T) {
		v := newInts(t, 5, 10, 20, 30)

		assert.Equal(t, 5, v.Cap())
		assert.Equal(t, 5, v.MaxSize())
		assert.Equal(t, 2, v.Available())
		assert.False(t, v.Empty())
		assert.False(t, v.Full())
		assert.False(t, v.External())
		assert.Equal(t, 10, *v.Front())
		assert.Equal(t, 30, *v.Back())
		assert.Equal(t, 20, *v.Index(1))
		assert.Len(t, v.Handles(), 3)

		x, err := v.At(2)
		require.NoError(t, err)
		assert.Equal(t, 30, *x)

		*x = 33
		assert.Equal(t, 33, *v.Back())
	})

	t.Run("AtOutOfBounds", func(t *testing.T) {
		v := newInts(t, 4, 1, 2)

		_, err := v.At(2)
		require.ErrorIs(t, err, ErrOutOfBounds)

		var ie *IndexError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 2, ie.Index)
		assert.Equal(t, 2, ie.Len)

		_, err = v.At(-1)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("CapacityBoundary", func(t *testing.T) {
		const k = 16
		v := MustNew[int](k)
		for i := range k {
			require.NoError(t, v.PushBack(i))
		}
		assert.True(t, v.Full())

		err := v.PushBack(k)
		require.ErrorIs(t, err, ErrCapacityExceeded)

		var ce *CapacityError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "push_back", ce.Op)
		assert.Equal(t, k, ce.Len)
		assert.Equal(t, k, ce.Capacity)

		assert.Equal(t, k, v.Len())
		assert.ErrorIs(t, v.EmplaceBack(nil), ErrCapacityExceeded)
		assert.Equal(t, k, v.pool.Len())
	})

	t.Run("UnderflowBoundary", func(t *testing.T) {
		v := MustNew[int](2)

		err := v.PopBack()
		require.ErrorIs(t, err, ErrUnderflow)
		assert.True(t, v.Empty())

		require.NoError(t, v.PushBack(1))
		require.NoError(t, v.PopBack())
		assert.True(t, v.Empty())
		assert.Equal(t, 0, v.pool.Len())
	})

	t.Run("EmplaceBack", func(t *testing.T) {
		type point struct{ X, Y int }
		v := MustNew[point](2)

		require.NoError(t, v.EmplaceBack(func(p *point) { p.X, p.Y = 1, 2 }))
		require.NoError(t, v.EmplaceBack(nil))

		assert.Equal(t, []point{{1, 2}, {}}, v.Slice())
	})

	t.Run("PanickingInitLeavesNoTrace", func(t *testing.T) {
		v := newInts(t, 3, 1)
		boom := func(*int) { panic("boom") }

		assert.PanicsWithValue(t, "boom", func() { _ = v.EmplaceBack(boom) })
		assert.PanicsWithValue(t, "boom", func() { _, _ = v.Emplace(v.Begin(), boom) })

		assert.Equal(t, []int{1}, v.Slice())
		assert.Equal(t, 1, v.pool.Len())
		assert.Equal(t, v.Available(), v.pool.Available())
		require.NoError(t, v.Check())

		require.NoError(t, v.PushBack(2))
		require.NoError(t, v.PushBack(3))
		assert.Equal(t, []int{1, 2, 3}, v.Slice())
		assert.NoError(t, v.Check())
	})

	t.Run("PanickingInitOnEmptyVector", func(t *testing.T) {
		v := MustNew[int](2)

		assert.Panics(t, func() { _ = v.EmplaceBack(func(*int) { panic("boom") }) })

		assert.True(t, v.Empty())
		assert.Equal(t, v.Cap(), v.pool.Available())
		assert.NoError(t, v.Check())
	})

	t.Run("Insert", func(t *testing.T) {
		v := newInts(t, 6, 1, 2, 4)

		it, err := v.Insert(v.IteratorAt(2), 3)
		require.NoError(t, err)
		assert.Equal(t, 2, it.Index())
		assert.Equal(t, 3, it.Get())
		assert.Equal(t, []int{1, 2, 3, 4}, v.Slice())

		it, err = v.InsertN(v.Begin(), 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, it.Index())
		assert.Equal(t, []int{0, 0, 1, 2, 3, 4}, v.Slice())

		_, err = v.Insert(v.End(), 5)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, []int{0, 0, 1, 2, 3, 4}, v.Slice())
		assert.NoError(t, v.Check())
	})

	t.Run("InsertSliceAndEmplace", func(t *testing.T) {
		v := newInts(t, 6, 1, 5)

		_, err := v.InsertSlice(v.IteratorAt(1), []int{2, 3})
		require.NoError(t, err)
		_, err = v.Emplace(v.IteratorAt(3), func(x *int) { *x = 4 })
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2, 3, 4, 5}, v.Slice())

		_, err = v.InsertSlice(v.End(), []int{6, 7})
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 5, v.Len())
	})

	t.Run("InsertBadPosition", func(t *testing.T) {
		v := newInts(t, 4, 1)

		_, err := v.Insert(v.IteratorAt(2), 9)
		require.ErrorIs(t, err, ErrOutOfBounds)

		_, err = v.InsertN(v.Begin(), -1, 9)
		require.ErrorIs(t, err, ErrOutOfBounds)
		assert.Equal(t, []int{1}, v.Slice())
	})

	t.Run("InsertRangeFromSelf", func(t *testing.T) {
		v := newInts(t, 6, 1, 2, 3)

		_, err := v.InsertRange(v.IteratorAt(1), v.CBegin(), v.CEnd())
		require.NoError(t, err)

		assert.Equal(t, []int{1, 1, 2, 3, 2, 3}, v.Slice())
		assert.NoError(t, v.Check())
	})

	t.Run("InsertRangeFromOther", func(t *testing.T) {
		src := newInts(t, 4, 7, 8, 9)
		v := newInts(t, 4, 1)

		_, err := v.InsertRange(v.Begin(), src.CBegin().Add(1), src.CEnd())
		require.NoError(t, err)

		assert.Equal(t, []int{8, 9, 1}, v.Slice())
		assert.Equal(t, []int{7, 8, 9}, src.Slice())
	})

	t.Run("ShuffledInsert", func(t *testing.T) {
		rng := testutil.NewRNG(7)
		const n = 64
		v := MustNew[int](n)

		var want []int
		for _, x := range rng.Perm(n) {
			at := rng.Intn(len(want) + 1)
			_, err := v.Insert(v.IteratorAt(at), x)
			require.NoError(t, err)
			want = slices.Insert(want, at, x)
		}
		assert.Equal(t, want, v.Slice())
		require.NoError(t, v.Check())

		Sort(v)
		for i := 0; i < n; i++ {
			assert.Equal(t, i, *v.Index(i))
		}
	})

	t.Run("EraseContract", func(t *testing.T) {
		metrics := &BasicMetricsCollector{}
		v, err := NewFromSlice(8, []int{10, 20, 30, 40, 50}, WithMetricsCollector(metrics))
		require.NoError(t, err)

		tail := v.Index(3)
		last := v.Index(4)
		before := metrics.GetStats().Destroys

		it := v.Erase(v.IteratorAt(2))

		assert.Equal(t, 4, v.Len())
		assert.Equal(t, 2, it.Index())
		assert.Equal(t, 40, it.Get())
		assert.Same(t, tail, v.Index(2))
		assert.Same(t, last, v.Index(3))
		assert.Equal(t, before+1, metrics.GetStats().Destroys)
		assert.Equal(t, 4, v.pool.Len())
		assert.NoError(t, v.Check())
	})

	t.Run("EraseRange", func(t *testing.T) {
		v := newInts(t, 8, 1, 2, 3, 4, 5)

		it := v.EraseRange(v.IteratorAt(1), v.IteratorAt(4))

		assert.Equal(t, 1, it.Index())
		assert.Equal(t, []int{1, 5}, v.Slice())
		assert.Equal(t, 2, v.pool.Len())

		it = v.EraseRange(v.Begin(), v.Begin())
		assert.Equal(t, 0, it.Index())
		assert.Equal(t, 2, v.Len())

		assert.Panics(t, func() { v.EraseRange(v.IteratorAt(1), v.IteratorAt(3)) })
	})

	t.Run("Assign", func(t *testing.T) {
		v := newInts(t, 4, 1, 2, 3)

		require.NoError(t, v.AssignN(2, 7))
		assert.Equal(t, []int{7, 7}, v.Slice())

		err := v.Assign([]int{1, 2, 3, 4, 5})
		require.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, []int{7, 7}, v.Slice(), "failed assign leaves contents")

		require.ErrorIs(t, v.AssignN(5, 0), ErrCapacityExceeded)
		require.ErrorIs(t, v.AssignN(-1, 0), ErrOutOfBounds)
		assert.Equal(t, 2, v.pool.Len())
	})

	t.Run("AssignRangeFromSelf", func(t *testing.T) {
		v := newInts(t, 8, 1, 2, 3, 4, 5)
		kept := v.Index(1)

		require.NoError(t, v.AssignRange(v.CBegin().Add(1), v.CBegin().Add(3)))

		assert.Equal(t, []int{2, 3}, v.Slice())
		assert.Same(t, kept, v.Index(0))
		assert.NoError(t, v.Check())
	})

	t.Run("Resize", func(t *testing.T) {
		v := newInts(t, 4, 1, 2, 3)

		require.NoError(t, v.Resize(4))
		assert.Equal(t, []int{1, 2, 3, 0}, v.Slice())

		require.NoError(t, v.Resize(1))
		assert.Equal(t, []int{1}, v.Slice())
		assert.Equal(t, 1, v.pool.Len())

		require.ErrorIs(t, v.Resize(5), ErrCapacityExceeded)
		require.ErrorIs(t, v.Resize(-1), ErrOutOfBounds)
		assert.Equal(t, []int{1}, v.Slice())
	})

	t.Run("ClearAndClose", func(t *testing.T) {
		v := newInts(t, 4, 1, 2, 3)
		p := v.Index(0)

		v.Clear()
		assert.True(t, v.Empty())
		assert.Equal(t, 0, v.pool.Len())
		assert.Equal(t, 0, *p, "destroyed objects are zeroed")

		require.NoError(t, v.PushBack(1))
		require.NoError(t, v.Close())
		require.NoError(t, v.Close())
		assert.True(t, v.Empty())

		var nilVec *Vector[int]
		assert.NoError(t, nilVec.Close())
	})

	t.Run("ForeignIterator", func(t *testing.T) {
		a := newInts(t, 4, 1)
		b := newInts(t, 4, 2)

		assert.Panics(t, func() { _, _ = a.Insert(b.Begin(), 3) })
		assert.Panics(t, func() { a.Erase(b.Begin()) })
	})

	t.Run("PolicyPanic", func(t *testing.T) {
		v := MustNew[int](1, WithFailurePolicy(PolicyPanic))
		require.NoError(t, v.PushBack(1))

		assert.Panics(t, func() { _ = v.PushBack(2) })
		assert.Panics(t, func() { _, _ = v.At(5) })
		assert.Equal(t, 1, v.Len())

		require.NoError(t, v.PopBack())
		assert.Panics(t, func() { _ = v.PopBack() })
	})

	t.Run("FailuresAreCounted", func(t *testing.T) {
		metrics := &BasicMetricsCollector{}
		v := MustNew[int](1, WithMetricsCollector(metrics))

		_ = v.PopBack()
		_, _ = v.At(0)

		assert.Equal(t, int64(2), metrics.GetStats().Failures)
	})
}

func TestCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		v := newInts(t, 4, 1, 2, 3)
		require.NoError(t, v.Check())

		slots := v.Slots()
		assert.Equal(t, uint64(3), slots.GetCardinality())
	})

	t.Run("Aliasing", func(t *testing.T) {
		v := newInts(t, 4, 1, 2)
		v.lookup.Set(1, v.lookup.Index(0))

		err := v.Check()
		require.ErrorIs(t, err, ErrCorrupt)
		assert.Contains(t, err.Error(), "aliases")
	})

	t.Run("DeadHandle", func(t *testing.T) {
		v := newInts(t, 4, 1, 2)
		require.NoError(t, v.pool.Destroy(v.lookup.Index(1)))

		err := v.Check()
		require.ErrorIs(t, err, ErrCorrupt)
		assert.Contains(t, err.Error(), "dead")
	})

	t.Run("Orphan", func(t *testing.T) {
		v := newInts(t, 4, 1, 2)
		_, err := v.pool.Create(3)
		require.NoError(t, err)

		assert.ErrorIs(t, v.Check(), ErrCorrupt)
	})
}

func TestErrors(t *testing.T) {
	t.Run("CapacityError", func(t *testing.T) {
		err := error(&CapacityError{Op: "insert", Len: 3, Request: 2, Capacity: 4})

		assert.True(t, errors.Is(err, ErrCapacityExceeded))
		assert.False(t, errors.Is(err, ErrUnderflow))
		assert.Equal(t, "insert: capacity exceeded: len 3 + 2 > capacity 4", err.Error())
	})

	t.Run("BufferMismatchError", func(t *testing.T) {
		err := error(&BufferMismatchError{LookupCapacity: 8, PoolCapacity: 4})
		assert.ErrorIs(t, err, ErrBufferMismatch)
		assert.Contains(t, err.Error(), "capacity 8 exceeds pool capacity 4")

		err = &BufferMismatchError{LookupCapacity: 4, PoolCapacity: 4, LookupLen: 1}
		assert.Contains(t, err.Error(), "already holds 1 slots")
	})

	t.Run("TranslateError", func(t *testing.T) {
		assert.NoError(t, translateError("op", 0, 0, nil))

		err := translateError("create", 1, 2, pool.ErrExhausted)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.ErrorIs(t, err, pool.ErrExhausted)

		assert.ErrorIs(t, translateError("pop", 0, 2, lookup.ErrEmpty), ErrUnderflow)
		assert.ErrorIs(t, translateError("at", 0, 2, lookup.ErrOutOfRange), ErrOutOfBounds)
		assert.ErrorIs(t, translateError("destroy", 0, 2, pool.ErrInvalidHandle), ErrCorrupt)

		other := errors.New("other")
		assert.Same(t, other, translateError("op", 1, 2, other))
	})
}
