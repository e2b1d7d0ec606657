package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_Queries(t *testing.T) {
	s := New[int](3)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 3, s.Cap())
	assert.True(t, s.Empty())
	assert.False(t, s.Full())
	assert.Equal(t, 3, s.Available())

	require.NoError(t, s.PushBack(1))
	require.NoError(t, s.PushBack(2))
	require.NoError(t, s.PushBack(3))
	assert.True(t, s.Full())
	assert.Equal(t, 0, s.Available())
	assert.Equal(t, 1, s.Front())
	assert.Equal(t, 3, s.Back())

	err := s.PushBack(4)
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, []int{1, 2, 3}, s.Data())
}

func TestSequence_NegativeCapacity(t *testing.T) {
	s := New[int](-5)
	assert.Equal(t, 0, s.Cap())
	assert.ErrorIs(t, s.PushBack(1), ErrFull)
}

func TestSequence_PopBack(t *testing.T) {
	s := New[string](2)
	_, err := s.PopBack()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, s.PushBack("a"))
	require.NoError(t, s.PushBack("b"))

	got, err := s.PopBack()
	require.NoError(t, err)
	assert.Equal(t, "b", got)
	assert.Equal(t, 1, s.Len())

	// Popped slot is zeroed in the backing array.
	assert.Equal(t, "", s.slots[:2][1])
}

func TestSequence_At(t *testing.T) {
	s := New[int](4)
	require.NoError(t, s.PushBack(7))

	v, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = s.At(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.At(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSequence_Insert(t *testing.T) {
	s := New[int](8)
	require.NoError(t, s.PushBack(1))
	require.NoError(t, s.PushBack(4))

	require.NoError(t, s.Insert(1, 2))
	assert.Equal(t, []int{1, 2, 4}, s.Data())

	require.NoError(t, s.InsertN(2, 2, 3))
	assert.Equal(t, []int{1, 2, 3, 3, 4}, s.Data())

	require.NoError(t, s.InsertSlice(0, []int{-1, 0}))
	assert.Equal(t, []int{-1, 0, 1, 2, 3, 3, 4}, s.Data())

	require.NoError(t, s.Insert(s.Len(), 5))
	assert.Equal(t, []int{-1, 0, 1, 2, 3, 3, 4, 5}, s.Data())

	assert.ErrorIs(t, s.Insert(0, 9), ErrFull)
	assert.Equal(t, 8, s.Len())
}

func TestSequence_InsertRejectsBeforeMutation(t *testing.T) {
	s := New[int](3)
	require.NoError(t, s.PushBack(1))
	require.NoError(t, s.PushBack(2))

	assert.ErrorIs(t, s.InsertN(1, 2, 0), ErrFull)
	assert.ErrorIs(t, s.InsertSlice(0, []int{8, 9}), ErrFull)
	assert.ErrorIs(t, s.Insert(5, 0), ErrOutOfRange)
	assert.ErrorIs(t, s.InsertN(0, -1, 0), ErrOutOfRange)
	assert.Equal(t, []int{1, 2}, s.Data())
}

func TestSequence_Erase(t *testing.T) {
	s := New[int](6)
	require.NoError(t, s.InsertSlice(0, []int{0, 1, 2, 3, 4, 5}))

	next := s.Erase(2)
	assert.Equal(t, 2, next)
	assert.Equal(t, 3, s.Index(next))
	assert.Equal(t, []int{0, 1, 3, 4, 5}, s.Data())

	next = s.EraseRange(1, 3)
	assert.Equal(t, 1, next)
	assert.Equal(t, []int{0, 4, 5}, s.Data())

	next = s.EraseRange(1, 1)
	assert.Equal(t, 1, next)
	assert.Equal(t, 3, s.Len())

	// Vacated tail slots are zeroed.
	assert.Equal(t, []int{0, 4, 5, 0, 0, 0}, s.slots[:6])

	assert.Panics(t, func() { s.EraseRange(2, 1) })
	assert.Panics(t, func() { s.Erase(3) })
}

func TestSequence_Clear(t *testing.T) {
	s := New[*int](2)
	a, b := 1, 2
	require.NoError(t, s.PushBack(&a))
	require.NoError(t, s.PushBack(&b))

	s.Clear()
	assert.True(t, s.Empty())
	assert.Equal(t, 2, s.Cap())
	assert.Nil(t, s.slots[:2][0])
	assert.Nil(t, s.slots[:2][1])
}

func TestSequence_AppendDoesNotMoveSlots(t *testing.T) {
	s := New[int](4)
	require.NoError(t, s.PushBack(1))
	first := &s.Data()[0]

	require.NoError(t, s.PushBack(2))
	require.NoError(t, s.PushBack(3))
	assert.Same(t, first, &s.Data()[0])
}

func TestSequence_SetAndIndex(t *testing.T) {
	s := New[int](2)
	require.NoError(t, s.PushBack(1))
	s.Set(0, 10)
	assert.Equal(t, 10, s.Index(0))
	assert.Panics(t, func() { s.Index(1) })
}
