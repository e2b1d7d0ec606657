package lookup

import (
	"errors"
	"fmt"
)

var (
	// ErrFull is returned when an operation would grow the sequence past its capacity.
	ErrFull = errors.New("lookup: sequence full")
	// ErrEmpty is returned when removing from an empty sequence.
	ErrEmpty = errors.New("lookup: sequence empty")
	// ErrOutOfRange is returned for a position outside the live slots.
	ErrOutOfRange = errors.New("lookup: position out of range")
)

// Sequence is a fixed-capacity slice of slots.
type Sequence[E any] struct {
	slots []E
}

// New creates a Sequence that can hold up to capacity slots.
// A negative capacity is treated as zero.
func New[E any](capacity int) *Sequence[E] {
	if capacity < 0 {
		capacity = 0
	}
	return &Sequence[E]{
		slots: make([]E, 0, capacity),
	}
}

// Len returns the number of populated slots.
func (s *Sequence[E]) Len() int { return len(s.slots) }

// Cap returns the fixed capacity.
func (s *Sequence[E]) Cap() int { return cap(s.slots) }

// Empty reports whether no slot is populated.
func (s *Sequence[E]) Empty() bool { return len(s.slots) == 0 }

// Full reports whether every slot is populated.
func (s *Sequence[E]) Full() bool { return len(s.slots) == cap(s.slots) }

// Available returns the number of free slots.
func (s *Sequence[E]) Available() int { return cap(s.slots) - len(s.slots) }

// Index returns the slot at position i. It panics if i is out of range.
func (s *Sequence[E]) Index(i int) E { return s.slots[i] }

// At returns the slot at position i.
func (s *Sequence[E]) At(i int) (E, error) {
	if i < 0 || i >= len(s.slots) {
		var zero E
		return zero, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(s.slots))
	}
	return s.slots[i], nil
}

// Set overwrites the slot at position i. It panics if i is out of range.
func (s *Sequence[E]) Set(i int, e E) { s.slots[i] = e }

// Front returns the first slot. It panics if the sequence is empty.
func (s *Sequence[E]) Front() E { return s.slots[0] }

// Back returns the last slot. It panics if the sequence is empty.
func (s *Sequence[E]) Back() E { return s.slots[len(s.slots)-1] }

// Data returns the populated slots.
//
// The returned slice aliases the backing array: permuting it in place reorders
// the sequence. It must not be appended to or retained across mutations.
func (s *Sequence[E]) Data() []E { return s.slots }

// PushBack appends e.
func (s *Sequence[E]) PushBack(e E) error {
	if s.Full() {
		return fmt.Errorf("%w: capacity %d", ErrFull, cap(s.slots))
	}
	s.slots = append(s.slots, e)
	return nil
}

// PopBack removes and returns the last slot.
func (s *Sequence[E]) PopBack() (E, error) {
	var zero E
	n := len(s.slots)
	if n == 0 {
		return zero, ErrEmpty
	}
	e := s.slots[n-1]
	s.slots[n-1] = zero
	s.slots = s.slots[:n-1]
	return e, nil
}

// Insert places e at pos, shifting later slots up by one.
// pos may equal Len to append.
func (s *Sequence[E]) Insert(pos int, e E) error {
	if err := s.reserve(pos, 1); err != nil {
		return err
	}
	s.slots[pos] = e
	return nil
}

// InsertN places n copies of e at pos.
func (s *Sequence[E]) InsertN(pos, n int, e E) error {
	if err := s.reserve(pos, n); err != nil {
		return err
	}
	for i := pos; i < pos+n; i++ {
		s.slots[i] = e
	}
	return nil
}

// InsertSlice places es at pos, preserving their order.
func (s *Sequence[E]) InsertSlice(pos int, es []E) error {
	if err := s.reserve(pos, len(es)); err != nil {
		return err
	}
	copy(s.slots[pos:], es)
	return nil
}

// reserve opens a gap of n slots at pos. The gap holds stale values until the
// caller fills it.
func (s *Sequence[E]) reserve(pos, n int) error {
	if pos < 0 || pos > len(s.slots) {
		return fmt.Errorf("%w: insert at %d (len %d)", ErrOutOfRange, pos, len(s.slots))
	}
	if n < 0 {
		return fmt.Errorf("%w: negative count %d", ErrOutOfRange, n)
	}
	if n > s.Available() {
		return fmt.Errorf("%w: need %d, available %d", ErrFull, n, s.Available())
	}
	if n == 0 {
		return nil
	}
	old := len(s.slots)
	s.slots = s.slots[:old+n]
	copy(s.slots[pos+n:], s.slots[pos:old])
	return nil
}

// Erase removes the slot at pos and returns pos, which now addresses the slot
// that followed it. It panics if pos is out of range.
func (s *Sequence[E]) Erase(pos int) int {
	return s.EraseRange(pos, pos+1)
}

// EraseRange removes the slots in [first, last) and returns first.
// It panics if the range is invalid.
func (s *Sequence[E]) EraseRange(first, last int) int {
	if first < 0 || last > len(s.slots) || first > last {
		panic(fmt.Sprintf("lookup: invalid erase range [%d, %d) (len %d)", first, last, len(s.slots)))
	}
	if first == last {
		return first
	}
	n := copy(s.slots[first:], s.slots[last:])
	clear(s.slots[first+n:])
	s.slots = s.slots[:first+n]
	return first
}

// Clear removes every slot.
func (s *Sequence[E]) Clear() {
	clear(s.slots)
	s.slots = s.slots[:0]
}
