package pool

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/indirectvec/internal/conv"
)

var (
	// ErrExhausted is returned when every slot holds a live object.
	ErrExhausted = errors.New("pool: exhausted")
	// ErrInvalidHandle is returned for a handle that does not address a live object of this pool.
	ErrInvalidHandle = errors.New("pool: invalid handle")
)

// Handle identifies one live object in a Pool.
type Handle struct {
	slot uint32 // slot index + 1; zero means no slot
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.slot == 0 }

// Slot returns the slot index addressed by h, or -1 for the zero Handle.
func (h Handle) Slot() int {
	if h.slot == 0 {
		return -1
	}
	return int(h.slot - 1)
}

// Key packs h into a single integer, unique among the live handles of one pool.
func (h Handle) Key() uint32 { return h.slot - 1 }

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d@%d)", h.slot-1, h.gen)
}

// Stats describes pool occupancy.
//
//   - Created/Destroyed are cumulative.
//   - Live is the number of objects currently constructed.
//   - HighWater is the largest Live value observed.
type Stats struct {
	Capacity  int
	Live      int
	HighWater int
	Created   uint64
	Destroyed uint64
}

// Pool is a fixed-capacity allocator of T values.
type Pool[T any] struct {
	objects []T
	gens    []uint32
	free    []uint32
	live    *bitset.BitSet
	stats   Stats
}

// New creates a Pool with room for capacity objects.
func New[T any](capacity int) (*Pool[T], error) {
	n, err := conv.Capacity(capacity)
	if err != nil {
		return nil, fmt.Errorf("pool: %w", err)
	}

	p := &Pool[T]{
		objects: make([]T, n),
		gens:    make([]uint32, n),
		free:    make([]uint32, n),
		live:    bitset.New(uint(n)),
		stats:   Stats{Capacity: int(n)},
	}

	// Stack top is slot 0 so slots fill in ascending order.
	for i := range p.free {
		p.free[i] = n - 1 - uint32(i)
	}

	return p, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](capacity int) *Pool[T] {
	p, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return p
}

// Cap returns the maximum number of live objects.
func (p *Pool[T]) Cap() int { return len(p.objects) }

// Len returns the number of live objects.
func (p *Pool[T]) Len() int { return p.stats.Live }

// Available returns the number of free slots.
func (p *Pool[T]) Available() int { return len(p.free) }

// Empty reports whether no object is live.
func (p *Pool[T]) Empty() bool { return p.stats.Live == 0 }

// Full reports whether no slot is free.
func (p *Pool[T]) Full() bool { return len(p.free) == 0 }

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats { return p.stats }

// Create copies value into a free slot.
func (p *Pool[T]) Create(value T) (Handle, error) {
	h, obj, err := p.acquire()
	if err != nil {
		return Handle{}, err
	}
	*obj = value
	return h, nil
}

// CreateFunc constructs an object in place. init receives a pointer to the
// zeroed slot; a nil init leaves the zero value. If init panics the slot is
// released before the panic propagates.
func (p *Pool[T]) CreateFunc(init func(*T)) (Handle, error) {
	h, obj, err := p.acquire()
	if err != nil {
		return Handle{}, err
	}
	if init == nil {
		return h, nil
	}

	done := false
	defer func() {
		if !done {
			p.release(h.slot - 1)
			p.stats.Created--
		}
	}()
	init(obj)
	done = true
	return h, nil
}

func (p *Pool[T]) acquire() (Handle, *T, error) {
	n := len(p.free)
	if n == 0 {
		return Handle{}, nil, fmt.Errorf("%w: capacity %d", ErrExhausted, len(p.objects))
	}
	slot := p.free[n-1]
	p.free = p.free[:n-1]

	if p.gens[slot] == 0 {
		p.gens[slot] = 1
	}
	p.live.Set(uint(slot))

	p.stats.Live++
	p.stats.Created++
	if p.stats.Live > p.stats.HighWater {
		p.stats.HighWater = p.stats.Live
	}

	return Handle{slot: slot + 1, gen: p.gens[slot]}, &p.objects[slot], nil
}

// Destroy zeroes the object addressed by h and frees its slot.
func (p *Pool[T]) Destroy(h Handle) error {
	if !p.Live(h) {
		return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	p.release(h.slot - 1)
	p.stats.Destroyed++
	return nil
}

// release zeroes slot, retires its generation and returns it to the free stack.
func (p *Pool[T]) release(slot uint32) {
	var zero T
	p.objects[slot] = zero

	p.gens[slot]++
	if p.gens[slot] == 0 {
		p.gens[slot] = 1
	}
	p.live.Clear(uint(slot))
	p.free = append(p.free, slot)

	p.stats.Live--
}

// Live reports whether h addresses a live object of this pool.
func (p *Pool[T]) Live(h Handle) bool {
	if h.slot == 0 || int(h.slot) > len(p.objects) {
		return false
	}
	slot := h.slot - 1
	return p.live.Test(uint(slot)) && p.gens[slot] == h.gen
}

// Get returns the object addressed by h. It panics if h is not live.
func (p *Pool[T]) Get(h Handle) *T {
	if !p.Live(h) {
		panic(fmt.Sprintf("pool: dereference of %s", h))
	}
	return &p.objects[h.slot-1]
}

// Lookup returns the object addressed by h and whether h is live.
func (p *Pool[T]) Lookup(h Handle) (*T, bool) {
	if !p.Live(h) {
		return nil, false
	}
	return &p.objects[h.slot-1], true
}

// Each calls fn for every live object in slot order until fn returns false.
func (p *Pool[T]) Each(fn func(Handle, *T) bool) {
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		slot := uint32(i)
		if !fn(Handle{slot: slot + 1, gen: p.gens[slot]}, &p.objects[slot]) {
			return
		}
	}
}
