// Package indirectvec provides a fixed-capacity vector whose elements keep
// their address for as long as they are in the vector.
//
// A Vector stores elements in a pool.Pool and keeps their handles, in order,
// in a lookup.Sequence. Reordering operations (insert, erase, sort) move
// handles, never elements, so sorting a vector of large records costs one
// handle swap per exchange and every *T obtained from the vector stays valid.
//
// # Quick Start
//
//	v, _ := indirectvec.New[int](4)
//	_ = v.PushBack(3)
//	_ = v.PushBack(1)
//	_ = v.PushBack(2)
//	indirectvec.Sort(v)
//	for _, x := range v.Values() {
//		fmt.Println(*x) // 1 2 3
//	}
//
// # Construction Modes
//
// New allocates a private index sequence and pool of equal capacity.
// NewExternal borrows caller-supplied buffers, which lets several vectors
// draw from one pool or lets buffers outlive the vector:
//
//	p := pool.MustNew[Record](128)
//	a, _ := indirectvec.NewExternal(lookup.New[pool.Handle](64), p)
//	b, _ := indirectvec.NewExternal(lookup.New[pool.Handle](64), p)
//	defer a.Close()
//	defer b.Close()
//
// # Errors
//
// Growth past the capacity fails with ErrCapacityExceeded, PopBack on an empty
// vector with ErrUnderflow, At with ErrOutOfBounds and NewExternal with
// ErrBufferMismatch. Every check runs before any mutation, so a failed call
// leaves the vector unchanged. WithFailurePolicy(PolicyPanic) turns these
// errors into panics.
//
// A Vector is not safe for concurrent use.
package indirectvec
