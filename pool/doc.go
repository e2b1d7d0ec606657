// Package pool provides a fixed-capacity object allocator with stable addresses.
//
// All object storage is allocated once when the Pool is created. Create
// constructs an object in a free slot and returns an opaque Handle; Get
// resolves a Handle to a pointer that stays valid, and never moves, until the
// object is destroyed.
//
// # Handles
//
// A Handle carries a slot index and a generation. Destroying an object bumps the
// generation of its slot, so a stale Handle is rejected by Destroy and Lookup
// instead of silently aliasing the slot's next occupant. The zero Handle is
// never issued.
//
// # Slot reuse
//
// Free slots are kept on a LIFO stack: the most recently freed slot is reused
// first. Occupancy is tracked in a fixed-size bitset.
package pool
