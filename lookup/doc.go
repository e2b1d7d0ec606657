// Package lookup implements a bounded, ordered, random-access sequence of slots.
//
// A Sequence is sized once at construction. Its backing array is never
// reallocated, so appending within capacity never moves existing slots and
// positions stay valid until an insert or erase shifts them.
//
// # Errors
//
// Capacity and bounds checks run before any slot is touched. A failed call
// leaves the sequence exactly as it was. Index, Front and Back panic on a bad
// position in the same way slice indexing does; At is the checked variant.
package lookup
