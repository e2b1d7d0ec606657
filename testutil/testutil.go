package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// PayloadSize is the size of a Record payload. It makes a Record expensive to
// copy, which is what indirect sorting avoids.
const PayloadSize = 256

// Record is a large, sortable fixture value.
type Record struct {
	ID      uuid.UUID
	Key     int
	Seq     int // insertion order, for stability checks
	Payload [PayloadSize]byte
}

// ByKey orders records by Key.
func ByKey(a, b *Record) bool { return a.Key < b.Key }

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Ints returns n pseudo-random numbers in [0,maxVal).
func (r *RNG) Ints(n, maxVal int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(maxVal)
	}
	return out
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// uuidLocked draws a UUID from the RNG, so fixtures are reproducible.
func (r *RNG) uuidLocked() uuid.UUID {
	id, err := uuid.NewRandomFromReader(r.rand)
	if err != nil {
		// math/rand never fails to read.
		panic(err)
	}
	return id
}

// Records generates n records with keys in [0,keyRange). A small keyRange
// produces many equal keys.
func (r *RNG) Records(n, keyRange int) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, n)
	for i := range out {
		out[i].ID = r.uuidLocked()
		out[i].Key = r.rand.Intn(keyRange)
		out[i].Seq = i
		_, _ = r.rand.Read(out[i].Payload[:])
	}
	return out
}

// SkewedRecords generates n records whose keys follow a Zipf distribution
// over [0,keyRange), which yields long runs of equal keys.
func (r *RNG) SkewedRecords(n, keyRange int, s float64) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, n)
	for i := range out {
		out[i].ID = r.uuidLocked()
		out[i].Key = r.zipfLocked(keyRange, s)
		out[i].Seq = i
		_, _ = r.rand.Read(out[i].Payload[:])
	}
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Inverse transform over the harmonic weights.
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// IsStable reports whether recs is ordered by Key with equal keys in Seq order.
func IsStable(recs []Record) bool {
	for i := 1; i < len(recs); i++ {
		a, b := recs[i-1], recs[i]
		if a.Key > b.Key || (a.Key == b.Key && a.Seq > b.Seq) {
			return false
		}
	}
	return true
}
