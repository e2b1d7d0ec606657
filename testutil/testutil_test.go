package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInts(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Ints(64, 8)

	assert.Len(t, v, 64)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, 0)
		assert.Less(t, x, 8)
	}
}

func TestRecords(t *testing.T) {
	rng := NewRNG(4711)

	recs := rng.Records(32, 4)

	require.Len(t, recs, 32)
	seen := make(map[string]bool)
	for i, r := range recs {
		assert.Equal(t, i, r.Seq)
		assert.Less(t, r.Key, 4)
		seen[r.ID.String()] = true
	}
	assert.Len(t, seen, 32, "IDs must be unique")
}

func TestSkewedRecords(t *testing.T) {
	rng := NewRNG(4711)

	recs := rng.SkewedRecords(200, 10, 1.5)

	require.Len(t, recs, 200)
	counts := make([]int, 10)
	for _, r := range recs {
		counts[r.Key]++
	}
	assert.Greater(t, counts[0], counts[9])

	var zero [PayloadSize]byte
	assert.NotEqual(t, zero, recs[0].Payload)
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	r1 := rng.Records(4, 100)

	rng.Reset()
	r2 := rng.Records(4, 100)

	assert.Equal(t, r1, r2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestIsStable(t *testing.T) {
	assert.True(t, IsStable([]Record{{Key: 1, Seq: 2}, {Key: 1, Seq: 5}, {Key: 2, Seq: 0}}))
	assert.False(t, IsStable([]Record{{Key: 1, Seq: 5}, {Key: 1, Seq: 2}}))
	assert.False(t, IsStable([]Record{{Key: 2}, {Key: 1}}))
	assert.True(t, IsStable(nil))
}

func TestZipf(t *testing.T) {
	rng := NewRNG(1)

	for range 100 {
		k := rng.Zipf(5, 1.0)
		assert.GreaterOrEqual(t, k, 0)
		assert.Less(t, k, 5)
	}
	assert.Equal(t, 0, rng.Zipf(1, 1.0))
}
