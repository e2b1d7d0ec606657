// Package testutil provides deterministic fixtures for tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	ints := rng.Ints(100, 10)          // many duplicates
//	recs := rng.Records(1000, 50)      // large values with uuid IDs
//	ok := testutil.IsStable(sortedRecs)
package testutil
