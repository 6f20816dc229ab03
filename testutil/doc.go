// Package testutil provides testing utilities for chunkset.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic random source for integer sets with
// different chunk shapes, and slow but obviously correct reference set
// operations to compare against.
//
// # Random Sets
//
//	rng := testutil.NewRNG(seed)
//	sparse := rng.Uint32s(1000, 1<<24)     // scattered, with duplicates
//	dense := rng.Dense(0, 1<<18, 0.5)      // ~half of a range
//	runs := rng.Runs(50, 2000, 1<<22)      // long consecutive stretches
//
// # Reference Operations
//
//	want := testutil.Or(testutil.Distinct(a), testutil.Distinct(b))
package testutil
