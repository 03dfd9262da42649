// Package testutil provides testing utilities for the flag vector packages.
//
// This package is intended for use in tests and benchmarks only.
// It provides a goroutine-safe seeded RNG plus helpers for generating
// bit indexes, pre-packed words, and byte keys.
//
// # Random Access Patterns
//
//	rng := testutil.NewRNG(seed)
//	idx := rng.Indexes(1000, vec.Len())          // uniform bit indexes
//	hot := rng.ZipfIndexes(1000, vec.Len(), 1.5) // skewed, few hot bits
//
// # Deterministic Replay
//
//	rng.Reset() // rewind to the initial seed
package testutil
