// Package guard provides striped spinlocks over arbitrary byte keys.
//
// A Striped guard hashes each key onto one bit of an atomic bit vector and
// uses that bit as the key's lock. This buys a lock per bucket in a large
// table for one bit of memory each, instead of a sync.Mutex per bucket.
//
// Architecture:
//   - Key to stripe: 32-bit murmur3 of the key, masked to a power-of-two
//     stripe count
//   - Stripe to lock: one bit of a bitvec.AtomicBitVector, taken and
//     released with the bit-lock protocol
//   - Counters: acquisitions and contention events in atomic counters,
//     padded away from the read-mostly header
//
// Two hazards follow from the mapping. Distinct keys can share a stripe, so
// critical sections of unrelated keys may serialize; that is the accepted
// cost of the fixed footprint. And holding one stripe while locking another
// deadlocks when both keys map to the same stripe, so multi-key callers must
// acquire in StripeOf order and skip duplicates.
package guard
