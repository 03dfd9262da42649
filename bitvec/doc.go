// Package bitvec provides a fixed-capacity atomic bit vector whose bits
// double as spinlocks.
//
// Architecture:
//   - Flat storage: one []atomic.Uint64, bit i lives in word i/64 at offset i%64
//   - Lock-free flags: Set/Unset are single atomic OR/AND, Test is a single load
//   - Bit-as-lock: TryLock claims a bit 0→1 with a CAS retry loop, Unlock clears it
//   - Fixed capacity: Reset/Clear/Swap/MoveFrom rebuild or wipe storage and
//     require exclusive access; everything else is safe from any number of
//     goroutines
//
// The packing makes a bit cost exactly one bit of memory, which is the point:
// one lock or flag per element over index spaces where a sync.Mutex (or even a
// byte) per element would be prohibitive, such as visited marks during graph
// traversal or per-bucket guards in a large table.
//
// Bits in the same word contend on the same CAS even when logically unrelated.
// That is the accepted cost of the density; spread hot indices if it matters.
//
// All per-bit operations panic on indices >= Len.
package bitvec
