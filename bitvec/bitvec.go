package bitvec

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// WordBits is the number of bits stored per machine word. Vectors built with
// From have a length that is a multiple of WordBits.
const WordBits = 64

const (
	wordShift = 6
	wordMask  = WordBits - 1
)

// AtomicBitVector is a fixed-capacity vector of single-bit flags that is safe
// for concurrent use without a mutex. Each bit can independently be read,
// set, cleared, or held as a spinlock.
//
// The zero value is an empty vector (Len 0); give it capacity with Reset.
type AtomicBitVector struct {
	bits  uint64
	words []atomic.Uint64
}

// New creates a vector of size bits, all zero. size may be 0.
func New(size uint64) *AtomicBitVector {
	return &AtomicBitVector{
		bits:  size,
		words: make([]atomic.Uint64, wordsFor(size)),
	}
}

// From creates a vector from pre-packed words, copying their bit values
// as-is. The resulting length is len(words) * WordBits.
func From(words []uint64) *AtomicBitVector {
	v := &AtomicBitVector{
		bits:  uint64(len(words)) * WordBits,
		words: make([]atomic.Uint64, len(words)),
	}
	for i, w := range words {
		v.words[i].Store(w)
	}
	return v
}

// Len returns the number of addressable bits.
func (v *AtomicBitVector) Len() uint64 {
	return v.bits
}

// Test returns whether bit i is set.
//
// A true result establishes happens-before with the Set, TryLock, or Lock
// that produced it: writes made before publishing the bit are visible to the
// caller.
func (v *AtomicBitVector) Test(i uint64) bool {
	w, mask := v.word(i)
	return w.Load()&mask != 0
}

// Set sets bit i to 1. Idempotent.
func (v *AtomicBitVector) Set(i uint64) {
	w, mask := v.word(i)
	w.Or(mask)
}

// Unset sets bit i to 0. Idempotent.
func (v *AtomicBitVector) Unset(i uint64) {
	w, mask := v.word(i)
	w.And(^mask)
}

// TryLock attempts to transition bit i from 0 to 1 in a single atomic step.
// It returns true iff this call made the transition; false means the bit was
// already held when last observed.
//
// The CAS can fail because an unrelated bit in the same word changed; that is
// not "held", so the attempt retries with the fresh word value until the
// target bit is observed set or the CAS lands.
func (v *AtomicBitVector) TryLock(i uint64) bool {
	w, mask := v.word(i)
	for old := w.Load(); old&mask == 0; old = w.Load() {
		if w.CompareAndSwap(old, old|mask) {
			return true
		}
	}
	return false
}

// Lock spins until it acquires bit i, yielding to the scheduler between
// attempts. There is no fairness, no backoff, and no timeout; a caller
// needing a bounded wait should poll TryLock under its own deadline.
func (v *AtomicBitVector) Lock(i uint64) {
	for !v.TryLock(i) {
		runtime.Gosched()
	}
}

// Unlock releases bit i by clearing it. It does not verify that the caller
// holds the bit; unlocking a bit acquired by someone else corrupts the
// protocol silently.
func (v *AtomicBitVector) Unlock(i uint64) {
	v.Unset(i)
}

// Reset discards the storage and reallocates for a new size, all bits zero.
//
// Not synchronized: the caller must guarantee nothing else is touching the
// vector, e.g. by resetting only between parallel phases.
func (v *AtomicBitVector) Reset(size uint64) {
	v.bits = size
	v.words = make([]atomic.Uint64, wordsFor(size))
}

// Clear zeroes every bit in place, keeping the storage. Each word is cleared
// with one atomic store, but there is no cross-word atomicity: clearing while
// other goroutines mutate gives no meaningful aggregate state. Intended for
// the same between-phases use as Reset, without the reallocation.
func (v *AtomicBitVector) Clear() {
	for i := range v.words {
		v.words[i].Store(0)
	}
}

// Swap exchanges size and storage with other in O(1). Same exclusivity
// requirement as Reset, on both vectors.
func (v *AtomicBitVector) Swap(other *AtomicBitVector) {
	v.bits, other.bits = other.bits, v.bits
	v.words, other.words = other.words, v.words
}

// MoveFrom transfers src's size and storage into v in O(1), dropping v's old
// storage. src is left valid and empty. Same exclusivity requirement as
// Reset, on both vectors.
func (v *AtomicBitVector) MoveFrom(src *AtomicBitVector) {
	if v == src {
		return
	}
	v.bits, v.words = src.bits, src.words
	src.bits, src.words = 0, nil
}

// Snapshot copies the current word values into a fresh plain slice, one
// atomic load per word. There is no cross-word consistency: bits mutated
// mid-snapshot may or may not be included. Round-trips with From.
func (v *AtomicBitVector) Snapshot() []uint64 {
	words := make([]uint64, len(v.words))
	for i := range v.words {
		words[i] = v.words[i].Load()
	}
	return words
}

// word locates the owning word and single-bit mask for bit i, panicking on
// out-of-range indices.
func (v *AtomicBitVector) word(i uint64) (*atomic.Uint64, uint64) {
	if i >= v.bits {
		panic(fmt.Sprintf("bitvec: bit index %d out of range [0, %d)", i, v.bits))
	}
	return &v.words[i>>wordShift], uint64(1) << (i & wordMask)
}

func wordsFor(size uint64) uint64 {
	return (size + WordBits - 1) / WordBits
}
