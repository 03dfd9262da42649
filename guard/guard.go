package guard

import (
	"math/bits"
	"sync/atomic"

	"github.com/spaolacci/murmur3"
	"golang.org/x/sys/cpu"

	"github.com/accopeland/megahit/bitvec"
)

// Options holds configuration for a Striped guard.
type Options struct {
	// Seed feeds the stripe hash. Vary it when two guards over the same key
	// space should not share hot stripes.
	Seed uint32
}

var DefaultOptions = Options{
	Seed: 0,
}

// Striped maps arbitrary byte keys onto a fixed set of bit spinlocks.
// Memory stays constant no matter how many distinct keys pass through;
// in exchange, keys that hash to the same stripe serialize behind one lock.
type Striped struct {
	locks *bitvec.AtomicBitVector
	mask  uint64
	seed  uint32

	_         cpu.CacheLinePad // keep the hot counters off the header's line
	acquired  atomic.Uint64
	contended atomic.Uint64
}

// NewStriped creates a guard with the given number of stripes, rounded up to
// a power of two.
func NewStriped(stripes uint64, optFns ...func(o *Options)) *Striped {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	n := nextPow2(stripes)

	return &Striped{
		locks: bitvec.New(n),
		mask:  n - 1,
		seed:  opts.Seed,
	}
}

// StripeOf returns the stripe key maps to. Keys with equal StripeOf share one
// lock; callers locking several keys at once must acquire in StripeOf order
// and skip duplicates, or they deadlock against themselves.
func (s *Striped) StripeOf(key []byte) uint64 {
	return uint64(murmur3.Sum32WithSeed(key, s.seed)) & s.mask
}

// TryLock attempts to take key's stripe without waiting. It returns true iff
// the stripe was free and this call took it.
func (s *Striped) TryLock(key []byte) bool {
	if !s.locks.TryLock(s.StripeOf(key)) {
		s.contended.Add(1)
		return false
	}
	s.acquired.Add(1)

	return true
}

// Lock takes key's stripe, spinning until it is free.
func (s *Striped) Lock(key []byte) {
	s.lockStripe(s.StripeOf(key))
}

// Unlock releases key's stripe. The caller must hold it; releasing a stripe
// someone else holds corrupts the protocol silently.
func (s *Striped) Unlock(key []byte) {
	s.locks.Unlock(s.StripeOf(key))
}

// Do runs fn while holding key's stripe. The stripe is released even if fn
// panics.
func (s *Striped) Do(key []byte, fn func()) {
	i := s.StripeOf(key)
	s.lockStripe(i)
	defer s.locks.Unlock(i)
	fn()
}

func (s *Striped) lockStripe(i uint64) {
	if s.locks.TryLock(i) {
		s.acquired.Add(1)
		return
	}

	s.contended.Add(1)
	s.locks.Lock(i)
	s.acquired.Add(1)
}

// Stats is a point-in-time snapshot of guard activity.
type Stats struct {
	// Stripes is the configured stripe count.
	Stripes uint64
	// Acquired counts successful lock acquisitions.
	Acquired uint64
	// Contended counts attempts that found the stripe already held: failed
	// TryLocks plus Locks that had to wait.
	Contended uint64
}

// Stats returns a snapshot of the counters. The counters are read
// independently, so totals race with in-flight operations.
func (s *Striped) Stats() Stats {
	return Stats{
		Stripes:   s.mask + 1,
		Acquired:  s.acquired.Load(),
		Contended: s.contended.Load(),
	}
}

func nextPow2(n uint64) uint64 {
	if n < 2 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}
