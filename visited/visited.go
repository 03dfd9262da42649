package visited

import (
	"github.com/accopeland/megahit/bitvec"
)

// Set tracks which ids a concurrent traversal has touched.
type Set struct {
	flags *bitvec.AtomicBitVector
}

// New creates a visited set for ids in [0, capacity).
func New(capacity uint64) *Set {
	return &Set{flags: bitvec.New(capacity)}
}

// Cap returns the number of trackable ids.
func (s *Set) Cap() uint64 {
	return s.flags.Len()
}

// Seen reports whether id has been visited.
func (s *Set) Seen(id uint64) bool {
	return s.flags.Test(id)
}

// Visit marks id as visited. Idempotent.
func (s *Set) Visit(id uint64) {
	s.flags.Set(id)
}

// TryVisit claims id for the caller. It returns true iff id was unvisited and
// this call marked it, so exactly one of any number of concurrent claimants
// wins. The loser sees false and must not process id.
func (s *Set) TryVisit(id uint64) bool {
	return s.flags.TryLock(id)
}

// Reset clears all marks in place, keeping the capacity. The caller must
// guarantee no traversal is running.
func (s *Set) Reset() {
	s.flags.Clear()
}

// ResetCapacity discards the marks and resizes the set to track ids in
// [0, capacity). Same exclusivity requirement as Reset.
func (s *Set) ResetCapacity(capacity uint64) {
	s.flags.Reset(capacity)
}
