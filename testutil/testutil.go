package testutil

import (
	"math"
	"math/rand"
	"sync"
)

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
	r.rand.Seed(r.seed)
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

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Uint64n returns a pseudo-random uint64 in [0,n). It panics if n is 0.
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uint64nLocked(n)
}

// uint64nLocked is the internal implementation (caller must hold lock).
func (r *RNG) uint64nLocked(n uint64) uint64 {
	if n == 0 {
		panic("testutil: Uint64n with n == 0")
	}
	// Modulo bias does not matter for test data.
	return r.rand.Uint64() % n
}

// Perm returns a pseudo-random permutation of the integers [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Indexes returns num pseudo-random bit indexes in [0,bits).
// Locks only once per call (preferred over calling Uint64n in a loop).
func (r *RNG) Indexes(num int, bits uint64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint64, num)
	for i := range num {
		out[i] = r.uint64nLocked(bits)
	}

	return out
}

// Words returns num pseudo-random 64-bit words, e.g. for seeding a vector
// from pre-packed storage.
func (r *RNG) Words(num int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint64, num)
	for i := range num {
		out[i] = r.rand.Uint64()
	}

	return out
}

// Keys returns num pseudo-random byte keys of the given length.
// Uses a single backing array for efficiency.
func (r *RNG) Keys(num, length int) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]byte, num*length)
	_, _ = r.rand.Read(data) // Read on math/rand never fails

	keys := make([][]byte, num)
	for i := range num {
		keys[i] = data[i*length : (i+1)*length]
	}

	return keys
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
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

	// Normalization constant (harmonic number with exponent s).
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Inverse transform sampling.
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// ZipfIndexes returns num bit indexes in [0,bits) with Zipfian frequency,
// so a handful of hot bits absorb most of the accesses (when s=1.5).
// Useful for driving contention onto a few words.
func (r *RNG) ZipfIndexes(num int, bits uint64, s float64) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint64, num)
	for i := range num {
		out[i] = uint64(r.zipfLocked(int(bits), s))
	}

	return out
}
