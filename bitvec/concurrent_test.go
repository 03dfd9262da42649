package bitvec

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/accopeland/megahit/testutil"
)

func TestTryLockMutualExclusion(t *testing.T) {
	v := New(64)
	const contenders = 16

	// One round per bit so a scheduling fluke in one round cannot hide a bug.
	for round := uint64(0); round < 64; round++ {
		start := make(chan struct{})
		var wins atomic.Int32

		var g errgroup.Group
		for c := 0; c < contenders; c++ {
			g.Go(func() error {
				<-start
				if v.TryLock(round) {
					wins.Add(1)
				}
				return nil
			})
		}
		close(start)
		require.NoError(t, g.Wait())

		assert.Equal(t, int32(1), wins.Load(), "bit %d", round)
	}
}

func TestLockMutualExclusion(t *testing.T) {
	const (
		workers = 8
		iters   = 2500
		bit     = 50
	)
	v := New(100)
	counter := 0 // deliberately unsynchronized; the bit lock is the only guard

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for k := 0; k < iters; k++ {
				v.Lock(bit)
				counter++
				v.Unlock(bit)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, workers*iters, counter)
}

func TestAdjacentBitsIndependent(t *testing.T) {
	v := New(WordBits) // every goroutine contends on the same word
	const iters = 2000

	var g errgroup.Group
	for bit := uint64(0); bit < WordBits; bit++ {
		g.Go(func() error {
			for k := 0; k < iters; k++ {
				v.Set(bit)
				if !v.Test(bit) {
					return fmt.Errorf("bit %d: set lost", bit)
				}
				v.Unset(bit)
				if v.Test(bit) {
					return fmt.Errorf("bit %d: unset lost", bit)
				}
			}
			if bit%2 == 0 {
				v.Set(bit)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for bit := uint64(0); bit < WordBits; bit++ {
		assert.Equal(t, bit%2 == 0, v.Test(bit), "bit %d", bit)
	}
}

func TestSetPublishesPriorWrites(t *testing.T) {
	const flags = 64
	v := New(flags)
	payload := make([]uint64, flags)

	var g errgroup.Group
	g.Go(func() error {
		for i := uint64(0); i < flags; i++ {
			payload[i] = i * 31
			v.Set(i)
		}
		return nil
	})
	g.Go(func() error {
		for i := uint64(0); i < flags; i++ {
			for !v.Test(i) {
				runtime.Gosched()
			}
			if payload[i] != i*31 {
				return fmt.Errorf("flag %d observed before its payload", i)
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())
}

func TestEveryBitClaimedExactlyOnce(t *testing.T) {
	const (
		bits    = 4096
		workers = 8
	)
	v := New(bits)
	var claimed atomic.Uint64

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			rng := testutil.NewRNG(int64(w) + 99)
			for _, i := range rng.Perm(bits) {
				if v.TryLock(uint64(i)) {
					claimed.Add(1)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, uint64(bits), claimed.Load())
	for i := uint64(0); i < bits; i++ {
		if !v.Test(i) {
			t.Fatalf("bit %d unclaimed", i)
		}
	}
}

func TestConcurrentSetDisjointRanges(t *testing.T) {
	const (
		workers = 16
		span    = 100 // not word-aligned, so neighbors share boundary words
	)
	v := New(workers * span)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			lo := uint64(w) * span
			for i := lo; i < lo+span; i++ {
				v.Set(i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := uint64(0); i < v.Len(); i++ {
		if !v.Test(i) {
			t.Fatalf("bit %d missing after disjoint fill", i)
		}
	}
}
