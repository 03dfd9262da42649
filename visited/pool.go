package visited

import "sync"

// DefaultPoolOptions are the default options for a Pool.
var DefaultPoolOptions = PoolOptions{
	RetainFactor: 10,
}

// PoolOptions configures a Pool.
type PoolOptions struct {
	// RetainFactor bounds how oversized a returned Set may be, as a multiple
	// of the pool capacity. Put drops larger sets for the garbage collector
	// so one big traversal does not pin memory forever.
	RetainFactor uint64
}

// Pool recycles visited sets across traversals. Steady-state Get/Put does not
// allocate: sets come back cleared, not reallocated.
type Pool struct {
	capacity    uint64
	maxRetained uint64
	pool        sync.Pool
}

// NewPool creates a pool handing out visited sets with at least the given
// capacity.
func NewPool(capacity uint64, optFns ...func(o *PoolOptions)) *Pool {
	opts := DefaultPoolOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.RetainFactor == 0 {
		opts.RetainFactor = DefaultPoolOptions.RetainFactor
	}

	p := &Pool{
		capacity:    capacity,
		maxRetained: capacity * opts.RetainFactor,
	}
	p.pool.New = func() interface{} {
		return New(capacity)
	}

	return p
}

// Get returns a cleared Set with capacity at least the pool capacity.
func (p *Pool) Get() *Set {
	s := p.pool.Get().(*Set)
	if s.Cap() < p.capacity {
		s.ResetCapacity(p.capacity)
	} else {
		s.Reset()
	}

	return s
}

// Put returns s to the pool for reuse.
func (p *Pool) Put(s *Set) {
	if s == nil || s.Cap() > p.maxRetained {
		return
	}
	p.pool.Put(s)
}
