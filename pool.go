package pool

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// DefaultBlockSize is used when Options.BlockSize is unset. It matches
// nginx's NGX_DEFAULT_POOL_SIZE.
const DefaultBlockSize = 16 * 1024

// failureThreshold is the number of times a block may be passed over
// during a small-path search before it is retired from future searches.
// A block is retired on the failure that pushes its counter strictly
// above this value - the fifth failure. See growBlock in small.go.
const failureThreshold = 4

// largeScanCap bounds how many large descriptors palloc_large inspects
// looking for a vacant (freed) slot to reuse before giving up and
// allocating a fresh one.
const largeScanCap = 4

// block is one fixed-capacity chunk in the pool's small-path chain.
type block struct {
	buf    []byte
	last   int
	next   *block
	failed int
}

func newBlock(size int) (*block, error) {
	buf, err := alignedAlloc(size, PoolAlignment)
	if err != nil {
		return nil, err
	}
	return &block{buf: buf}, nil
}

func (b *block) cap() int { return len(b.buf) }

// largeDescriptor tracks one oversized allocation living on the Go heap
// outside the block chain. alloc is nil once the slot has been freed.
type largeDescriptor struct {
	alloc []byte
	next  *largeDescriptor
}

// Options configures a new Pool.
type Options struct {
	// BlockSize is the size of every block in the chain, including the
	// first. If <= 0, DefaultBlockSize is used.
	BlockSize int
	// Log receives diagnostic records. If nil, a discarding logger is
	// used and the pool produces no log output.
	Log *slog.Logger
}

// Pool is a region-based allocator: a chain of fixed-size blocks serves
// small bump allocations, a side list tracks large (system-heap)
// allocations, and a cleanup list runs at Destroy. See the package doc
// for the full model. A Pool is single-owner; wrap it in SafePool to
// share it across goroutines.
type Pool struct {
	id          uuid.UUID
	blockSize   int
	maxSmall    int
	current     *block
	blocksHead  *block
	largeHead   *largeDescriptor
	cleanupHead *CleanupNode
	log         *slog.Logger
	destroyed   bool
}

// New creates a Pool with one initial block of Options.BlockSize bytes.
func New(opts Options) (*Pool, error) {
	blockSize := opts.BlockSize
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	log := opts.Log
	if log == nil {
		log = NopLogger()
	}

	b, err := newBlock(blockSize)
	if err != nil {
		return nil, err
	}
	p := &Pool{
		id:         uuid.New(),
		blockSize:  blockSize,
		maxSmall:   computeMaxSmall(blockSize),
		current:    b,
		blocksHead: b,
		log:        log,
	}
	p.debugf("pool created", "block_size", blockSize, "max_small", p.maxSmall)
	return p, nil
}

// computeMaxSmall bounds the small path at whichever is smaller: the
// block size itself, or the system ceiling below. Pool and block
// bookkeeping live in plain Go structs outside the block's byte slice,
// so the whole block is available to the bump cursor.
func computeMaxSmall(blockSize int) int {
	ceiling := systemSmallCeiling()
	if blockSize < ceiling {
		return blockSize
	}
	return ceiling
}

// systemSmallCeiling mirrors ngx_create_pool's NGX_MAX_ALLOC_FROM_POOL
// derivation: one page minus one byte, so a small-path allocation is
// always smaller than a single page.
func systemSmallCeiling() int {
	return pageSize() - 1
}

// ID returns the pool's correlation identifier, attached to every
// diagnostic log record this pool emits.
func (p *Pool) ID() uuid.UUID { return p.id }

// BlockSize returns the block size this pool was constructed with.
func (p *Pool) BlockSize() int { return p.blockSize }

// MaxSmall returns the largest request size served by the small path.
func (p *Pool) MaxSmall() int { return p.maxSmall }

func (p *Pool) mustNotBeDestroyed() {
	if p.destroyed {
		panic(fmt.Sprintf("pool: use of destroyed pool %s", p.id))
	}
}

// Reset returns the pool to a state behaviorally equivalent to a freshly
// constructed pool with the same block size, except that block memory is
// retained (and not rezeroed) rather than released. Large allocations are
// freed; cleanup handlers are not invoked, matching ngx_reset_pool, which
// never touches pool->cleanup.
func (p *Pool) Reset() {
	p.mustNotBeDestroyed()

	for l := p.largeHead; l != nil; l = l.next {
		if l.alloc != nil {
			l.alloc = nil
		}
	}

	for b := p.blocksHead; b != nil; b = b.next {
		b.last = 0
		b.failed = 0
	}

	p.current = p.blocksHead
	p.largeHead = nil
	p.cleanupHead = nil
	p.debugf("pool reset")
}

// Destroy runs cleanup handlers (most-recently-registered first), frees
// large allocations, and frees the block chain. The pool is invalid for
// any further use afterward; calling Destroy a second time panics.
func (p *Pool) Destroy() {
	p.mustNotBeDestroyed()

	for c := p.cleanupHead; c != nil; c = c.next {
		if c.Handler == nil {
			continue
		}
		p.runCleanupHandler(c)
	}

	for l := p.largeHead; l != nil; l = l.next {
		if l.alloc != nil {
			p.debugf("free large", "bytes", len(l.alloc))
			l.alloc = nil
		}
	}

	for b := p.blocksHead; b != nil; b = b.next {
		p.debugf("free block", "unused", b.cap()-b.last)
	}

	p.destroyed = true
	p.blocksHead = nil
	p.current = nil
	p.largeHead = nil
	p.cleanupHead = nil
}

func (p *Pool) runCleanupHandler(c *CleanupNode) {
	defer func() {
		if r := recover(); r != nil {
			p.errorf("cleanup handler panicked", "panic", r)
		}
	}()
	c.Handler(c.Data)
}

// Stats is a point-in-time snapshot of pool usage across its block
// chain, large list, and cleanup list.
type Stats struct {
	NumBlocks           int
	RetiredBlocks       int
	BytesCapacity       int // total small-path capacity across all blocks
	BytesInUse          int // small-path bytes bumped so far
	LargeBytesInUse     int // bytes held by live large allocations
	NumLargeAllocs      int
	NumLargeDescriptors int
	NumCleanups         int
}

// Utilization returns BytesInUse/BytesCapacity, or 0 if capacity is 0.
func (s Stats) Utilization() float64 {
	if s.BytesCapacity == 0 {
		return 0
	}
	return float64(s.BytesInUse) / float64(s.BytesCapacity)
}

// Stats returns a snapshot of the pool's current usage.
func (p *Pool) Stats() Stats {
	var s Stats
	for b := p.blocksHead; b != nil; b = b.next {
		s.NumBlocks++
		s.BytesCapacity += b.cap()
		s.BytesInUse += b.last
		if b.failed > failureThreshold {
			s.RetiredBlocks++
		}
	}
	for l := p.largeHead; l != nil; l = l.next {
		s.NumLargeDescriptors++
		if l.alloc != nil {
			s.NumLargeAllocs++
			s.LargeBytesInUse += len(l.alloc)
		}
	}
	for c := p.cleanupHead; c != nil; c = c.next {
		s.NumCleanups++
	}
	return s
}
