// Package pool implements a region-based memory pool allocator modeled on
// nginx's ngx_pool_t: a chain of fixed-size blocks serves small bump
// allocations, a separate list tracks oversized ("large") allocations on
// the system heap, and a cleanup list runs registered callbacks when the
// pool is destroyed.
//
// # Overview
//
// A Pool is built for request-scoped lifetimes: allocate freely for the
// duration of one unit of work (an HTTP request, a connection, a config
// parse), then call Destroy once and reclaim everything in one pass. Reset
// returns a pool to a freshly-constructed state while keeping its block
// memory for reuse, which is cheaper than Destroy+New when the pool will
// immediately be reused for the next unit of work.
//
// # Basic usage
//
//	p, err := pool.New(pool.Options{BlockSize: 4096})
//	if err != nil {
//	    // ErrOOM
//	}
//	defer p.Destroy()
//
//	buf, err := p.Alloc(128)
//	if err != nil {
//	    // ErrOOM
//	}
//
//	big, err := p.Alloc(1 << 20) // routed to the large path automatically
//
//	p.Reset() // O(blocks) cleanup, block memory retained for the next request
//
// # Allocation paths
//
// Requests at or below Pool.MaxSmall() are served from the block chain by
// bumping a per-block cursor; requests above it go to the system heap and
// are tracked by a large-allocation descriptor. Pool.Alloc aligns to the
// platform word size; Pool.AllocUnaligned does not. Pool.Calloc zero-fills
// the result.
//
// # Thread safety
//
// A Pool is single-owner: no method is safe to call concurrently without
// external synchronization. SafePool wraps a Pool behind a mutex for
// callers that need to share one pool across goroutines.
//
// # Cleanup
//
// RegisterCleanup attaches a (handler, data) pair invoked once, in reverse
// registration order, at Destroy. RegisterCloseFileCleanup and
// RegisterDeleteFileCleanup register bundled handlers for the common case of releasing a file descriptor
// (and optionally unlinking its path) when the pool dies.
package pool
