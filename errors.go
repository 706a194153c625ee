package pool

import "errors"

// ErrOOM is returned by any allocation entry point when the underlying
// system allocator fails. It never leaves the pool in a state worse than
// before the call: allocation failures are not retried and do not
// partially mutate pool bookkeeping beyond whatever the in-flight
// operation had already committed.
var ErrOOM = errors.New("pool: out of memory")

// ErrNotFound is returned by Free when the pointer was not tracked in the
// pool's large-allocation list. It is informational, not an error
// condition the caller needs to recover from.
var ErrNotFound = errors.New("pool: pointer not tracked by this pool")
