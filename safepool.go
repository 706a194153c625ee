package pool

import "sync"

// SafePool is a mutex-protected wrapper around Pool for callers that
// must share one pool across goroutines. Every operation pays the cost
// of a lock; a Pool is normally owned by one goroutine at a time, so
// prefer one Pool per goroutine/request when possible.
type SafePool struct {
	mu sync.Mutex
	p  *Pool
}

// NewSafe creates a thread-safe pool with the given options.
func NewSafe(opts Options) (*SafePool, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	return &SafePool{p: p}, nil
}

func (s *SafePool) Alloc(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Alloc(size)
}

func (s *SafePool) AllocUnaligned(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.AllocUnaligned(size)
}

func (s *SafePool) Calloc(size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Calloc(size)
}

func (s *SafePool) AllocAligned(size, alignment int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.AllocAligned(size, alignment)
}

func (s *SafePool) Free(ptr []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Free(ptr)
}

func (s *SafePool) RegisterCleanup(dataSize int) (*CleanupNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.RegisterCleanup(dataSize)
}

func (s *SafePool) RegisterCloseFileCleanup(fd int) (*CleanupNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.RegisterCloseFileCleanup(fd)
}

func (s *SafePool) RegisterDeleteFileCleanup(fd int, name string) (*CleanupNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.RegisterDeleteFileCleanup(fd, name)
}

func (s *SafePool) RunCleanupFile(fd int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.RunCleanupFile(fd)
}

func (s *SafePool) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Reset()
}

func (s *SafePool) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Destroy()
}

func (s *SafePool) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Stats()
}

func (s *SafePool) MaxSmall() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.MaxSmall()
}
