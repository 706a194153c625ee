package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafePoolConcurrentAllocations(t *testing.T) {
	s, err := NewSafe(Options{BlockSize: 4096})
	require.NoError(t, err)
	defer s.Destroy()

	const goroutines = 16
	const perGoroutine = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				buf, err := s.Alloc(32)
				assert.NoError(t, err)
				assert.Len(t, buf, 32)
			}
		}()
	}
	wg.Wait()

	stats := s.Stats()
	assert.GreaterOrEqual(t, stats.BytesInUse, goroutines*perGoroutine*32)
}

func TestSafePoolResetAndStats(t *testing.T) {
	s, err := NewSafe(Options{BlockSize: 4096})
	require.NoError(t, err)
	defer s.Destroy()

	_, err = s.Alloc(64)
	require.NoError(t, err)
	s.Reset()

	stats := s.Stats()
	assert.Equal(t, 0, stats.BytesInUse)
}

func TestSafePoolMaxSmallMatchesUnderlyingPool(t *testing.T) {
	s, err := NewSafe(Options{BlockSize: 256})
	require.NoError(t, err)
	defer s.Destroy()

	assert.Equal(t, s.p.MaxSmall(), s.MaxSmall())
}
