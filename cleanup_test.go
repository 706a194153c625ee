package pool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCleanupRunsInReverseRegistrationOrder checks that cleanup
// handlers fire in reverse order of registration, mirroring
// ngx_destroy_pool walking pool->cleanup head-first over a list built
// by prepending.
func TestCleanupRunsInReverseRegistrationOrder(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		node, err := p.RegisterCleanup(0)
		require.NoError(t, err)
		node.Handler = func([]byte) { order = append(order, i) }
	}

	p.Destroy()
	assert.Equal(t, []int{2, 1, 0}, order)
}

// TestRegisterCleanupOversizedDataUsesLargePath checks that a cleanup
// payload bigger than MaxSmall still succeeds by going through the
// large path instead of failing the way a plain small-path allocation
// would.
func TestRegisterCleanupOversizedDataUsesLargePath(t *testing.T) {
	p, err := New(Options{BlockSize: 256})
	require.NoError(t, err)
	defer p.Destroy()

	before := p.Stats().NumLargeDescriptors
	node, err := p.RegisterCleanup(p.MaxSmall() + 1)
	require.NoError(t, err)
	assert.Len(t, node.Data, p.MaxSmall()+1)
	assert.Equal(t, before+1, p.Stats().NumLargeDescriptors)
}

func TestCleanupDataIsAccessibleToHandler(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)

	node, err := p.RegisterCleanup(8)
	require.NoError(t, err)
	require.Len(t, node.Data, 8)

	copy(node.Data, []byte("deadbeef"))
	var seen []byte
	node.Handler = func(data []byte) { seen = append([]byte{}, data...) }

	p.Destroy()
	assert.Equal(t, []byte("deadbeef"), seen)
}

func TestResetDoesNotRunCleanupHandlers(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)
	defer p.Destroy()

	ran := false
	node, err := p.RegisterCleanup(0)
	require.NoError(t, err)
	node.Handler = func([]byte) { ran = true }

	p.Reset()
	assert.False(t, ran)
	assert.Nil(t, p.cleanupHead)
}

func TestCloseFileCleanupClosesOnDestroy(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "pool-cleanup-*")
	require.NoError(t, err)
	defer f.Close()

	p, err := New(Options{})
	require.NoError(t, err)

	_, err = p.RegisterCloseFileCleanup(int(f.Fd()))
	require.NoError(t, err)

	p.Destroy()

	_, err = f.WriteString("x")
	assert.Error(t, err)
}

func TestDeleteFileCleanupRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.tmp")
	f, err := os.Create(path)
	require.NoError(t, err)

	p, err := New(Options{})
	require.NoError(t, err)

	_, err = p.RegisterDeleteFileCleanup(int(f.Fd()), path)
	require.NoError(t, err)

	p.Destroy()

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

// TestRunCleanupFileTargetsSingleHandler checks that running the
// cleanup for one fd only fires that fd's close-file handler and
// leaves the rest registered for Destroy.
func TestRunCleanupFileTargetsSingleHandler(t *testing.T) {
	fa, err := os.CreateTemp(t.TempDir(), "pool-a-*")
	require.NoError(t, err)
	defer fa.Close()
	fb, err := os.CreateTemp(t.TempDir(), "pool-b-*")
	require.NoError(t, err)
	defer fb.Close()

	p, err := New(Options{})
	require.NoError(t, err)
	defer p.Destroy()

	_, err = p.RegisterCloseFileCleanup(int(fa.Fd()))
	require.NoError(t, err)
	_, err = p.RegisterCloseFileCleanup(int(fb.Fd()))
	require.NoError(t, err)

	p.RunCleanupFile(int(fa.Fd()))

	_, err = fa.WriteString("x")
	assert.Error(t, err)
	_, err = fb.WriteString("x")
	assert.NoError(t, err)
}

func TestCleanupHandlerPanicIsContainedByDestroy(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)

	node, err := p.RegisterCleanup(0)
	require.NoError(t, err)
	node.Handler = func([]byte) { panic("boom") }

	assert.NotPanics(t, func() { p.Destroy() })
}
