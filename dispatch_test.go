package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocRoutesBySizeThreshold(t *testing.T) {
	p, err := New(Options{BlockSize: 4096})
	require.NoError(t, err)
	defer p.Destroy()

	small, err := p.Alloc(p.MaxSmall())
	require.NoError(t, err)
	assert.Len(t, small, p.MaxSmall())
	assert.Equal(t, 0, p.Stats().NumLargeDescriptors)

	large, err := p.Alloc(p.MaxSmall() + 1)
	require.NoError(t, err)
	assert.Len(t, large, p.MaxSmall()+1)
	assert.Equal(t, 1, p.Stats().NumLargeDescriptors)
}

func TestAllocUnalignedRoutesBySizeThreshold(t *testing.T) {
	p, err := New(Options{BlockSize: 4096})
	require.NoError(t, err)
	defer p.Destroy()

	_, err = p.AllocUnaligned(p.MaxSmall())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stats().NumLargeDescriptors)

	_, err = p.AllocUnaligned(p.MaxSmall() + 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats().NumLargeDescriptors)
}

func TestCallocRoutesLargeAndZeroes(t *testing.T) {
	p, err := New(Options{BlockSize: 4096})
	require.NoError(t, err)
	defer p.Destroy()

	buf, err := p.Calloc(p.MaxSmall() + 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stats().NumLargeDescriptors)
	for _, b := range buf {
		assert.Equal(t, byte(0), b)
	}
}

func TestDispatchPanicsAfterDestroy(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)
	p.Destroy()

	assert.Panics(t, func() { _, _ = p.AllocUnaligned(8) })
	assert.Panics(t, func() { _, _ = p.Calloc(8) })
	assert.Panics(t, func() { _, _ = p.AllocAligned(8, 16) })
}
