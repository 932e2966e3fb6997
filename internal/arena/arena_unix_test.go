//go:build unix

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReserve tests mapping, writability, and release.
func TestReserve(t *testing.T) {
	data, release, err := Reserve(1 << 16)
	require.NoError(t, err, "Reserve should succeed")
	require.Len(t, data, 1<<16)

	base := Base(data)
	assert.NotZero(t, base, "mapping should have a real address")

	// Anonymous mappings are writable and zero-filled.
	assert.Zero(t, data[0])
	data[0] = 0xAA
	data[len(data)-1] = 0x55
	assert.Equal(t, byte(0xAA), data[0])

	require.NoError(t, release())
	assert.NoError(t, release(), "double release is a no-op")
}

// TestReserve_BadSize tests rejection of non-positive sizes.
func TestReserve_BadSize(t *testing.T) {
	_, _, err := Reserve(0)
	assert.Error(t, err)
	_, _, err = Reserve(-4096)
	assert.Error(t, err)
}

// TestBase_Empty tests the empty-slice guard.
func TestBase_Empty(t *testing.T) {
	assert.Zero(t, Base(nil))
	assert.Zero(t, Base([]byte{}))
}
