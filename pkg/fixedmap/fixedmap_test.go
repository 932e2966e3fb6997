package fixedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHashString checks the FNV-1a parameters against known vectors.
func TestHashString(t *testing.T) {
	assert.Equal(t, uint64(0xcbf29ce484222325), HashString(""), "offset basis")
	assert.Equal(t, uint64(0xaf63dc4c8601ec8c), HashString("a"))
	assert.Equal(t, uint64(0x85944171f73967e8), HashString("foobar"))
}

// TestMap_InsertGet tests basic storage and lookup.
func TestMap_InsertGet(t *testing.T) {
	m := New[string, int](8, HashString)

	_, replaced, err := m.Insert("one", 1)
	require.NoError(t, err)
	assert.False(t, replaced)

	_, _, err = m.Insert("two", 2)
	require.NoError(t, err)

	v, ok := m.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = m.Get("two")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("three")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 8, m.Cap())
}

// TestMap_Update tests that inserting an existing key replaces the value
// and reports the previous one.
func TestMap_Update(t *testing.T) {
	m := New[string, int](4, HashString)

	_, _, err := m.Insert("k", 1)
	require.NoError(t, err)

	prev, replaced, err := m.Insert("k", 2)
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, 1, prev)

	v, _ := m.Get("k")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len(), "update must not consume a slot")
}

// TestMap_LinearProbing forces every key into one bucket and checks that
// probing still finds each of them.
func TestMap_LinearProbing(t *testing.T) {
	collide := func(string) uint64 { return 0 }
	m := New[string, int](8, collide)

	keys := []string{"a", "b", "c", "d", "e"}
	for i, k := range keys {
		_, _, err := m.Insert(k, i)
		require.NoError(t, err, "insert %q", k)
	}
	for i, k := range keys {
		v, ok := m.Get(k)
		require.True(t, ok, "get %q", k)
		assert.Equal(t, i, v)
	}
}

// TestMap_Full tests that a full map rejects new keys but still updates
// existing ones.
func TestMap_Full(t *testing.T) {
	m := New[string, int](2, HashString)

	_, _, err := m.Insert("a", 1)
	require.NoError(t, err)
	_, _, err = m.Insert("b", 2)
	require.NoError(t, err)

	_, _, err = m.Insert("c", 3)
	assert.ErrorIs(t, err, ErrFull)
	_, ok := m.Get("c")
	assert.False(t, ok)

	_, replaced, err := m.Insert("a", 10)
	require.NoError(t, err, "updates must succeed on a full map")
	assert.True(t, replaced)
}

// TestMap_Range tests iteration over stored entries.
func TestMap_Range(t *testing.T) {
	m := New[string, int](16, HashString)
	want := map[string]int{"x": 1, "y": 2, "z": 3}
	for k, v := range want {
		_, _, err := m.Insert(k, v)
		require.NoError(t, err)
	}

	got := map[string]int{}
	m.Range(func(k string, v int) bool {
		got[k] = v
		return true
	})
	assert.Equal(t, want, got)

	// Early stop.
	calls := 0
	m.Range(func(string, int) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

// TestMap_IntegerKeys exercises the uint64 hasher the allocator's side
// table relies on.
func TestMap_IntegerKeys(t *testing.T) {
	m := New[uintptr, string](32, func(a uintptr) uint64 {
		return HashUint64(uint64(a))
	})

	for i := uintptr(0); i < 20; i++ {
		_, _, err := m.Insert(0x8000_0000+i*64, "entry")
		require.NoError(t, err)
	}
	assert.Equal(t, 20, m.Len())

	_, ok := m.Get(0x8000_0000 + 5*64)
	assert.True(t, ok)
	_, ok = m.Get(0x8000_0000 + 21*64)
	assert.False(t, ok)
}
