// Package fixedmap implements a fixed-capacity hash map with open
// addressing and linear probing. Capacity is set once at construction and
// never grows; keys are never removed. That makes the map allocation-free
// after construction, which is what its boot-time users need: all storage
// is carved out up front, and no operation can trigger a resize while the
// heap is not yet trustworthy.
package fixedmap

import "errors"

// ErrFull indicates an insert found no free slot. The map does not resize;
// callers must size capacity for their peak key count.
var ErrFull = errors.New("fixedmap: map is full")

// FNV-1a 64-bit parameters.
const (
	fnvOffset64 = 0xcbf29ce484222325
	fnvPrime64  = 0x100000001b3
)

// HashString returns the 64-bit FNV-1a hash of s.
func HashString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// HashUint64 returns the 64-bit FNV-1a hash of v's little-endian bytes.
func HashUint64(v uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime64
		v >>= 8
	}
	return h
}

type slot[K comparable, V any] struct {
	key   K
	value V
	used  bool
}

// Map is a fixed-capacity hash map. The zero value is not usable; construct
// with New.
type Map[K comparable, V any] struct {
	slots []slot[K, V]
	hash  func(K) uint64
	count int
}

// New returns a map with room for capacity entries, using hash to place
// keys. capacity must be positive.
func New[K comparable, V any](capacity int, hash func(K) uint64) *Map[K, V] {
	if capacity <= 0 {
		panic("fixedmap: capacity must be positive")
	}
	return &Map[K, V]{
		slots: make([]slot[K, V], capacity),
		hash:  hash,
	}
}

// Insert stores v under k. When k is already present its value is replaced
// and the previous value returned. Inserting a new key into a full map
// returns ErrFull and changes nothing.
func (m *Map[K, V]) Insert(k K, v V) (prev V, replaced bool, err error) {
	idx := int(m.hash(k) % uint64(len(m.slots)))

	for range m.slots {
		s := &m.slots[idx]
		switch {
		case s.used && s.key == k:
			prev, s.value = s.value, v
			return prev, true, nil
		case s.used:
			// Collision: probe the next slot.
			idx = (idx + 1) % len(m.slots)
		default:
			s.key, s.value, s.used = k, v, true
			m.count++
			return prev, false, nil
		}
	}

	return prev, false, ErrFull
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	idx := int(m.hash(k) % uint64(len(m.slots)))

	for range m.slots {
		s := &m.slots[idx]
		switch {
		case s.used && s.key == k:
			return s.value, true
		case s.used:
			idx = (idx + 1) % len(m.slots)
		default:
			// An empty slot ends the probe chain: k was never inserted.
			var zero V
			return zero, false
		}
	}

	var zero V
	return zero, false
}

// Len returns the number of stored entries.
func (m *Map[K, V]) Len() int {
	return m.count
}

// Cap returns the fixed capacity.
func (m *Map[K, V]) Cap() int {
	return len(m.slots)
}

// Range calls fn for each entry in slot order until fn returns false.
func (m *Map[K, V]) Range(fn func(k K, v V) bool) {
	for i := range m.slots {
		if !m.slots[i].used {
			continue
		}
		if !fn(m.slots[i].key, m.slots[i].value) {
			return
		}
	}
}
