package alloc

import (
	"fmt"

	"github.com/joshuapare/bootmem/pkg/fixedmap"
)

// tracker is the optional side table behind WithTracking. It records the
// size of every outstanding allocation keyed by address, so deallocations
// can be matched exactly instead of taken on trust.
//
// Entries are never removed: a release marks its entry dead in place, and
// re-allocating the same address after a bulk reset revives it. The table
// therefore holds one slot per distinct address handed out since the last
// Init, which is what WithTracking's capacity must cover.
//
// Zero-size allocations do not advance the cursor, so several of them can
// legally be live at one address, alongside at most one sized allocation
// (a sized allocation moves the cursor past the address, and the cursor
// only comes back after a bulk reset has retired everything there). Each
// entry keeps a count of live zero-size allocations next to the single
// sized one.
type tracker struct {
	capacity int
	table    *fixedmap.Map[Addr, trackEntry]
}

type trackEntry struct {
	// size and live describe the sized allocation at this address, if any.
	size uintptr
	live bool

	// zeros counts live zero-size allocations at this address.
	zeros int
}

func newTracker(capacity int) *tracker {
	t := &tracker{capacity: capacity}
	t.reset()
	return t
}

func (t *tracker) reset() {
	t.table = fixedmap.New[Addr, trackEntry](t.capacity, func(a Addr) uint64 {
		return fixedmap.HashUint64(uint64(a))
	})
}

// note records an allocation about to be handed out. It runs before the
// allocator commits any state, so a full table fails the allocation cleanly.
func (t *tracker) note(addr Addr, size uintptr) error {
	e, _ := t.table.Get(addr)

	if size == 0 {
		e.zeros++
	} else {
		if e.live {
			// Two live sized allocations at one address means the
			// accounting itself is broken, not the caller.
			panic(fmt.Sprintf("alloc: address %#x handed out twice", uintptr(addr)))
		}
		e.size, e.live = size, true
	}

	if _, _, err := t.table.Insert(addr, e); err != nil {
		return fmt.Errorf("%w: capacity %d", ErrTrackerFull, t.capacity)
	}
	return nil
}

// release validates a deallocation against the recorded entry and marks it
// dead. The allocator's counts stay untouched when this fails.
func (t *tracker) release(addr Addr, size uintptr) error {
	e, ok := t.table.Get(addr)
	if !ok {
		return fmt.Errorf("%w: %#x is not an outstanding allocation", ErrBadFree, addr)
	}

	if size == 0 {
		if e.zeros == 0 {
			return fmt.Errorf("%w: %#x has no outstanding zero-size allocation",
				ErrBadFree, addr)
		}
		e.zeros--
	} else {
		if !e.live {
			return fmt.Errorf("%w: %#x is not an outstanding allocation", ErrBadFree, addr)
		}
		if e.size != size {
			return fmt.Errorf("%w: %#x freed with %d bytes, allocated with %d",
				ErrBadFree, addr, size, e.size)
		}
		e.live = false
	}

	// Key already present, so Insert updates in place and cannot fail.
	t.table.Insert(addr, e)
	return nil
}
