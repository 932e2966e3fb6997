package alloc

import (
	"fmt"

	"github.com/joshuapare/bootmem/internal/layout"
)

// EarlyAllocator is a dual-region bump allocator for the window between
// platform memory discovery and the first real heap. It manages one
// contiguous span from both ends:
//
//   - byteNext starts at Span.Start and moves up as byte allocations are
//     carved off.
//   - pageNext starts at Span.End and moves down as page allocations are
//     carved off.
//
// The free region is always [byteNext, pageNext). Every operation is a
// fixed sequence of comparisons and field updates: no search, no metadata
// in the managed memory, O(1) throughout.
//
// Liveness is inferred from per-region counts of outstanding allocations,
// not from a registry of addresses. When a count returns to zero the
// region's cursor resets to its origin and the whole region is reclaimed
// at once. Until then, freed bytes stay unavailable.
type EarlyAllocator struct {
	span Span

	// byteNext is the byte-region bump cursor: the next free address,
	// monotonically non-decreasing while byte allocations are outstanding.
	byteNext  Addr
	byteCount int

	// pageNext is the page-region cursor, moving down from Span.End.
	pageNext  Addr
	pageCount int

	pageSize uintptr

	// track is nil unless WithTracking was given.
	track *tracker
}

// Option configures an EarlyAllocator at construction.
type Option func(*EarlyAllocator)

// WithTracking attaches a fixed-capacity debug side table that records
// every outstanding allocation and validates deallocation arguments
// exactly. capacity bounds the number of distinct addresses tracked at
// once. Leave tracking off in production builds to preserve the
// zero-metadata design.
func WithTracking(capacity int) Option {
	return func(a *EarlyAllocator) {
		a.track = newTracker(capacity)
	}
}

// New returns an EarlyAllocator with the given page granularity. pageSize
// must be a power of two. The allocator serves nothing until Init hands it
// a span.
func New(pageSize uintptr, opts ...Option) (*EarlyAllocator, error) {
	if !layout.IsPowerOfTwo(pageSize) {
		return nil, fmt.Errorf("%w: page size %#x", ErrBadAlign, pageSize)
	}
	a := &EarlyAllocator{pageSize: pageSize}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Init sets the managed span to [base, base+size) and resets both regions:
// cursors return to their origins and the live counts go to zero. It must
// run before the first allocation. A second call erases all outstanding
// state, so callers must not re-run it while allocations are live.
func (a *EarlyAllocator) Init(base Addr, size uintptr) {
	a.span = Span{Start: base, End: base + Addr(size)}

	a.byteNext = a.span.Start
	a.byteCount = 0
	a.pageNext = a.span.End
	a.pageCount = 0

	if a.track != nil {
		a.track.reset()
	}
}

// AddMemory reports that span extension is unsupported. The early allocator
// tracks exactly one span; multi-span support belongs to the allocators
// that replace it.
func (a *EarlyAllocator) AddMemory(base Addr, size uintptr) error {
	return fmt.Errorf("%w: cannot extend span with [%#x, %#x)",
		ErrUnsupported, base, uintptr(base)+size)
}

// Span returns the managed span set by Init.
func (a *EarlyAllocator) Span() Span {
	return a.span
}

// AllocBytes carves size bytes aligned to align off the bottom of the free
// region. align must be a power of two. The returned address is the byte
// cursor rounded up to align; on success the cursor advances past the new
// allocation. A failed call changes nothing.
func (a *EarlyAllocator) AllocBytes(size, align uintptr) (Addr, error) {
	if !layout.IsPowerOfTwo(align) {
		return 0, fmt.Errorf("%w: %#x", ErrBadAlign, align)
	}

	start := Addr(layout.AlignUp(uintptr(a.byteNext), align))
	end := start + Addr(size)
	if start < a.byteNext || end > a.pageNext || end < start {
		return 0, fmt.Errorf("%w: need %d bytes, %d available",
			ErrNoMemory, size, a.AvailableBytes())
	}

	// Record before committing so a full tracker leaves cursors untouched.
	if a.track != nil {
		if err := a.track.note(start, size); err != nil {
			return 0, err
		}
	}

	a.byteCount++
	a.byteNext = end
	return start, nil
}

// DeallocBytes returns the byte allocation at addr. No memory comes back
// until the count of outstanding byte allocations reaches zero, at which
// point the byte cursor snaps back to the start of the span and the whole
// region is reclaimed.
//
// The allocator keeps no registry of allocations, so addr and size are
// taken on trust beyond a bounds check against the managed span (exact
// matching requires WithTracking). Calling this with no byte allocations
// outstanding indicates caller corruption and panics.
func (a *EarlyAllocator) DeallocBytes(addr Addr, size uintptr) error {
	if a.byteCount == 0 {
		panic("alloc: byte deallocation with no outstanding allocations")
	}
	// A zero-size allocation made at an exhausted cursor legally sits at
	// span.End, so the degenerate interval [End, End) is in bounds.
	end := addr + Addr(size)
	if addr < a.span.Start || end > a.span.End || end < addr {
		return fmt.Errorf("%w: [%#x, %#x) outside managed span",
			ErrBadFree, addr, uintptr(addr)+size)
	}
	if a.track != nil {
		if err := a.track.release(addr, size); err != nil {
			return err
		}
	}

	a.byteCount--
	if a.byteCount == 0 {
		a.byteNext = a.span.Start
	}
	return nil
}

// AllocPages carves count pages off the top of the free region. The
// candidate address is the page cursor minus count pages, rounded down to
// alignPow2 (a power of two). On success the page cursor moves down to the
// returned address. A failed call changes nothing.
func (a *EarlyAllocator) AllocPages(count int, alignPow2 uintptr) (Addr, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadCount, count)
	}
	if !layout.IsPowerOfTwo(alignPow2) {
		return 0, fmt.Errorf("%w: %#x", ErrBadAlign, alignPow2)
	}

	need := uintptr(count) * a.pageSize
	if need/a.pageSize != uintptr(count) || need > uintptr(a.pageNext-a.byteNext) {
		return 0, fmt.Errorf("%w: need %d pages, %d available",
			ErrNoMemory, count, a.AvailablePages())
	}
	start := Addr(layout.AlignDown(uintptr(a.pageNext)-need, alignPow2))
	if start < a.byteNext {
		return 0, fmt.Errorf("%w: need %d pages, %d available",
			ErrNoMemory, count, a.AvailablePages())
	}

	if a.track != nil {
		if err := a.track.note(start, need); err != nil {
			return 0, err
		}
	}

	a.pageCount++
	a.pageNext = start
	return start, nil
}

// DeallocPages returns the page allocation at addr. Individual page
// allocations never rejoin the free region: reclaim is all-or-nothing,
// resetting the page cursor to the end of the span once the last
// outstanding page allocation is returned. Calling this with no page
// allocations outstanding panics.
func (a *EarlyAllocator) DeallocPages(addr Addr, count int) error {
	if a.pageCount == 0 {
		panic("alloc: page deallocation with no outstanding allocations")
	}
	if count <= 0 {
		return fmt.Errorf("%w: %d", ErrBadCount, count)
	}
	size := uintptr(count) * a.pageSize
	end := addr + Addr(size)
	if addr < a.span.Start || end > a.span.End || end < addr {
		return fmt.Errorf("%w: [%#x, %#x) outside managed span",
			ErrBadFree, addr, uintptr(addr)+size)
	}
	if a.track != nil {
		if err := a.track.release(addr, size); err != nil {
			return err
		}
	}

	a.pageCount--
	if a.pageCount == 0 {
		a.pageNext = a.span.End
	}
	return nil
}

// PageSize returns the page granularity fixed at construction.
func (a *EarlyAllocator) PageSize() uintptr {
	return a.pageSize
}

// TotalBytes returns the size of the managed span.
func (a *EarlyAllocator) TotalBytes() uintptr {
	return a.span.Size()
}

// UsedBytes returns the bytes consumed by the byte region, including
// alignment padding.
func (a *EarlyAllocator) UsedBytes() uintptr {
	return uintptr(a.byteNext - a.span.Start)
}

// AvailableBytes returns the size of the free gap between the two cursors.
func (a *EarlyAllocator) AvailableBytes() uintptr {
	return uintptr(a.pageNext - a.byteNext)
}

// TotalPages returns the whole pages the span could hold.
func (a *EarlyAllocator) TotalPages() int {
	return int(a.span.Size() / a.pageSize)
}

// UsedPages returns the count of outstanding page allocations. This is a
// live count, not a distance: two outstanding allocations report 2
// whatever their sizes.
func (a *EarlyAllocator) UsedPages() int {
	return a.pageCount
}

// AvailablePages returns the whole pages that fit in the free gap.
func (a *EarlyAllocator) AvailablePages() int {
	return int(uintptr(a.pageNext-a.byteNext) / a.pageSize)
}

// Compile-time capability checks
var (
	_ BaseAllocator = (*EarlyAllocator)(nil)
	_ ByteAllocator = (*EarlyAllocator)(nil)
	_ PageAllocator = (*EarlyAllocator)(nil)
)
