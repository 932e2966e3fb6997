package alloc

import "errors"

var (
	// ErrNoMemory indicates a request would push the byte cursor past the
	// page cursor (or vice versa). The failed call leaves all state intact.
	ErrNoMemory = errors.New("alloc: out of memory")

	// ErrUnsupported indicates an operation the early allocator does not
	// implement, such as extending the managed span.
	ErrUnsupported = errors.New("alloc: unsupported operation")

	// ErrBadAlign indicates an alignment or page size that is not a power
	// of two.
	ErrBadAlign = errors.New("alloc: alignment must be a power of two")

	// ErrBadCount indicates a non-positive page count.
	ErrBadCount = errors.New("alloc: page count must be positive")

	// ErrBadFree indicates a deallocation whose address or size does not
	// match an outstanding allocation.
	ErrBadFree = errors.New("alloc: bad free")

	// ErrTrackerFull indicates the optional debug side table ran out of
	// slots. Size WithTracking for the peak number of distinct addresses.
	ErrTrackerFull = errors.New("alloc: allocation tracker full")
)
