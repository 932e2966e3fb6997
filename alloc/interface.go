package alloc

// BaseAllocator is the lifecycle capability shared by every allocator stage.
type BaseAllocator interface {
	// Init hands the allocator its managed span. It must be called before
	// the first allocation. Calling it again erases all outstanding state.
	Init(base Addr, size uintptr)

	// AddMemory offers an additional region to manage. Implementations that
	// track a single fixed span report ErrUnsupported and leave their state
	// untouched.
	AddMemory(base Addr, size uintptr) error
}

// ByteAllocator is the capability consumed by code that needs small,
// alignment-sensitive allocations.
type ByteAllocator interface {
	// AllocBytes returns the address of size bytes aligned to align.
	// align must be a power of two.
	AllocBytes(size, align uintptr) (Addr, error)

	// DeallocBytes returns a prior byte allocation. Reclaim happens in bulk
	// once every outstanding byte allocation has been returned.
	DeallocBytes(addr Addr, size uintptr) error

	TotalBytes() uintptr
	UsedBytes() uintptr
	AvailableBytes() uintptr
}

// PageAllocator is the capability consumed by code that needs fixed,
// page-granularity allocations.
type PageAllocator interface {
	// PageSize returns the page granularity fixed at construction.
	PageSize() uintptr

	// AllocPages returns the address of count pages aligned down to
	// alignPow2, which must be a power of two.
	AllocPages(count int, alignPow2 uintptr) (Addr, error)

	// DeallocPages returns a prior page allocation. As with bytes, memory
	// comes back only when the last outstanding page allocation is returned.
	DeallocPages(addr Addr, count int) error

	TotalPages() int
	UsedPages() int
	AvailablePages() int
}
