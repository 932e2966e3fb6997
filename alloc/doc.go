// Package alloc implements the early-boot memory allocator used before the
// general-purpose byte and page allocators can run.
//
// # Overview
//
// EarlyAllocator owns one fixed, contiguous span of memory and serves two
// kinds of requests from it by growing toward the middle from opposite ends:
//
//	[ bytes-used | avail-area | pages-used ]
//	|            | -->    <-- |            |
//	start     byteNext     pageNext      end
//
// Small, arbitrarily-aligned byte allocations bump the lower cursor upward;
// page-granularity allocations bump the upper cursor downward. A request
// fails with ErrNoMemory when the cursors would cross. There is no free
// list and no per-object header: each region keeps only a count of
// outstanding allocations, and when a region's count returns to zero its
// cursor snaps back to its origin, reclaiming the whole region in bulk.
// Interior frees reclaim nothing until then.
//
// # Capability Interfaces
//
// Three small interfaces describe what later boot stages consume:
//
//   - BaseAllocator: Init and AddMemory (span extension is unsupported here
//     and reported with ErrUnsupported)
//   - ByteAllocator: AllocBytes/DeallocBytes plus byte introspection
//   - PageAllocator: AllocPages/DeallocPages plus page introspection
//
// EarlyAllocator satisfies all three. The bootstrap hands it a
// platform-discovered region, carves out metadata for the full-featured
// allocators, then discards it.
//
// # Usage Example
//
//	ea, err := alloc.New(4096)
//	if err != nil {
//	    return err
//	}
//	ea.Init(base, size)
//
//	// Carve metadata for the next-stage byte allocator.
//	addr, err := ea.AllocBytes(512, 16)
//	if err != nil {
//	    return err
//	}
//
//	// Carve page-aligned backing for the next-stage page allocator.
//	pages, err := ea.AllocPages(4, 4096)
//
// # Error Handling
//
// Allocation failure is an ordinary error result; the allocator never
// terminates the process and owns no retry policy. Deallocation trusts the
// caller's address and size: a cheap bounds check is always on, and the
// optional WithTracking side table upgrades it to exact matching of
// outstanding allocations. Deallocating when a region's live count is
// already zero indicates caller corruption and panics.
//
// # Thread Safety
//
// EarlyAllocator is not thread-safe and deliberately carries no internal
// locking: it runs in a single boot context before any scheduler exists.
// Callers that outlive that context must serialize access externally.
package alloc
