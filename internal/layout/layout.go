// Package layout holds the address arithmetic shared by the allocator
// packages. The goal is to keep the bit-twiddling in one place, verified
// once, so the allocators read as plain cursor accounting.
package layout

// DefaultPageSize is the page granularity used when the platform does not
// dictate one. 4 KiB matches every target the boot path supports.
const DefaultPageSize = 0x1000

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp returns n rounded up to the next multiple of align, which must be
// a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n rounded down to a multiple of align, which must be a
// power of two.
//
// Example:
//
//	AlignDown(7, 8)    = 0
//	AlignDown(8, 8)    = 8
//	AlignDown(4097, 4096) = 4096
func AlignDown(n, align uintptr) uintptr {
	return n &^ (align - 1)
}
