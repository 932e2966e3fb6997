package alloc

// Addr is an address inside a managed span. The allocator hands addresses
// out and accounts for them but never dereferences them; downstream
// allocators reinterpret them as real pointers once they take over.
type Addr uintptr

// Span is a half-open address range [Start, End).
type Span struct {
	Start Addr
	End   Addr
}

// Size returns the number of bytes covered by the span.
func (s Span) Size() uintptr {
	return uintptr(s.End - s.Start)
}

// Contains reports whether a lies inside the span.
func (s Span) Contains(a Addr) bool {
	return a >= s.Start && a < s.End
}
