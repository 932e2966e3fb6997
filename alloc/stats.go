package alloc

// Stats is a point-in-time snapshot of the allocator's accounting. Every
// field is derived from the cursors and counts; nothing here is stored
// separately, so a snapshot is always consistent with the state it was
// taken from.
type Stats struct {
	Span     Span
	PageSize uintptr

	TotalBytes     uintptr
	UsedBytes      uintptr
	AvailableBytes uintptr
	LiveByteAllocs int

	TotalPages     int
	UsedPages      int
	AvailablePages int
}

// Stats returns a snapshot of the current accounting.
func (a *EarlyAllocator) Stats() Stats {
	return Stats{
		Span:     a.span,
		PageSize: a.pageSize,

		TotalBytes:     a.TotalBytes(),
		UsedBytes:      a.UsedBytes(),
		AvailableBytes: a.AvailableBytes(),
		LiveByteAllocs: a.byteCount,

		TotalPages:     a.TotalPages(),
		UsedPages:      a.UsedPages(),
		AvailablePages: a.AvailablePages(),
	}
}
