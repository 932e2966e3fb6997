// Package arena reserves anonymous memory regions for the early allocator
// to manage. The allocator itself is pure accounting and never touches the
// memory; arena exists so the CLI, the examples, and integration tests can
// run it over a real region instead of made-up addresses.
package arena

import "unsafe"

// Base returns the starting address of a reservation.
func Base(data []byte) uintptr {
	if len(data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&data[0]))
}
