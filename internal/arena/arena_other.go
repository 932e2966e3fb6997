//go:build !unix

package arena

import "fmt"

// Reserve falls back to a heap-backed region when anonymous mapping is not
// available. The region stays alive as long as the caller holds the slice.
func Reserve(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("arena: invalid reservation size %d", size)
	}
	data := make([]byte, size)
	return data, func() error { return nil }, nil
}
