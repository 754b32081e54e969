// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of returned buffers (one cache line,
// also the AVX-512 register width).
const Alignment = 64

// WordsPerLine is the number of uint64 words in one aligned line.
const WordsPerLine = Alignment / 8

// AllocAlignedUint64 allocates a zeroed uint64 slice of n words whose first
// element sits at an address divisible by Alignment.
//
// The allocation is padded by one line to find an aligned offset. The
// underlying array is kept alive by the returned slice. Returns nil for n <= 0.
func AllocAlignedUint64(n int) []uint64 {
	if n <= 0 {
		return nil
	}

	buf := make([]uint64, n+WordsPerLine)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := int(((Alignment - (addr & (Alignment - 1))) & (Alignment - 1)) / 8)

	return buf[offset : offset+n : offset+n]
}
