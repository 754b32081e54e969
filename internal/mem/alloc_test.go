package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAllocAlignedUint64(t *testing.T) {
	sizes := []int{1, 7, 8, 9, 100, 1024}

	for _, size := range sizes {
		buf := AllocAlignedUint64(size)
		assert.Len(t, buf, size)
		assert.Equal(t, size, cap(buf), "capacity must not expose padding")
		assert.Zero(t, uintptr(unsafe.Pointer(&buf[0]))%Alignment, "size %d should be aligned to %d", size, Alignment)

		for i, w := range buf {
			assert.Zero(t, w, "word %d should be zeroed", i)
		}
	}

	assert.Nil(t, AllocAlignedUint64(0))
	assert.Nil(t, AllocAlignedUint64(-1))
}
