package simd

import "math/bits"

// Kernel function pointers for packed-row operations.
// Generic implementations are the default; selectKernels swaps in the
// wide unrolled variants when the CPU has vector units to feed.
var (
	kernelAndWords      = andWordsGeneric
	kernelAndNotWords   = andNotWordsGeneric
	kernelOrWords       = orWordsGeneric
	kernelXorWords      = xorWordsGeneric
	kernelXor2Words     = xor2WordsGeneric
	kernelSwapWords     = swapWordsGeneric
	kernelPopcountWords = popcountWordsGeneric
)

// selectKernels binds the kernel family for the given ISA.
func selectKernels(isa ISA) {
	if isa == Generic {
		kernelAndWords = andWordsGeneric
		kernelAndNotWords = andNotWordsGeneric
		kernelOrWords = orWordsGeneric
		kernelXorWords = xorWordsGeneric
		kernelXor2Words = xor2WordsGeneric
		kernelSwapWords = swapWordsGeneric
		kernelPopcountWords = popcountWordsGeneric
		return
	}
	kernelAndWords = andWordsWide
	kernelAndNotWords = andNotWordsGeneric
	kernelOrWords = orWordsGeneric
	kernelXorWords = xorWordsWide
	kernelXor2Words = xor2WordsWide
	kernelSwapWords = swapWordsWide
	kernelPopcountWords = popcountWordsGeneric
}

// AndWords performs dst[i] &= src[i] for all words.
func AndWords(dst, src []uint64) {
	kernelAndWords(dst, src)
}

// AndNotWords performs dst[i] &= ^src[i] for all words.
func AndNotWords(dst, src []uint64) {
	kernelAndNotWords(dst, src)
}

// OrWords performs dst[i] |= src[i] for all words.
func OrWords(dst, src []uint64) {
	kernelOrWords(dst, src)
}

// XorWords performs dst[i] ^= src[i] for all words.
func XorWords(dst, src []uint64) {
	kernelXorWords(dst, src)
}

// Xor2Words performs dst[i] ^= a[i] ^ b[i] for all words.
func Xor2Words(dst, a, b []uint64) {
	kernelXor2Words(dst, a, b)
}

// SwapWords exchanges the contents of a and b.
func SwapWords(a, b []uint64) {
	kernelSwapWords(a, b)
}

// NotWords performs dst[i] = ^dst[i] for all words.
func NotWords(dst []uint64) {
	for i := range dst {
		dst[i] = ^dst[i]
	}
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	return kernelPopcountWords(words)
}

// ==============================================================================
// Generic implementations
// ==============================================================================

func andWordsGeneric(dst, src []uint64) {
	// Process 4 words at a time (unrolled)
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &= src[i]
		dst[i+1] &= src[i+1]
		dst[i+2] &= src[i+2]
		dst[i+3] &= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &= src[i]
	}
}

func andNotWordsGeneric(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &= ^src[i]
		dst[i+1] &= ^src[i+1]
		dst[i+2] &= ^src[i+2]
		dst[i+3] &= ^src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &= ^src[i]
	}
}

func orWordsGeneric(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] |= src[i]
		dst[i+1] |= src[i+1]
		dst[i+2] |= src[i+2]
		dst[i+3] |= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] |= src[i]
	}
}

func xorWordsGeneric(dst, src []uint64) {
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] ^= src[i]
		dst[i+1] ^= src[i+1]
		dst[i+2] ^= src[i+2]
		dst[i+3] ^= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] ^= src[i]
	}
}

func xor2WordsGeneric(dst, a, b []uint64) {
	for i := range dst {
		dst[i] ^= a[i] ^ b[i]
	}
}

func swapWordsGeneric(a, b []uint64) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

func popcountWordsGeneric(words []uint64) int {
	count := 0
	// Process 4 words at a time
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}

// ==============================================================================
// Wide implementations
// ==============================================================================
//
// One cache line (8 words) per iteration through array pointers, which lets
// the compiler drop bounds checks and emit vector loads/stores.

func andWordsWide(dst, src []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := (*[8]uint64)(dst[i:])
		s := (*[8]uint64)(src[i:])
		d[0] &= s[0]
		d[1] &= s[1]
		d[2] &= s[2]
		d[3] &= s[3]
		d[4] &= s[4]
		d[5] &= s[5]
		d[6] &= s[6]
		d[7] &= s[7]
	}
	for ; i < len(dst); i++ {
		dst[i] &= src[i]
	}
}

func xorWordsWide(dst, src []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := (*[8]uint64)(dst[i:])
		s := (*[8]uint64)(src[i:])
		d[0] ^= s[0]
		d[1] ^= s[1]
		d[2] ^= s[2]
		d[3] ^= s[3]
		d[4] ^= s[4]
		d[5] ^= s[5]
		d[6] ^= s[6]
		d[7] ^= s[7]
	}
	for ; i < len(dst); i++ {
		dst[i] ^= src[i]
	}
}

func xor2WordsWide(dst, a, b []uint64) {
	i := 0
	for ; i+8 <= len(dst); i += 8 {
		d := (*[8]uint64)(dst[i:])
		x := (*[8]uint64)(a[i:])
		y := (*[8]uint64)(b[i:])
		for k := range d {
			d[k] ^= x[k] ^ y[k]
		}
	}
	for ; i < len(dst); i++ {
		dst[i] ^= a[i] ^ b[i]
	}
}

func swapWordsWide(a, b []uint64) {
	i := 0
	for ; i+8 <= len(a); i += 8 {
		x := (*[8]uint64)(a[i:])
		y := (*[8]uint64)(b[i:])
		*x, *y = *y, *x
	}
	for ; i < len(a); i++ {
		a[i], b[i] = b[i], a[i]
	}
}
