// Package simd provides word-parallel kernels over packed bit rows.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2 (wide unrolled kernels)
//   - ARM64: NEON, SVE2 (wide unrolled kernels)
//
// Runtime CPU feature detection selects the kernel family. Set
// FRAMESIM_SIMD=generic to force the plain loops.
//
// # Operations
//
//   - Logic: AndWords, AndNotWords, OrWords, XorWords, Xor2Words, NotWords
//   - Movement: SwapWords
//   - Counting: PopcountWords
//
// Every kernel assumes len(dst) == len(src). Callers own the bounds.
package simd
