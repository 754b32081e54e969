// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Provides cache-line aligned word buffers so that every packed bit row
// begins on a 64-byte boundary (AVX-512 friendly).
package mem
