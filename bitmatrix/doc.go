// Package bitmatrix provides dense, word-aligned bit storage.
//
// A Matrix stores rows × cols independent boolean cells. Each row is packed
// into 64-bit words, padded to a whole number of 512-bit blocks (one cache
// line), and starts on a 64-byte boundary:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ row 0: block 0 (8 × uint64) │ block 1 │ ... │ padding (zero) │
//	│ row 1: block 0 (8 × uint64) │ block 1 │ ... │ padding (zero) │
//	└──────────────────────────────────────────────────────────────┘
//
// Row operations (XOR, AND, OR, NOT, swap, copy, randomize) touch a row in
// one pass over its words, so their cost is O(cols / 64) rather than O(cols).
// Padding bits are kept zero by every operation, which makes row popcounts
// and whole-matrix comparisons exact without masking.
//
// Indices are contract-checked: an out-of-range row or column panics.
// Matrices are not safe for concurrent mutation.
package bitmatrix
