package bitmatrix

import (
	"fmt"

	"github.com/hupe1980/framesim/internal/simd"
)

// Vector is a packed one-dimensional bit vector, used for reference
// measurement outcomes.
type Vector struct {
	n     int
	words []uint64
}

// NewVector creates an all-false vector of n bits.
func NewVector(n int) *Vector {
	if n < 0 {
		panic(fmt.Sprintf("bitmatrix: invalid vector length %d", n))
	}
	return &Vector{n: n, words: make([]uint64, (n+63)/64)}
}

// VectorFromBools packs a bool slice.
func VectorFromBools(bs []bool) *Vector {
	v := NewVector(len(bs))
	for i, b := range bs {
		if b {
			v.Set(i, true)
		}
	}
	return v
}

// Len returns the number of bits.
func (v *Vector) Len() int { return v.n }

// Words returns the backing words. Bits at index >= Len are zero.
func (v *Vector) Words() []uint64 { return v.words }

// Get returns bit i.
func (v *Vector) Get(i int) bool {
	v.check(i)
	return v.words[i>>6]>>(uint(i)&63)&1 == 1
}

// Set assigns bit i.
func (v *Vector) Set(i int, b bool) {
	v.check(i)
	bit := uint64(1) << (uint(i) & 63)
	if b {
		v.words[i>>6] |= bit
	} else {
		v.words[i>>6] &^= bit
	}
}

// Popcount returns the number of set bits.
func (v *Vector) Popcount() int {
	return simd.PopcountWords(v.words)
}

func (v *Vector) check(i int) {
	if uint(i) >= uint(v.n) {
		panic(fmt.Sprintf("bitmatrix: bit %d out of range [0, %d)", i, v.n))
	}
}
