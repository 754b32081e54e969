package rng

import (
	"math"
	"math/bits"
	"math/rand/v2"
)

// Source is the random source consumed by the simulator.
type Source interface {
	// Uint64 returns 64 uniformly random bits.
	Uint64() uint64
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// FillBernoulli sets each of the first nbits bits of dst independently
	// with probability p and clears every remaining bit of dst.
	FillBernoulli(dst []uint64, nbits int, p float64)
}

// sparseThreshold is the probability below which FillBernoulli switches to
// geometric skipping.
const sparseThreshold = 0.02

// Rand is a PCG-backed Source.
type Rand struct {
	pcg *rand.PCG
}

var _ Source = (*Rand)(nil)

// New creates a Rand seeded from a single 64-bit seed.
func New(seed uint64) *Rand {
	hi := splitmix64(seed ^ 0x9e3779b97f4a7c15)
	lo := splitmix64(seed ^ 0xda942042e4dd58b5)
	return &Rand{pcg: rand.NewPCG(hi, lo)}
}

// Derive returns the seed of an independent stream for the given index.
// The same (seed, stream) pair always yields the same derived seed.
func Derive(seed, stream uint64) uint64 {
	return splitmix64(splitmix64(seed) ^ splitmix64(stream+0x632be59bd9b4e019))
}

// Uint64 returns 64 uniformly random bits.
func (r *Rand) Uint64() uint64 {
	return r.pcg.Uint64()
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func (r *Rand) Float64() float64 {
	return float64(r.pcg.Uint64()>>11) / (1 << 53)
}

// FillBits fills dst with fair random bits.
func (r *Rand) FillBits(dst []uint64) {
	for i := range dst {
		dst[i] = r.pcg.Uint64()
	}
}

// FillBernoulli sets each of the first nbits bits of dst independently with
// probability p and clears the rest of dst. p outside [0, 1] is clamped.
func (r *Rand) FillBernoulli(dst []uint64, nbits int, p float64) {
	switch {
	case p <= 0 || nbits <= 0:
		clear(dst)
		return
	case p >= 1:
		fillOnes(dst, nbits)
		return
	case p == 0.5:
		r.FillBits(dst)
	case p < sparseThreshold:
		r.fillSparse(dst, nbits, p)
		return
	default:
		r.fillDense(dst, p)
	}
	maskTail(dst, nbits)
}

// fillSparse places set bits at geometrically distributed gaps.
func (r *Rand) fillSparse(dst []uint64, nbits int, p float64) {
	clear(dst)
	logQ := math.Log1p(-p)
	pos := -1
	for {
		// 1-Float64 lies in (0, 1], keeping the logarithm finite.
		gap := math.Floor(math.Log(1-r.Float64()) / logQ)
		if gap >= float64(nbits-pos-1) {
			return
		}
		pos += 1 + int(gap)
		dst[pos>>6] |= 1 << (uint(pos) & 63)
	}
}

// fillDense builds each word from the binary expansion of p: walking the
// expansion from its least significant set bit upward, a 1 digit ORs in a
// fair word and a 0 digit ANDs one in. The resulting bit probability is
// exactly k/2^32 where k is p rounded to 32 fractional bits.
func (r *Rand) fillDense(dst []uint64, p float64) {
	kf := math.Round(p * (1 << 32))
	if kf >= 1<<32 {
		for i := range dst {
			dst[i] = ^uint64(0)
		}
		return
	}
	k := uint32(max(kf, 1))
	start := bits.TrailingZeros32(k)
	for i := range dst {
		acc := uint64(0)
		for b := start; b < 32; b++ {
			if k>>uint(b)&1 == 1 {
				acc |= r.pcg.Uint64()
			} else {
				acc &= r.pcg.Uint64()
			}
		}
		dst[i] = acc
	}
}

func fillOnes(dst []uint64, nbits int) {
	for i := range dst {
		dst[i] = ^uint64(0)
	}
	maskTail(dst, nbits)
}

// maskTail clears every bit at index >= nbits.
func maskTail(dst []uint64, nbits int) {
	full := nbits >> 6
	if full >= len(dst) {
		return
	}
	if rem := nbits & 63; rem != 0 {
		dst[full] &= (1 << uint(rem)) - 1
		full++
	}
	clear(dst[full:])
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
