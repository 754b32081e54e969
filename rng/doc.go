// Package rng provides the seedable random source that drives noise
// injection.
//
// A Rand is owned by exactly one simulator run. It is not safe for
// concurrent use; parallel runs derive independent streams with Derive.
//
// Besides scalar draws, Rand offers FillBernoulli, a vectorized primitive
// that fills a packed bit buffer so that each bit is independently set with
// probability p. Sparse probabilities use geometric skipping (work
// proportional to the number of set bits); dense probabilities use a
// bit-sliced comparison against the 32-bit binary expansion of p.
package rng
