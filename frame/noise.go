package frame

import "github.com/hupe1980/framesim/internal/simd"

// XError flips the X frame bit of each target with probability p,
// independently per target and sample.
func (s *Simulator) XError(targets []int, p float64) {
	s.flip("X_ERROR", targets, p, true, false)
}

// YError applies a Y flip with probability p.
func (s *Simulator) YError(targets []int, p float64) {
	s.flip("Y_ERROR", targets, p, true, true)
}

// ZError applies a Z flip with probability p.
func (s *Simulator) ZError(targets []int, p float64) {
	s.flip("Z_ERROR", targets, p, false, true)
}

func (s *Simulator) flip(op string, targets []int, p float64, x, z bool) {
	checkProbability(op, p)
	s.checkTargets(op, targets, 1)
	if p == 0 {
		return
	}
	for _, q := range targets {
		s.rng.FillBernoulli(s.mask, s.numSamples, p)
		if x {
			simd.XorWords(s.xs.Row(q), s.mask)
		}
		if z {
			simd.XorWords(s.zs.Row(q), s.mask)
		}
	}
}

// Depolarize1 applies single-qubit depolarizing noise: with probability p
// a target receives X, Y or Z, each equally likely.
//
// Per target, an occurrence mask is drawn first. Inside the mask, a pair of
// random words picks the Pauli; cells that drew the identity are redrawn
// until they land on X, Y or Z.
func (s *Simulator) Depolarize1(targets []int, p float64) {
	checkProbability("DEPOLARIZE1", p)
	s.checkTargets("DEPOLARIZE1", targets, 1)
	if p == 0 {
		return
	}
	for _, q := range targets {
		s.rng.FillBernoulli(s.mask, s.numSamples, p)
		x, z := s.xs.Row(q), s.zs.Row(q)
		for w, m := range s.mask {
			if m == 0 {
				continue
			}
			var ex, ez uint64
			for rem := m; rem != 0; {
				a := s.rng.Uint64() & rem
				b := s.rng.Uint64() & rem
				ex |= a
				ez |= b
				rem &^= a | b
			}
			x[w] ^= ex
			z[w] ^= ez
		}
	}
}

// Depolarize2 applies two-qubit depolarizing noise to each adjacent pair of
// targets: with probability p the pair receives one of the 15 non-identity
// two-qubit Paulis, each equally likely.
func (s *Simulator) Depolarize2(targets []int, p float64) {
	checkProbability("DEPOLARIZE2", p)
	s.checkTargets("DEPOLARIZE2", targets, 2)
	if p == 0 {
		return
	}
	for k := 0; k < len(targets); k += 2 {
		q1, q2 := targets[k], targets[k+1]
		if q1 == q2 {
			violate("DEPOLARIZE2", "both targets are qubit %d", q1)
		}
		s.rng.FillBernoulli(s.mask, s.numSamples, p)
		x1, z1 := s.xs.Row(q1), s.zs.Row(q1)
		x2, z2 := s.xs.Row(q2), s.zs.Row(q2)
		for w, m := range s.mask {
			if m == 0 {
				continue
			}
			var ex1, ez1, ex2, ez2 uint64
			for rem := m; rem != 0; {
				a := s.rng.Uint64() & rem
				b := s.rng.Uint64() & rem
				c := s.rng.Uint64() & rem
				d := s.rng.Uint64() & rem
				ex1 |= a
				ez1 |= b
				ex2 |= c
				ez2 |= d
				rem &^= a | b | c | d
			}
			x1[w] ^= ex1
			z1[w] ^= ez1
			x2[w] ^= ex2
			z2[w] ^= ez2
		}
	}
}
