package frame

import (
	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/internal/simd"
)

type basis uint8

const (
	basisZ basis = iota
	basisX
	basisY
)

// MeasureZ measures each target in the Z basis. The result is the X frame
// bit (an X or Y error flips a Z measurement) XOR the reference outcome.
// One record row is written per target, in target order.
func (s *Simulator) MeasureZ(targets []int, ref *bitmatrix.Vector) {
	s.measure("M", basisZ, targets, ref)
}

// MeasureX measures in the X basis; Z and Y errors flip the result.
func (s *Simulator) MeasureX(targets []int, ref *bitmatrix.Vector) {
	s.measure("MX", basisX, targets, ref)
}

// MeasureY measures in the Y basis; X and Z errors flip the result.
func (s *Simulator) MeasureY(targets []int, ref *bitmatrix.Vector) {
	s.measure("MY", basisY, targets, ref)
}

func (s *Simulator) measure(op string, b basis, targets []int, ref *bitmatrix.Vector) {
	s.checkTargets(op, targets, 1)
	if end := s.recorded + len(targets); end > s.record.Rows() {
		violate(op, "record overflow: %d results into capacity %d", end, s.record.Rows())
	}
	if ref != nil && ref.Len() < s.recorded+len(targets) {
		violate(op, "reference has %d outcomes, need %d", ref.Len(), s.recorded+len(targets))
	}

	for _, q := range targets {
		m := s.recorded
		out := s.record.Row(m)
		x, z := s.xs.Row(q), s.zs.Row(q)
		switch b {
		case basisZ:
			copy(out, x)
		case basisX:
			copy(out, z)
		case basisY:
			copy(out, x)
			simd.XorWords(out, z)
		}
		if ref != nil && ref.Get(m) {
			s.record.NotRow(m)
		}
		s.recorded++

		if s.gauge {
			s.collapse(b, x, z)
		}
	}
}

// collapse multiplies the frame by a random stabilizer of the post
// measurement state.
func (s *Simulator) collapse(b basis, x, z []uint64) {
	switch b {
	case basisZ:
		s.rng.FillBernoulli(z, s.numSamples, 0.5)
	case basisX:
		s.rng.FillBernoulli(x, s.numSamples, 0.5)
	case basisY:
		s.rng.FillBernoulli(s.tmp, s.numSamples, 0.5)
		simd.XorWords(x, s.tmp)
		simd.XorWords(z, s.tmp)
	}
}

// Reset returns each target to |0>, clearing its frame.
func (s *Simulator) Reset(targets []int) {
	s.checkTargets("R", targets, 1)
	for _, q := range targets {
		s.xs.ClearRow(q)
		if s.gauge {
			s.rng.FillBernoulli(s.zs.Row(q), s.numSamples, 0.5)
		} else {
			s.zs.ClearRow(q)
		}
	}
}
