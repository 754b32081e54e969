// Package vecsim is a brute-force state-vector simulator for a handful of
// qubits. It exists as a correctness oracle for the frame simulator's bit
// update rules and refuses to grow beyond MaxQubits.
//
// Amplitude index bit q holds qubit q (little-endian). Two-qubit matrices
// are indexed by bit(first target) + 2*bit(second target).
package vecsim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/hupe1980/framesim/circuit"
)

// MaxQubits bounds the oracle's size.
const MaxQubits = 4

// Sim holds 2^n complex amplitudes.
type Sim struct {
	n     int
	State []complex128
}

// New returns the |0…0⟩ state on n qubits.
func New(n int) *Sim {
	if n < 1 || n > MaxQubits {
		panic(fmt.Sprintf("vecsim: %d qubits outside [1, %d]", n, MaxQubits))
	}
	s := &Sim{n: n, State: make([]complex128, 1<<n)}
	s.State[0] = 1
	return s
}

// NumQubits returns n.
func (s *Sim) NumQubits() int { return s.n }

// Apply applies a gate kind to its targets, pairing two-qubit targets.
func (s *Sim) Apply(kind circuit.Kind, targets ...int) {
	u, ok := Unitary(kind)
	if !ok {
		panic(fmt.Sprintf("vecsim: %s has no unitary", kind))
	}
	arity := kind.Arity()
	for k := 0; k+arity <= len(targets); k += arity {
		s.ApplyMatrix(u, targets[k:k+arity]...)
	}
}

// ApplyMatrix applies a 2×2 or 4×4 unitary to one or two qubits.
func (s *Sim) ApplyMatrix(u Matrix, targets ...int) {
	switch len(targets) {
	case 1:
		bit := 1 << targets[0]
		for i := range s.State {
			if i&bit != 0 {
				continue
			}
			a0, a1 := s.State[i], s.State[i|bit]
			s.State[i] = u[0][0]*a0 + u[0][1]*a1
			s.State[i|bit] = u[1][0]*a0 + u[1][1]*a1
		}
	case 2:
		ba, bb := 1<<targets[0], 1<<targets[1]
		for i := range s.State {
			if i&ba != 0 || i&bb != 0 {
				continue
			}
			idx := [4]int{i, i | ba, i | bb, i | ba | bb}
			var in, out [4]complex128
			for k := range idx {
				in[k] = s.State[idx[k]]
			}
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					out[r] += u[r][c] * in[c]
				}
			}
			for k := range idx {
				s.State[idx[k]] = out[k]
			}
		}
	default:
		panic(fmt.Sprintf("vecsim: unsupported matrix arity %d", len(targets)))
	}
}

// ApplyPauli applies a signed Pauli string such as "+XZ" or "-IY", with
// character k acting on qubit offset+k.
func (s *Sim) ApplyPauli(p string, offset int) {
	if p == "" {
		return
	}
	switch p[0] {
	case '-':
		for i := range s.State {
			s.State[i] = -s.State[i]
		}
		p = p[1:]
	case '+':
		p = p[1:]
	}
	for k, ch := range p {
		switch ch {
		case 'I', '_':
		case 'X':
			s.Apply(circuit.X, offset+k)
		case 'Y':
			s.Apply(circuit.Y, offset+k)
		case 'Z':
			s.Apply(circuit.Z, offset+k)
		default:
			panic(fmt.Sprintf("vecsim: bad Pauli character %q", ch))
		}
	}
}

// Approx reports whether two states agree within tol per amplitude.
func Approx(a, b []complex128, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

var (
	s2 = complex(math.Sqrt(0.5), 0)
	hi = complex(0.5, 0.5)
	lo = complex(0.5, -0.5)
)

// Unitary returns the matrix of a gate kind.
func Unitary(k circuit.Kind) (Matrix, bool) {
	switch k {
	case circuit.I:
		return Matrix{{1, 0}, {0, 1}}, true
	case circuit.X:
		return Matrix{{0, 1}, {1, 0}}, true
	case circuit.Y:
		return Matrix{{0, -1i}, {1i, 0}}, true
	case circuit.Z:
		return Matrix{{1, 0}, {0, -1}}, true
	case circuit.H:
		return Matrix{{s2, s2}, {s2, -s2}}, true
	case circuit.HXY:
		return Matrix{{0, s2 - s2*1i}, {s2 + s2*1i, 0}}, true
	case circuit.HYZ:
		return Matrix{{s2, -s2 * 1i}, {s2 * 1i, -s2}}, true
	case circuit.S:
		return Matrix{{1, 0}, {0, 1i}}, true
	case circuit.SDag:
		return Matrix{{1, 0}, {0, -1i}}, true
	case circuit.SqrtX:
		return Matrix{{hi, lo}, {lo, hi}}, true
	case circuit.SqrtXDag:
		return Matrix{{lo, hi}, {hi, lo}}, true
	case circuit.SqrtY:
		return Matrix{{hi, -hi}, {hi, hi}}, true
	case circuit.SqrtYDag:
		return Matrix{{lo, lo}, {-lo, lo}}, true
	case circuit.CX:
		return Matrix{
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
		}, true
	case circuit.CY:
		return Matrix{
			{1, 0, 0, 0},
			{0, 0, 0, -1i},
			{0, 0, 1, 0},
			{0, 1i, 0, 0},
		}, true
	case circuit.CZ:
		return Matrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, -1},
		}, true
	case circuit.Swap:
		return Matrix{
			{1, 0, 0, 0},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
		}, true
	default:
		return nil, false
	}
}
