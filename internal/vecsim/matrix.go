package vecsim

import (
	"math"
	"math/cmplx"
)

// Matrix is a dense square complex matrix, indexed [row][col].
type Matrix [][]complex128

// Identity returns the d×d identity.
func Identity(d int) Matrix {
	m := zeros(d)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Pauli returns the n-qubit Pauli operator with X component x[q] and Z
// component z[q] on qubit q. Y is represented as X·Z up to phase, which is
// all frame comparisons need.
func Pauli(x, z []bool) Matrix {
	d := 1 << len(x)
	m := zeros(d)
	for col := 0; col < d; col++ {
		row := col
		phase := complex128(1)
		for q := range x {
			bit := col >> q & 1
			if z[q] && bit == 1 {
				phase = -phase
			}
			if x[q] {
				row ^= 1 << q
			}
		}
		m[row][col] = phase
	}
	return m
}

// Mul returns a·b.
func (a Matrix) Mul(b Matrix) Matrix {
	d := len(a)
	out := zeros(d)
	for i := 0; i < d; i++ {
		for k := 0; k < d; k++ {
			if a[i][k] == 0 {
				continue
			}
			for j := 0; j < d; j++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func (a Matrix) Dagger() Matrix {
	d := len(a)
	out := zeros(d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out[j][i] = cmplx.Conj(a[i][j])
		}
	}
	return out
}

// Conjugate returns u·p·u†.
func Conjugate(u, p Matrix) Matrix {
	return u.Mul(p).Mul(u.Dagger())
}

// EqualUpToPhase reports whether a = e^{iθ}·b for some θ, within tol.
func EqualUpToPhase(a, b Matrix, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	var phase complex128
	for i := range a {
		for j := range a[i] {
			if cmplx.Abs(b[i][j]) > tol {
				phase = a[i][j] / b[i][j]
				break
			}
		}
		if phase != 0 {
			break
		}
	}
	if math.Abs(cmplx.Abs(phase)-1) > tol {
		return false
	}
	for i := range a {
		for j := range a[i] {
			if cmplx.Abs(a[i][j]-phase*b[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func zeros(d int) Matrix {
	m := make(Matrix, d)
	for i := range m {
		m[i] = make([]complex128, d)
	}
	return m
}
