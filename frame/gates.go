package frame

import (
	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/circuit"
	"github.com/hupe1980/framesim/internal/simd"
)

// rule applies one operation to every sample.
type rule func(s *Simulator, op circuit.Operation, ref *bitmatrix.Vector)

// rules binds every operation kind to its frame update. Kinds map by index;
// a nil entry is not executable.
var rules = [...]rule{
	circuit.I: single(identityMap),
	circuit.X: single(identityMap),
	circuit.Y: single(identityMap),
	circuit.Z: single(identityMap),

	circuit.H:        single(swapXZ),
	circuit.HXY:      single(xorXIntoZ),
	circuit.HYZ:      single(xorZIntoX),
	circuit.S:        single(xorXIntoZ),
	circuit.SDag:     single(xorXIntoZ),
	circuit.SqrtX:    single(xorZIntoX),
	circuit.SqrtXDag: single(xorZIntoX),
	circuit.SqrtY:    single(swapXZ),
	circuit.SqrtYDag: single(swapXZ),

	circuit.CX:   pair((*Simulator).cx),
	circuit.CY:   pair((*Simulator).cy),
	circuit.CZ:   pair((*Simulator).cz),
	circuit.Swap: pair((*Simulator).swap),

	circuit.XError:      func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) { s.XError(op.Targets, op.Probability) },
	circuit.YError:      func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) { s.YError(op.Targets, op.Probability) },
	circuit.ZError:      func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) { s.ZError(op.Targets, op.Probability) },
	circuit.Depolarize1: func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) { s.Depolarize1(op.Targets, op.Probability) },
	circuit.Depolarize2: func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) { s.Depolarize2(op.Targets, op.Probability) },

	circuit.M:  func(s *Simulator, op circuit.Operation, ref *bitmatrix.Vector) { s.MeasureZ(op.Targets, ref) },
	circuit.MX: func(s *Simulator, op circuit.Operation, ref *bitmatrix.Vector) { s.MeasureX(op.Targets, ref) },
	circuit.MY: func(s *Simulator, op circuit.Operation, ref *bitmatrix.Vector) { s.MeasureY(op.Targets, ref) },
	circuit.R:  func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) { s.Reset(op.Targets) },
}

// linearMap is a single-qubit frame update over GF(2):
//
//	x' = xx·x ^ xz·z
//	z' = zx·x ^ zz·z
type linearMap struct {
	xx, xz, zx, zz bool
}

var (
	identityMap = linearMap{xx: true, zz: true}
	swapXZ      = linearMap{xz: true, zx: true}
	xorXIntoZ   = linearMap{xx: true, zx: true, zz: true}
	xorZIntoX   = linearMap{xx: true, xz: true, zz: true}
)

// Apply executes a single operation. ref supplies reference outcomes for
// measurements, indexed by record row; nil means all-false.
func (s *Simulator) Apply(op circuit.Operation, ref *bitmatrix.Vector) {
	if int(op.Kind) >= len(rules) || rules[op.Kind] == nil {
		violate("Apply", "unsupported operation %s", op.Kind)
	}
	rules[op.Kind](s, op, ref)
}

// Run applies every operation of c in order.
func (s *Simulator) Run(c *circuit.Circuit, ref *bitmatrix.Vector) {
	for _, op := range c.Ops {
		s.Apply(op, ref)
	}
}

func single(m linearMap) rule {
	return func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) {
		s.applyLinear(op.Kind.String(), m, op.Targets)
	}
}

func pair(fn func(s *Simulator, a, b int)) rule {
	return func(s *Simulator, op circuit.Operation, _ *bitmatrix.Vector) {
		s.checkTargets(op.Kind.String(), op.Targets, 2)
		for k := 0; k < len(op.Targets); k += 2 {
			fn(s, op.Targets[k], op.Targets[k+1])
		}
	}
}

// applyLinear applies a single-qubit linear frame update to each target.
func (s *Simulator) applyLinear(name string, m linearMap, targets []int) {
	s.checkTargets(name, targets, 1)
	if m == identityMap {
		return
	}
	for _, q := range targets {
		x, z := s.xs.Row(q), s.zs.Row(q)
		switch m {
		case swapXZ:
			simd.SwapWords(x, z)
		case xorXIntoZ:
			simd.XorWords(z, x)
		case xorZIntoX:
			simd.XorWords(x, z)
		default:
			violate(name, "no kernel for frame map %+v", m)
		}
	}
}

// H applies the Hadamard gate (H_XZ) to each target.
func (s *Simulator) H(targets []int) { s.applyLinear("H", swapXZ, targets) }

// S applies the phase gate to each target.
func (s *Simulator) S(targets []int) { s.applyLinear("S", xorXIntoZ, targets) }

// SqrtX applies SQRT_X to each target.
func (s *Simulator) SqrtX(targets []int) { s.applyLinear("SQRT_X", xorZIntoX, targets) }

// CX applies a controlled-X to each (control, target) pair.
func (s *Simulator) CX(targets []int) {
	s.Apply(circuit.Operation{Kind: circuit.CX, Targets: targets}, nil)
}

// CZ applies a controlled-Z to each pair.
func (s *Simulator) CZ(targets []int) {
	s.Apply(circuit.Operation{Kind: circuit.CZ, Targets: targets}, nil)
}

// CY applies a controlled-Y to each (control, target) pair.
func (s *Simulator) CY(targets []int) {
	s.Apply(circuit.Operation{Kind: circuit.CY, Targets: targets}, nil)
}

// Swap exchanges the frames of each pair.
func (s *Simulator) Swap(targets []int) {
	s.Apply(circuit.Operation{Kind: circuit.Swap, Targets: targets}, nil)
}

func (s *Simulator) cx(c, t int) {
	if c == t {
		violate("CX", "control and target are both qubit %d", c)
	}
	s.zs.XorRowInto(c, t)
	s.xs.XorRowInto(t, c)
}

func (s *Simulator) cz(a, b int) {
	if a == b {
		violate("CZ", "both targets are qubit %d", a)
	}
	za, zb := s.zs.Row(a), s.zs.Row(b)
	simd.XorWords(za, s.xs.Row(b))
	simd.XorWords(zb, s.xs.Row(a))
}

func (s *Simulator) cy(c, t int) {
	if c == t {
		violate("CY", "control and target are both qubit %d", c)
	}
	xc := s.xs.Row(c)
	xt, zt := s.xs.Row(t), s.zs.Row(t)
	simd.Xor2Words(s.zs.Row(c), xt, zt)
	simd.XorWords(xt, xc)
	simd.XorWords(zt, xc)
}

func (s *Simulator) swap(a, b int) {
	if a == b {
		return
	}
	s.xs.SwapRows(a, b)
	s.zs.SwapRows(a, b)
}
