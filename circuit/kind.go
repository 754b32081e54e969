package circuit

import "strings"

// Kind identifies an operation.
type Kind uint8

// Operation kinds.
const (
	Invalid Kind = iota

	// Pauli gates. They only change signs, which the frame does not track.
	I
	X
	Y
	Z

	// Single-qubit Clifford gates.
	H // H_XZ
	HXY
	HYZ
	S // SQRT_Z
	SDag
	SqrtX
	SqrtXDag
	SqrtY
	SqrtYDag

	// Two-qubit Clifford gates. Targets are consumed as pairs.
	CX
	CY
	CZ
	Swap

	// Noise channels.
	XError
	YError
	ZError
	Depolarize1
	Depolarize2

	// Measurement and reset.
	M  // Z basis
	MX // X basis
	MY // Y basis
	R  // reset to |0>

	numKinds
)

// Class groups kinds by how a simulator treats them.
type Class uint8

const (
	ClassNone Class = iota
	ClassGate
	ClassNoise
	ClassMeasure
	ClassReset
)

type kindInfo struct {
	name    string
	aliases []string
	class   Class
	arity   int
}

var kindTable = [numKinds]kindInfo{
	Invalid:     {name: "INVALID"},
	I:           {name: "I", class: ClassGate, arity: 1},
	X:           {name: "X", class: ClassGate, arity: 1},
	Y:           {name: "Y", class: ClassGate, arity: 1},
	Z:           {name: "Z", class: ClassGate, arity: 1},
	H:           {name: "H", aliases: []string{"H_XZ"}, class: ClassGate, arity: 1},
	HXY:         {name: "H_XY", class: ClassGate, arity: 1},
	HYZ:         {name: "H_YZ", class: ClassGate, arity: 1},
	S:           {name: "S", aliases: []string{"SQRT_Z"}, class: ClassGate, arity: 1},
	SDag:        {name: "S_DAG", aliases: []string{"SQRT_Z_DAG"}, class: ClassGate, arity: 1},
	SqrtX:       {name: "SQRT_X", class: ClassGate, arity: 1},
	SqrtXDag:    {name: "SQRT_X_DAG", class: ClassGate, arity: 1},
	SqrtY:       {name: "SQRT_Y", class: ClassGate, arity: 1},
	SqrtYDag:    {name: "SQRT_Y_DAG", class: ClassGate, arity: 1},
	CX:          {name: "CX", aliases: []string{"CNOT", "ZCX"}, class: ClassGate, arity: 2},
	CY:          {name: "CY", aliases: []string{"ZCY"}, class: ClassGate, arity: 2},
	CZ:          {name: "CZ", aliases: []string{"ZCZ"}, class: ClassGate, arity: 2},
	Swap:        {name: "SWAP", class: ClassGate, arity: 2},
	XError:      {name: "X_ERROR", class: ClassNoise, arity: 1},
	YError:      {name: "Y_ERROR", class: ClassNoise, arity: 1},
	ZError:      {name: "Z_ERROR", class: ClassNoise, arity: 1},
	Depolarize1: {name: "DEPOLARIZE1", class: ClassNoise, arity: 1},
	Depolarize2: {name: "DEPOLARIZE2", class: ClassNoise, arity: 2},
	M:           {name: "M", aliases: []string{"MZ"}, class: ClassMeasure, arity: 1},
	MX:          {name: "MX", class: ClassMeasure, arity: 1},
	MY:          {name: "MY", class: ClassMeasure, arity: 1},
	R:           {name: "R", aliases: []string{"RZ"}, class: ClassReset, arity: 1},
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, 2*int(numKinds))
	for k := Kind(1); k < numKinds; k++ {
		m[kindTable[k].name] = k
		for _, alias := range kindTable[k].aliases {
			m[alias] = k
		}
	}
	return m
}()

// ParseKind resolves an operation name (case-insensitive, aliases allowed).
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// String returns the canonical name.
func (k Kind) String() string {
	if k >= numKinds {
		return "UNKNOWN"
	}
	return kindTable[k].name
}

// Valid reports whether k is a defined operation.
func (k Kind) Valid() bool { return k > Invalid && k < numKinds }

// Class returns how simulators treat the kind.
func (k Kind) Class() Class {
	if !k.Valid() {
		return ClassNone
	}
	return kindTable[k].class
}

// Arity is the number of qubits one application acts on (1 or 2).
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return kindTable[k].arity
}

// TakesProbability reports whether the kind is parameterized by a probability.
func (k Kind) TakesProbability() bool { return k.Class() == ClassNoise }

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds-1)
	for k := Kind(1); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}
