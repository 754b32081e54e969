// Package circuit describes stabilizer circuits as a flat, ordered list of
// operations over integer qubit indices.
//
// Operation kinds form a closed enumeration. Names are resolved to a Kind
// once, when a circuit is built or parsed, so simulators dispatch on a small
// integer rather than a string.
//
// Text format, one operation per line:
//
//	# comment
//	H 0
//	CX 0 1 2 3
//	DEPOLARIZE1(0.001) 0 1 2
//	M 0 1
//
// Validation (target ranges, pairing of two-qubit targets, probability
// ranges) happens here, before a circuit reaches the simulator.
package circuit
