// Package frame implements a Pauli frame simulator for stabilizer circuits.
//
// A Simulator tracks, for every qubit and every sample, the Pauli error
// accumulated relative to a noiseless reference run. The error is stored as
// an (X, Z) bit pair in two bit matrices shaped [qubits × samples]:
//
//	X error → (1, 0)    Z error → (0, 1)    Y error → (1, 1)
//
// Clifford gates map Paulis to Paulis, so each gate is a fixed linear update
// over GF(2) of its targets' bit pairs, applied to all samples at once with
// word-wide XOR and swap kernels. Noise channels flip frame bits with the
// requested probabilities. Measurements combine frame bits with a reference
// outcome vector to produce concrete results.
//
// Sample runs a whole circuit:
//
//	c := circuit.MustParse("H 0\nCX 0 1\nDEPOLARIZE1(0.01) 0 1\nM 0 1\n")
//	record := frame.Sample(c, nil, 1024, rng.New(0))
//	fmt.Println(record.RowPopcount(0)) // samples whose first result flipped
//
// Contract violations (out-of-range qubits, odd pair lists, bad
// probabilities, record overflow) panic with a *ContractViolation. Validate
// circuits with circuit.Validate before handing them to a Simulator.
//
// A Simulator and its random source are single-owner values; run separate
// simulators with separate sources to parallelize.
package frame
