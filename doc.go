// Package framesim samples measurement outcomes of noisy stabilizer circuits
// with a Pauli frame simulator.
//
// A circuit is run once without noise to obtain a reference outcome vector
// (supplied by the caller). framesim then propagates only the Pauli errors
// injected by noise channels, for many samples at once, and XORs each
// sample's error onto the reference. Frames are packed 64 samples per
// machine word, so a gate costs a handful of XOR or swap passes over its
// targets' rows regardless of how many samples are in flight.
//
// # Quick Start
//
//	code, _ := circuit.UnrotatedSurfaceCode(5, 0.001)
//	res, err := framesim.Sample(ctx, code.Circuit, nil, 10000, 42)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.LogicalErrorRate(code.Observable...))
//
// # Circuits
//
// Circuits are built programmatically or parsed from text, one operation
// per line:
//
//	H 0
//	CX 0 1
//	DEPOLARIZE2(0.01) 0 1
//	M 0 1
//
// Supported operations are the Pauli gates, H (H_XZ), H_XY, H_YZ, S, S_DAG,
// SQRT_X, SQRT_X_DAG, SQRT_Y, SQRT_Y_DAG, CX, CY, CZ, SWAP, the noise
// channels X_ERROR, Y_ERROR, Z_ERROR, DEPOLARIZE1, DEPOLARIZE2, measurements
// M, MX, MY and reset R.
//
// # Parallel Sampling
//
// SampleParallel shards the samples across goroutines. Each shard gets its
// own random stream derived from the seed, and shards are stitched in
// order, so the record is reproducible for a fixed shard size:
//
//	res, _ := framesim.SampleParallel(ctx, c, nil, 1_000_000, 42,
//	    framesim.WithShardSize(8192),
//	    framesim.WithWorkers(8),
//	    framesim.WithMemoryLimit(1<<30),
//	)
//
// # Errors
//
// Invalid input is reported before simulation starts: ErrInvalidCircuit
// wraps a *circuit.ValidationError, *ErrReferenceMismatch reports a
// reference of the wrong length, ErrInvalidSamples a negative sample count.
// Cancellation returns an error wrapping ErrCanceled.
//
// # Observability
//
// Runs log through a slog-based Logger (WithLogger, WithLogLevel) and
// report to a MetricsCollector (WithMetricsCollector). Both default to
// no-ops.
package framesim
