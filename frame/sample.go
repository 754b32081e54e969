package frame

import (
	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/circuit"
	"github.com/hupe1980/framesim/rng"
)

// Sample runs c over numSamples samples and returns the measurement record,
// shaped [c.NumMeasurements × numSamples]. Row m holds the outcome of the
// m-th measurement target in circuit order; column k holds sample k.
//
// ref holds the reference outcome of every measurement; nil means all
// false. With zero noise every column equals ref. Identical (c, ref,
// numSamples, r state) always yield the identical record.
func Sample(c *circuit.Circuit, ref *bitmatrix.Vector, numSamples int, r rng.Source, opts ...Option) *bitmatrix.Matrix {
	if ref != nil && ref.Len() != c.NumMeasurements {
		violate("Sample", "reference has %d outcomes, circuit measures %d", ref.Len(), c.NumMeasurements)
	}
	sim := New(c.NumQubits, numSamples, c.NumMeasurements, r, opts...)
	sim.Run(c, ref)
	if sim.recorded != c.NumMeasurements {
		violate("Sample", "recorded %d results, circuit declares %d", sim.recorded, c.NumMeasurements)
	}
	return sim.record
}
