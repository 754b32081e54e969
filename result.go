package framesim

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/internal/simd"
)

// Result holds the measurement record of a sampling run.
type Result struct {
	record   *bitmatrix.Matrix
	ref      *bitmatrix.Vector
	seed     uint64
	duration time.Duration
}

// Record returns the [measurements × samples] outcome matrix.
func (r *Result) Record() *bitmatrix.Matrix { return r.record }

// NumSamples returns the number of sampled runs.
func (r *Result) NumSamples() int { return r.record.Cols() }

// NumMeasurements returns the number of measurements per run.
func (r *Result) NumMeasurements() int { return r.record.Rows() }

// Seed returns the seed the run was started with.
func (r *Result) Seed() uint64 { return r.seed }

// Duration returns the wall time of the run.
func (r *Result) Duration() time.Duration { return r.duration }

// Flips returns the samples in which measurement row differs from the
// reference outcome.
func (r *Result) Flips(row int) *roaring.Bitmap {
	return r.ParityFailures(row)
}

// FlipRate returns the fraction of samples whose outcome for row differs
// from the reference.
func (r *Result) FlipRate(row int) float64 {
	if r.NumSamples() == 0 {
		return 0
	}
	n := r.record.RowPopcount(row)
	if r.refBit(row) {
		n = r.NumSamples() - n
	}
	return float64(n) / float64(r.NumSamples())
}

// FlipRates returns FlipRate for every measurement.
func (r *Result) FlipRates() []float64 {
	rates := make([]float64, r.NumMeasurements())
	for m := range rates {
		rates[m] = r.FlipRate(m)
	}
	return rates
}

// ParityFailures returns the samples whose XOR over rows differs from the
// reference parity. With rows naming the measurements of a logical
// observable, these are the samples with a logical error.
func (r *Result) ParityFailures(rows ...int) *roaring.Bitmap {
	acc := bitmatrix.New(1, r.NumSamples())
	parity := false
	for _, row := range rows {
		simd.XorWords(acc.Row(0), r.record.Row(row))
		parity = parity != r.refBit(row)
	}
	if parity {
		acc.NotRow(0)
	}
	return acc.RowBitmap(0)
}

// LogicalErrorRate returns the fraction of samples in ParityFailures(rows...).
func (r *Result) LogicalErrorRate(rows ...int) float64 {
	if r.NumSamples() == 0 {
		return 0
	}
	return float64(r.ParityFailures(rows...).GetCardinality()) / float64(r.NumSamples())
}

func (r *Result) refBit(row int) bool {
	return r.ref != nil && r.ref.Get(row)
}
