package framesim

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/circuit"
)

func surfaceCode(t testing.TB, d int, p float64) *circuit.Code {
	t.Helper()
	code, err := circuit.UnrotatedSurfaceCode(d, p)
	require.NoError(t, err)
	return code
}

func TestSample(t *testing.T) {
	code := surfaceCode(t, 3, 0.01)

	res, err := Sample(t.Context(), code.Circuit, nil, 1000, 42)
	require.NoError(t, err)

	assert.Equal(t, 1000, res.NumSamples())
	assert.Equal(t, code.Circuit.NumMeasurements, res.NumMeasurements())
	assert.Equal(t, uint64(42), res.Seed())
	assert.Positive(t, res.Record().Popcount())

	again, err := Sample(t.Context(), code.Circuit, nil, 1000, 42)
	require.NoError(t, err)
	assert.True(t, res.Record().Equal(again.Record()))
}

func TestSample_Noiseless(t *testing.T) {
	c := circuit.MustParse("H 0\nCX 0 1\nH 0 1\nM 0 1\n")
	ref := bitmatrix.VectorFromBools([]bool{true, true})

	res, err := Sample(t.Context(), c, ref, 256, 1)
	require.NoError(t, err)

	assert.Equal(t, 256, res.Record().RowPopcount(0))
	assert.Equal(t, 256, res.Record().RowPopcount(1))
	assert.Zero(t, res.FlipRate(0))
	assert.Zero(t, res.LogicalErrorRate(0, 1))
}

func TestSample_Errors(t *testing.T) {
	valid := circuit.MustParse("M 0 1\n")
	invalid := &circuit.Circuit{
		NumQubits:       1,
		NumMeasurements: 0,
		Ops:             []circuit.Operation{{Kind: circuit.H, Targets: []int{3}}},
	}

	tests := []struct {
		name    string
		c       *circuit.Circuit
		ref     *bitmatrix.Vector
		samples int
		opts    []Option
		target  error
	}{
		{"nil circuit", nil, nil, 10, nil, ErrInvalidCircuit},
		{"invalid circuit", invalid, nil, 10, nil, ErrInvalidCircuit},
		{"negative samples", valid, nil, -1, nil, ErrInvalidSamples},
		{"short reference", valid, bitmatrix.NewVector(1), 10, nil, ErrReferenceLength},
		{"zero shard size", valid, nil, 10, []Option{WithShardSize(0)}, ErrInvalidOption},
		{"zero workers", valid, nil, 10, []Option{WithWorkers(0)}, ErrInvalidOption},
		{"negative memory limit", valid, nil, 10, []Option{WithMemoryLimit(-1)}, ErrInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sample(t.Context(), tt.c, tt.ref, tt.samples, 0, tt.opts...)
			assert.ErrorIs(t, err, tt.target)

			_, err = SampleParallel(t.Context(), tt.c, tt.ref, tt.samples, 0, tt.opts...)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSample_ReferenceMismatchDetails(t *testing.T) {
	c := circuit.MustParse("M 0 1 2\n")

	_, err := Sample(t.Context(), c, bitmatrix.NewVector(2), 8, 0)

	var rm *ErrReferenceMismatch
	require.True(t, errors.As(err, &rm))
	assert.Equal(t, 3, rm.Expected)
	assert.Equal(t, 2, rm.Actual)
	assert.Contains(t, rm.Error(), "circuit measures 3")
}

func TestSample_InvalidCircuitKeepsCause(t *testing.T) {
	c := &circuit.Circuit{
		NumQubits: 2,
		Ops:       []circuit.Operation{{Kind: circuit.CX, Targets: []int{0}}},
	}

	_, err := Sample(t.Context(), c, nil, 8, 0)

	assert.ErrorIs(t, err, ErrInvalidCircuit)
	assert.ErrorIs(t, err, circuit.ErrOddTargets)
	var ve *circuit.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestSample_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	code := surfaceCode(t, 3, 0.001)

	_, err := Sample(ctx, code.Circuit, nil, 64, 0)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = SampleParallel(ctx, code.Circuit, nil, 64, 0)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestSampleParallel_IndependentOfWorkers(t *testing.T) {
	code := surfaceCode(t, 3, 0.005)

	var records []*bitmatrix.Matrix
	for _, workers := range []int{1, 2, 7} {
		res, err := SampleParallel(t.Context(), code.Circuit, nil, 1000, 99,
			WithShardSize(128), WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, 1000, res.NumSamples())
		records = append(records, res.Record())
	}

	assert.True(t, records[0].Equal(records[1]))
	assert.True(t, records[0].Equal(records[2]))
}

func TestSampleParallel_ShardSizeRoundsUp(t *testing.T) {
	code := surfaceCode(t, 3, 0.005)

	a, err := SampleParallel(t.Context(), code.Circuit, nil, 500, 5, WithShardSize(100))
	require.NoError(t, err)
	b, err := SampleParallel(t.Context(), code.Circuit, nil, 500, 5, WithShardSize(128))
	require.NoError(t, err)

	assert.True(t, a.Record().Equal(b.Record()))
}

func TestSampleParallel_NoiselessMatchesReference(t *testing.T) {
	c := circuit.MustParse("X 0\nM 0\nH 1\nMX 1\nM 2\n")
	ref := bitmatrix.VectorFromBools([]bool{true, false, false})

	res, err := SampleParallel(t.Context(), c, ref, 777, 3, WithShardSize(64), WithWorkers(4))
	require.NoError(t, err)

	assert.Equal(t, 777, res.Record().RowPopcount(0))
	assert.Zero(t, res.Record().RowPopcount(1))
	assert.Zero(t, res.Record().RowPopcount(2))
}

func TestSampleParallel_MemoryLimit(t *testing.T) {
	code := surfaceCode(t, 3, 0.001)
	need := shardBytes(code.Circuit, 64)

	_, err := SampleParallel(t.Context(), code.Circuit, nil, 256, 0,
		WithShardSize(64), WithMemoryLimit(need-1))
	assert.ErrorIs(t, err, ErrInvalidOption)

	// room for exactly one shard at a time
	res, err := SampleParallel(t.Context(), code.Circuit, nil, 256, 0,
		WithShardSize(64), WithWorkers(4), WithMemoryLimit(need))
	require.NoError(t, err)
	assert.Equal(t, 256, res.NumSamples())
}

func TestSampleParallel_Empty(t *testing.T) {
	res, err := SampleParallel(t.Context(), circuit.MustParse("M 0\n"), nil, 0, 0)
	require.NoError(t, err)

	assert.Zero(t, res.NumSamples())
	assert.Zero(t, res.FlipRate(0))
	assert.Zero(t, res.LogicalErrorRate(0))
}

func TestResult_FlipsAndParity(t *testing.T) {
	record := bitmatrix.New(3, 8)
	for _, cell := range [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 5}, {2, 7}} {
		record.Set(cell[0], cell[1], true)
	}
	ref := bitmatrix.VectorFromBools([]bool{false, false, true})
	res := &Result{record: record, ref: ref}

	assert.Equal(t, []uint32{1, 2}, res.Flips(0).ToArray())
	assert.InDelta(t, 0.25, res.FlipRate(0), 1e-12)
	// row 2 has reference 1, so only the sample with a 0 outcome flipped
	assert.InDelta(t, 7.0/8, res.FlipRate(2), 1e-12)
	assert.Equal(t, []float64{0.25, 0.25, 7.0 / 8}, res.FlipRates())

	assert.Equal(t, []uint32{1, 5}, res.ParityFailures(0, 1).ToArray())
	assert.Equal(t, []uint32{0, 1, 3, 4, 6}, res.ParityFailures(1, 2).ToArray())
	assert.InDelta(t, 0.25, res.LogicalErrorRate(0, 1), 1e-12)
	assert.True(t, res.ParityFailures().IsEmpty())
}

func TestSample_LogicalErrorRateGrowsWithNoise(t *testing.T) {
	low := surfaceCode(t, 3, 0.001)
	high := surfaceCode(t, 3, 0.05)

	lo, err := Sample(t.Context(), low.Circuit, nil, 4096, 1)
	require.NoError(t, err)
	hi, err := Sample(t.Context(), high.Circuit, nil, 4096, 1)
	require.NoError(t, err)

	assert.Less(t, lo.LogicalErrorRate(low.Observable...), hi.LogicalErrorRate(high.Observable...))
}

func TestMetricsCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	code := surfaceCode(t, 3, 0.001)

	_, err := SampleParallel(t.Context(), code.Circuit, nil, 256, 0,
		WithShardSize(64), WithMetricsCollector(metrics))
	require.NoError(t, err)
	_, err = Sample(t.Context(), code.Circuit, nil, -1, 0, WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.SampleCount)
	assert.Equal(t, int64(1), stats.SampleErrors)
	assert.Equal(t, int64(256), stats.SamplesTotal)
	assert.Equal(t, int64(256*code.Circuit.NumMeasurements), stats.MeasurementsTotal)
	assert.Equal(t, int64(4), stats.ShardCount)
	assert.GreaterOrEqual(t, stats.PeakMemoryBytes, shardBytes(code.Circuit, 64))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	code := surfaceCode(t, 3, 0.001)

	_, err := SampleParallel(t.Context(), code.Circuit, nil, 128, 7,
		WithShardSize(64), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"shard completed"`)
	assert.Contains(t, out, `"msg":"sample completed"`)
	assert.Contains(t, out, `"seed":7`)
	assert.Equal(t, 2, strings.Count(out, "shard completed"))
	assert.Contains(t, out, `"msg":"parallel sampling finished"`)
	assert.Contains(t, out, `"peak_memory_bytes":`)
}

func TestLogger_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, nil))

	_, err := Sample(t.Context(), nil, nil, 1, 0, WithLogger(logger))
	require.Error(t, err)

	assert.Contains(t, buf.String(), "sample failed")
}

func TestOptions_Defaults(t *testing.T) {
	o := applyOptions(nil)

	assert.Equal(t, DefaultShardSize, o.shardSize)
	assert.Positive(t, o.workers)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.NotNil(t, o.logger)
	assert.Empty(t, o.frameOptions())

	o = applyOptions([]Option{WithGaugeRandomization(), WithLogger(nil), WithMetricsCollector(nil), nil})
	assert.Len(t, o.frameOptions(), 1)
	assert.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
}
