package framesim

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/circuit"
	"github.com/hupe1980/framesim/frame"
	"github.com/hupe1980/framesim/internal/resource"
	"github.com/hupe1980/framesim/rng"
)

// Sample simulates numSamples noisy runs of c on a single goroutine and
// returns their measurement record.
//
// ref holds the outcome of every measurement in a noiseless reference run;
// nil means all false, which is correct for circuits whose measurements are
// deterministic and zero without noise (such as the generated codes). The
// circuit, reference and options are validated before any simulation
// starts. The result depends only on (c, ref, numSamples, seed).
func Sample(ctx context.Context, c *circuit.Circuit, ref *bitmatrix.Vector, numSamples int, seed uint64, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	record, err := func() (*bitmatrix.Matrix, error) {
		if err := prepare(ctx, c, ref, numSamples, &o); err != nil {
			return nil, err
		}
		return frame.Sample(c, ref, numSamples, rng.New(seed), o.frameOptions()...), nil
	}()

	return finish(ctx, c, ref, numSamples, seed, record, err, start, &o)
}

// SampleParallel splits numSamples into shards of WithShardSize samples and
// simulates them concurrently, each on its own simulator and random stream
// derived from (seed, shard index). Shards are stitched in shard order, so
// the record depends on (c, ref, numSamples, seed, shard size) and never on
// the worker count or scheduling.
//
// Cancelling ctx stops scheduling new shards; in-flight shards finish and
// the call returns an error wrapping ErrCanceled.
func SampleParallel(ctx context.Context, c *circuit.Circuit, ref *bitmatrix.Vector, numSamples int, seed uint64, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	record, err := func() (*bitmatrix.Matrix, error) {
		if err := prepare(ctx, c, ref, numSamples, &o); err != nil {
			return nil, err
		}
		return sampleParallel(ctx, c, ref, numSamples, seed, &o)
	}()

	return finish(ctx, c, ref, numSamples, seed, record, err, start, &o)
}

func prepare(ctx context.Context, c *circuit.Circuit, ref *bitmatrix.Vector, numSamples int, o *options) error {
	if c == nil {
		return fmt.Errorf("%w: nil circuit", ErrInvalidCircuit)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if numSamples < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, numSamples)
	}
	if ref != nil && ref.Len() != c.NumMeasurements {
		return &ErrReferenceMismatch{Expected: c.NumMeasurements, Actual: ref.Len(), cause: ErrReferenceLength}
	}
	if err := o.validate(); err != nil {
		return err
	}
	return ctx.Err()
}

func finish(ctx context.Context, c *circuit.Circuit, ref *bitmatrix.Vector, numSamples int, seed uint64,
	record *bitmatrix.Matrix, err error, start time.Time, o *options) (*Result, error) {
	duration := time.Since(start)
	err = translateError(err)

	measurements := 0
	logger := o.logger.WithSeed(seed)
	if c != nil {
		measurements = c.NumMeasurements
		logger = logger.WithCircuit(c)
	}
	logger.LogSample(ctx, numSamples, duration, err)
	o.metricsCollector.RecordSample(numSamples, measurements, duration, err)

	if err != nil {
		return nil, err
	}
	return &Result{record: record, ref: ref, seed: seed, duration: duration}, nil
}

func sampleParallel(ctx context.Context, c *circuit.Circuit, ref *bitmatrix.Vector, numSamples int, seed uint64, o *options) (*bitmatrix.Matrix, error) {
	numShards := (numSamples + o.shardSize - 1) / o.shardSize
	if need := shardBytes(c, min(o.shardSize, numSamples)); o.memoryLimit > 0 && need > o.memoryLimit {
		return nil, fmt.Errorf("%w: a shard needs %d bytes, memory limit is %d", ErrInvalidOption, need, o.memoryLimit)
	}

	record := bitmatrix.New(c.NumMeasurements, numSamples)
	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: o.memoryLimit,
		MaxWorkers:       int64(o.workers),
	})
	logger := o.logger.WithSeed(seed)
	progress := rate.Sometimes{Interval: o.progressInterval}
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for shard := 0; shard < numShards; shard++ {
		if err := rc.AcquireWorker(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer rc.ReleaseWorker()

			offset := shard * o.shardSize
			n := min(o.shardSize, numSamples-offset)
			bytes := shardBytes(c, n)
			if err := rc.AcquireMemory(gctx, bytes); err != nil {
				return err
			}
			defer rc.ReleaseMemory(bytes)
			if err := gctx.Err(); err != nil {
				return err
			}

			t := time.Now()
			r := rng.New(rng.Derive(seed, uint64(shard)))
			record.SetColumns(offset, frame.Sample(c, ref, n, r, o.frameOptions()...))
			elapsed := time.Since(t)

			logger.LogShard(gctx, shard, n, elapsed)
			o.metricsCollector.RecordShard(n, rc.MemoryUsage(), elapsed)
			finished := done.Add(1)
			progress.Do(func() {
				logger.LogProgress(gctx, int(finished), numShards)
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.LogParallel(ctx, numShards, rc.MaxWorkers(), rc.PeakMemoryUsage(), rc.MemoryLimit())
	return record, nil
}

// shardBytes is the frame and record memory of one shard.
func shardBytes(c *circuit.Circuit, samples int) int64 {
	stride := (samples + bitmatrix.BlockBits - 1) / bitmatrix.BlockBits * bitmatrix.BlockWords
	rows := 2*c.NumQubits + c.NumMeasurements
	return int64(rows) * int64(stride) * 8
}
