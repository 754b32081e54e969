package framesim

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/framesim/frame"
)

// DefaultShardSize is the number of samples per shard in SampleParallel.
const DefaultShardSize = 4096

// DefaultProgressInterval is the minimum gap between progress log lines.
const DefaultProgressInterval = 2 * time.Second

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	shardSize        int
	workers          int
	memoryLimit      int64
	gauge            bool
	progressInterval time.Duration
}

// Option configures Sample and SampleParallel.
type Option func(*options)

// WithMetricsCollector enables metrics collection.
//
// Example with basic metrics:
//
//	metrics := &framesim.BasicMetricsCollector{}
//	res, _ := framesim.Sample(ctx, c, nil, 1024, 7, framesim.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Runs: %d, Samples: %d\n", stats.SampleCount, stats.SamplesTotal)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := framesim.NewJSONLogger(slog.LevelInfo)
//	res, _ := framesim.Sample(ctx, c, nil, 1024, 7, framesim.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithShardSize sets the number of samples simulated per shard by
// SampleParallel. Sizes are rounded up to a multiple of 64 so shards own
// whole record words. The output of SampleParallel depends on this value.
func WithShardSize(samples int) Option {
	return func(o *options) {
		o.shardSize = samples
	}
}

// WithWorkers bounds the number of shards simulated concurrently.
// Defaults to GOMAXPROCS. The output does not depend on this value.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMemoryLimit bounds the frame and record bytes held by in-flight
// shards. Shards wait for memory when the limit is reached. 0 disables the
// limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithGaugeRandomization enables frame gauge randomization on measurement
// and reset. See frame.WithGaugeRandomization.
func WithGaugeRandomization() Option {
	return func(o *options) {
		o.gauge = true
	}
}

// WithProgressInterval sets how often SampleParallel logs progress.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		shardSize:        DefaultShardSize,
		workers:          runtime.GOMAXPROCS(0),
		progressInterval: DefaultProgressInterval,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) validate() error {
	switch {
	case o.shardSize <= 0:
		return fmt.Errorf("%w: shard size %d", ErrInvalidOption, o.shardSize)
	case o.workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidOption, o.workers)
	case o.memoryLimit < 0:
		return fmt.Errorf("%w: memory limit %d", ErrInvalidOption, o.memoryLimit)
	}
	o.shardSize = (o.shardSize + 63) &^ 63
	return nil
}

func (o *options) frameOptions() []frame.Option {
	if o.gauge {
		return []frame.Option{frame.WithGaugeRandomization()}
	}
	return nil
}
